package forms

import "strconv"

// PathID parses a positive integer path parameter.
func PathID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// PageNumber parses the page query value. Anything that is not an integer
// means the first page; range clamping is left to the feed.
func PageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}
