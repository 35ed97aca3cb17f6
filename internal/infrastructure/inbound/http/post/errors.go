package post_http

import (
	"errors"

	"blogicum/internal/custom_errors"
	"blogicum/internal/infrastructure/inbound/http/forms"
)

// fieldError reports the form field a service error belongs to.
func fieldError(err error) (field, message string, ok bool) {
	switch {
	case errors.Is(err, custom_errors.ErrCategoryNotFound):
		return "category", "Select a valid choice. That choice is not one of the available choices.", true
	case errors.Is(err, custom_errors.ErrLocationNotFound):
		return "location", "Select a valid choice. That choice is not one of the available choices.", true
	case errors.Is(err, custom_errors.ErrImageTooLarge):
		return "image", "The uploaded file is too large.", true
	case errors.Is(err, custom_errors.ErrImageInvalidType):
		return "image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.", true
	case errors.Is(err, custom_errors.ErrInvalidInput):
		return forms.NonField, "The submitted data was not valid.", true
	default:
		return "", "", false
	}
}
