package custom_errors

import "errors"

// Entity lookups. Absent and hidden entities share the same error so callers
// cannot tell an unpublished post from a missing one.
var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrUserNotFound     = errors.New("user not found")
)

// Access.
var (
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrCSRFTokenMismatch  = errors.New("csrf token missing or incorrect")
)

// Input.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrSlugTaken        = errors.New("slug already taken")
	ErrImageTooLarge    = errors.New("image too large")
	ErrImageInvalidType = errors.New("unsupported image type")
)

// Infrastructure.
var (
	ErrDatabaseQuery        = errors.New("database query failed")
	ErrCacheMiss            = errors.New("cache miss")
	ErrImageStoreFailed     = errors.New("failed to store image")
	ErrTokenIssueFailed     = errors.New("failed to issue token")
	ErrInternalServiceError = errors.New("internal service error")
)
