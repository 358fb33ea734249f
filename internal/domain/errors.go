package domain

import (
	"errors"
	"strings"
)

// Bookmark form fields reported by ValidationError.
const (
	FieldName     = "name"
	FieldURL      = "url"
	FieldCategory = "category"
)

var (
	ErrInvalidCategoryName = errors.New("invalid category name")
	ErrCategoryExists      = errors.New("category already exists")
	ErrCategoryNameTaken   = errors.New("category name already taken")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrBoardNotFound       = errors.New("board not found")
)

// ValidationError lists which bookmark form fields failed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid bookmark: " + strings.Join(e.Fields, ", ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// IsValidation reports whether err is a user-input problem rather than a
// missing entity or a bad index.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, ErrInvalidCategoryName) ||
		errors.Is(err, ErrCategoryExists) ||
		errors.Is(err, ErrCategoryNameTaken)
}

// Message returns the text shown to the user for err.
func Message(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return "Please check the bookmark requirements."
	case errors.Is(err, ErrInvalidCategoryName):
		return "Category name must be 2-30 characters long and contain only letters, numbers, and spaces."
	case errors.Is(err, ErrCategoryExists):
		return "Category already exists!"
	case errors.Is(err, ErrCategoryNameTaken):
		return "Category name already exists!"
	case errors.Is(err, ErrCategoryNotFound):
		return "Category not found."
	case errors.Is(err, ErrBoardNotFound):
		return "Board not found."
	case errors.Is(err, ErrIndexOutOfRange):
		return "That item is no longer there."
	default:
		return "Something went wrong. Please try again."
	}
}
