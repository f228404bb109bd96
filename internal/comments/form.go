// Package comments implements the reader-facing comment submission flow.
package comments

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Input is what the comment form collects. The JSON shape is the one the
// comment endpoint accepts.
type Input struct {
	PostID  string `json:"_id" form:"_id"`
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required"`
	Comment string `json:"comment" form:"comment" validate:"required"`
}

// FieldError is a message shown beneath the form for one field.
type FieldError struct {
	Field   string
	Message string
}

// fieldOrder fixes the order in which errors are displayed.
var fieldOrder = []struct {
	name    string
	message string
}{
	{"Name", "- The Name Field is required"},
	{"Email", "- The Email Field is required"},
	{"Comment", "- The Comment Field is required"},
}

// Validate checks that name, email and comment are present. Whitespace-only
// values count as present; the e-mail's shape is not checked.
func (in Input) Validate() []FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "Form", Message: err.Error()}}
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.StructField()] = true
	}

	out := make([]FieldError, 0, len(failed))
	for _, f := range fieldOrder {
		if failed[f.name] {
			out = append(out, FieldError{Field: strings.ToLower(f.name), Message: f.message})
		}
	}
	return out
}
