package content

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned when input fails schema validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err carries field-level validation detail.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterTagNames(v)
	return v
}

// RegisterTagNames makes v report fields by their json (or form) name so
// error details match what clients send.
func RegisterTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
}

func checkVar(field string, value any, rule string) (FieldError, bool) {
	err := validate.Var(value, rule)
	if err == nil {
		return FieldError{}, true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return FieldError{Field: field, Rule: verrs[0].Tag(), Message: describe(verrs[0].Tag(), verrs[0].Param())}, false
	}
	return FieldError{Field: field, Rule: rule, Message: err.Error()}, false
}

// FromValidator converts validator output into a ValidationError. Any other
// error (for example malformed JSON) is reported against the request body.
func FromValidator(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag(), Message: describe(fe.Tag(), fe.Param())})
		}
		return &ValidationError{Fields: out}
	}
	return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "parse", Message: err.Error()}}}
}

func describe(tag, param string) string {
	switch tag {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "url", "http_url":
		return "value is not a valid http(s) URL"
	case "oneof":
		return fmt.Sprintf("value must be one of [%s]", param)
	}
	if param != "" {
		return fmt.Sprintf("failed %s=%s", tag, param)
	}
	return "failed " + tag
}
