// Package validation binds request data and validates it.
//
// Rules are declared as `validator` struct tags; failures are turned into a
// 400 HTTPError listing each offending field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/labstack/echo/v4"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "form", "param"} {
			name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return v
}

// Validatable is implemented by request payloads that validate themselves.
type Validatable interface {
	Validate() error
}

// Binder is implemented by payloads that populate themselves from the
// request instead of going through echo's default binder (multipart uploads,
// free-form update bodies).
type Binder interface {
	BindFrom(c echo.Context) error
}

// CustomValidationError is a single field issue that a tag cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Struct runs the tag rules of v.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds request data into payload and validates it.
//
// payload must be a pointer. Bind failures and validation failures are both
// returned as 400s.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := bind(c, payload); err != nil {
		return err
	}

	if err := payload.Validate(); err != nil {
		return ToHTTPError(err)
	}

	return nil
}

// ToHTTPError turns a validation failure into a 400. HTTPErrors pass through.
func ToHTTPError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	msg, fieldErrors := extractValidationError(err)
	if fieldErrors == nil {
		return errs.NewBadRequestError(err.Error(), false, nil, nil, nil)
	}
	return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
}

func bind(c echo.Context, payload Validatable) error {
	var err error
	if b, ok := payload.(Binder); ok {
		err = b.BindFrom(c)
	} else {
		err = c.Bind(payload)
	}
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	message := "Invalid request body"
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if m, ok := echoErr.Message.(string); ok && m != "" {
			message = m
		}
	}

	return errs.NewBadRequestError(message, false, nil, nil, nil)
}

// ValidateFields checks free-form string values against validator rules
// keyed by field name. A field absent from values is checked as "". Fields
// without a rule are rejected.
func ValidateFields(values map[string]string, rules map[string]string) error {
	var failures CustomValidationErrors

	names := make([]string, 0, len(values)+len(rules))
	for name := range values {
		names = append(names, name)
	}
	for name := range rules {
		if _, ok := values[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		rule, ok := rules[name]
		if !ok {
			failures = append(failures, CustomValidationError{Field: name, Message: "is not allowed"})
			continue
		}
		if rule == "" {
			continue
		}

		err := validate.Var(values[name], rule)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				failures = append(failures, CustomValidationError{Field: name, Message: messageFor(fe)})
			}
		} else if err != nil {
			return fmt.Errorf("invalid rule for %s: %w", name, err)
		}
	}

	if len(failures) > 0 {
		return failures
	}
	return nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", nil
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: messageFor(fe),
		})
	}

	return "Validation failed", fieldErrors
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		return "must be a valid email address"

	case "url", "http_url":
		return "must be a valid URL"

	case "uuid":
		return "must be a valid UUID"

	case "datetime":
		return fmt.Sprintf("must match the format %s", fe.Param())

	case "notblank":
		return "must not be blank"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
