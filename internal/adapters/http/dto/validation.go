package dto

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrValidation wraps request bodies and queries that fail their tags.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps malformed JSON and query strings.
	ErrBinding = errors.New("binding failed")
)

// customRules are the tags request types may use beyond the validator
// built-ins. Empty strings pass all three; combine with required.
var customRules = map[string]validator.Func{
	// uuid accepts any form uuid.Parse does, not only the canonical one.
	"uuid": func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}

		_, err := uuid.Parse(s)

		return err == nil
	},
	// notempty rejects whitespace-only text, which the vault would drop.
	"notempty": func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	},
	// weblink accepts absolute http(s) URLs, the only links a collection can
	// point back to.
	"weblink": func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}

		u, err := url.Parse(s)
		if err != nil {
			return false
		}

		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	},
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field errors carry wire names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(fieldName)

		for tag, fn := range customRules {
			if err := validate.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("registering %s rule: %v", tag, err))
			}
		}
	})

	return validate
}

// fieldName names a field the way the client sent it: by its json tag for
// bodies, its form tag for query strings.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		tag, ok := f.Tag.Lookup(key)
		if !ok {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}

		if name != "" {
			return name
		}
	}

	return f.Name
}

// Validate checks v against its validate tags.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// BindQueryAndValidate decodes the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors maps each failing field, "quotes[1]" for slice elements,
// to a message for the error envelope's details.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return out
	}

	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe)
	}

	return out
}

// IsValidationError reports whether err carries field errors.
func IsValidationError(err error) bool {
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &fieldErrs)
}

func message(fe validator.FieldError) string {
	p := fe.Param()

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "notempty":
		return "must not be empty"
	case "uuid":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	case "weblink":
		return "must be an http or https link"
	case "oneof":
		return "must be one of: " + p
	case "gte":
		return "must be greater than or equal to " + p
	case "lte":
		return "must be less than or equal to " + p
	case "gt":
		return "must be greater than " + p
	case "lt":
		return "must be less than " + p
	case "min":
		return "must be at least " + p + unit(fe.Kind())
	case "max":
		return "must be at most " + p + unit(fe.Kind())
	default:
		return "failed validation: " + fe.Tag()
	}
}

// unit names what min and max count for lengths.
func unit(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	default:
		return ""
	}
}
