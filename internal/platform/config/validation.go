package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their koanf key, so a failure names the
// same path an operator writes in YAML or derives an APP_ variable from.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	// location accepts what time.LoadLocation does, "Local" and "UTC"
	// included, unlike the built-in timezone rule.
	if err := v.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		_, err := time.LoadLocation(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("registering location rule: %v", err))
	}

	return v
}

// Validate checks every section. The service refuses to start on error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		lines[i] = describe(keyPath(fe.Namespace()), fe)
	}

	return fmt.Errorf("invalid configuration:\n  %s", strings.Join(lines, "\n  "))
}

func describe(key string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", key, fe.Param())
	case "required_unless":
		return fmt.Sprintf("%s is required unless %s", key, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	case "url":
		return key + " must be a valid URL"
	case "location":
		return key + " must be an IANA time zone name"
	default:
		return fmt.Sprintf("%s fails %q", key, fe.Tag())
	}
}

// keyPath drops the root struct from a namespace: "Config.vault.free_limit"
// becomes "vault.free_limit".
func keyPath(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return key
}
