package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules
type Validator struct {
	validator *validator.Validate
}

// New creates a new validator instance with custom rules
func New() *Validator {
	validate := validator.New()

	registerCustomValidators(validate)

	// Use JSON field names for validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validator: validate,
	}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return NewValidationError(err.(validator.ValidationErrors))
	}
	return nil
}

// ValidateVar validates a single variable
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validator.Var(field, tag)
}

// ValidationError represents a validation error with user-friendly messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	var messages []string
	for field, message := range e.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", field, message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, ", "))
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	errors := make(map[string]string)

	for _, err := range errs {
		field := err.Field()
		tag := err.Tag()

		switch tag {
		case "required":
			errors[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errors[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			errors[field] = fmt.Sprintf("%s must be at least %s characters long", field, err.Param())
		case "max":
			errors[field] = fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
		case "uuid4":
			errors[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "slug":
			errors[field] = "slug must contain only lowercase letters, numbers and hyphens"
		case "membership_role":
			errors[field] = "role must be one of owner, admin, member or readonly"
		case "identity_status":
			errors[field] = "status must be one of active, inactive or suspended"
		case "tenant_status":
			errors[field] = "status must be one of active, suspended or deleted"
		case "url":
			errors[field] = fmt.Sprintf("%s must be a valid URL", field)
		default:
			errors[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return &ValidationError{Errors: errors}
}

// registerCustomValidators registers custom validation rules
func registerCustomValidators(validate *validator.Validate) {
	// Slug validation: lowercase letters, numbers, hyphens
	validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		slug := fl.Field().String()
		matched, _ := regexp.MatchString(`^[a-z0-9-]+$`, slug)
		return matched && len(slug) >= 2 && len(slug) <= 50
	})

	// Membership role validation
	validate.RegisterValidation("membership_role", func(fl validator.FieldLevel) bool {
		return oneOf(fl.Field().String(), "owner", "admin", "member", "readonly")
	})

	// Identity status validation
	validate.RegisterValidation("identity_status", func(fl validator.FieldLevel) bool {
		return oneOf(fl.Field().String(), "active", "inactive", "suspended")
	})

	// Tenant status validation
	validate.RegisterValidation("tenant_status", func(fl validator.FieldLevel) bool {
		return oneOf(fl.Field().String(), "active", "suspended", "deleted")
	})
}

func oneOf(value string, allowed ...string) bool {
	for _, v := range allowed {
		if value == v {
			return true
		}
	}
	return false
}

// Helper validation functions

// IsValidEmail checks if an email is valid
func IsValidEmail(email string) bool {
	v := New()
	return v.ValidateVar(email, "required,email") == nil
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(uuid string) bool {
	v := New()
	return v.ValidateVar(uuid, "required,uuid4") == nil
}

// IsValidSlug checks if a slug is valid
func IsValidSlug(slug string) bool {
	v := New()
	return v.ValidateVar(slug, "required,slug") == nil
}

// Common validation tags constants
const (
	TagRequired       = "required"
	TagEmail          = "email"
	TagUUID           = "uuid4"
	TagSlug           = "slug"
	TagMembershipRole = "membership_role"
	TagIdentityStatus = "identity_status"
	TagTenantStatus   = "tenant_status"
	TagMin            = "min"
	TagMax            = "max"
	TagURL            = "url"
)
