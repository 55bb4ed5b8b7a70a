package service

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateEntryStatus, EntryInput{})
	return v
}

// RegisterInput is the body of a sign-up request.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput is the body of a sign-in request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EntryInput is the body of an entry submission.
type EntryInput struct {
	Value       string         `json:"value" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Status      OptionalString `json:"status"`
}

// OptionalString is a JSON string field that may be omitted. It records
// whether the field was sent and whether it was sent as null.
type OptionalString struct {
	Value   string
	Present bool
	Null    bool
}

// NewOptionalString returns a present, non-null value.
func NewOptionalString(v string) OptionalString {
	return OptionalString{Value: v, Present: true}
}

// UnmarshalJSON marks the field present and records a null.
func (s *OptionalString) UnmarshalJSON(data []byte) error {
	s.Present = true
	if string(data) == "null" {
		s.Null = true
		return nil
	}
	return json.Unmarshal(data, &s.Value)
}

// Ptr returns nil when the field was omitted or null.
func (s OptionalString) Ptr() *string {
	if !s.Present || s.Null {
		return nil
	}
	v := s.Value
	return &v
}

// validateEntryStatus lets status be omitted, but not sent null or empty.
func validateEntryStatus(sl validator.StructLevel) {
	in := sl.Current().Interface().(EntryInput)
	if in.Status.Present && (in.Status.Null || in.Status.Value == "") {
		sl.ReportError(in.Status, "Status", "status", "nonempty", "")
	}
}

func validateInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return errors.Wrap(ErrValidation, err.Error())
	}
	return nil
}
