package handler

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Indian postal codes are six digits and never start with zero.
var rePincode = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// E.164-ish phone check applied after stripping spaces, dashes and
// parentheses.
var rePhone = regexp.MustCompile(`^[\+]?[1-9][\d]{0,15}$`)

// Validator adapts go-playground/validator to echo's Validator interface
// and registers the domain-specific rules.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds the request validator with the custom "pincode"
// and "inphone" tags.
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return rePincode.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
		s := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(fl.Field().String())
		return rePhone.MatchString(s)
	})
	return &Validator{v: v}
}

// Validate implements echo.Validator.
func (val *Validator) Validate(i interface{}) error {
	return val.v.Struct(i)
}
