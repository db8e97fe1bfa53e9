package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/amremberto/gecom-following-preload-sub002/pkg/cuit"
)

var (
	codePattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// registerRules registra los tags propios usados en los DTOs.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("cuit", isCUIT); err != nil {
		return err
	}
	if err := v.RegisterValidation("code", isCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("digits", isDigits); err != nil {
		return err
	}
	return nil
}

func isCUIT(fl validator.FieldLevel) bool {
	return cuit.IsValid(fl.Field().String())
}

func isCode(fl validator.FieldLevel) bool {
	return codePattern.MatchString(fl.Field().String())
}

func isDigits(fl validator.FieldLevel) bool {
	return digitsPattern.MatchString(fl.Field().String())
}
