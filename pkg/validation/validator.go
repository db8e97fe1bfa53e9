// Package validation envuelve go-playground/validator con las reglas propias del sistema
// y traduce los errores a domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
)

// Validator valida DTOs de entrada según sus tags `validate`.
type Validator struct {
	v *validator.Validate
}

// New crea el validador con los nombres de campo JSON y las reglas cuit/code/digits.
// Si una regla no se registra el proceso no debe arrancar.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := registerRules(v); err != nil {
		panic("registrar reglas de validación: " + err.Error())
	}
	return &Validator{v: v}
}

// Struct valida s y devuelve *domain.ValidationError con un mensaje por campo.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out := &domain.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fieldKey(fe)] = message(fe)
	}
	return out
}

// jsonFieldName usa el nombre de la petición: tag json, o query para los filtros de listado.
func jsonFieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "query"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// fieldKey quita el nombre del struct raíz: "CreateDocumentRequest.purchase_orders[0].number" -> "purchase_orders[0].number".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return "es requerido"
	case "max":
		if isString {
			return "debe tener como máximo " + fe.Param() + " caracteres"
		}
		return "debe ser menor o igual a " + fe.Param()
	case "min":
		if isString {
			return "debe tener al menos " + fe.Param() + " caracteres"
		}
		return "debe ser mayor o igual a " + fe.Param()
	case "len":
		return "debe tener exactamente " + fe.Param() + " caracteres"
	case "gt":
		return "debe ser mayor a " + fe.Param()
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "email":
		return "no es un email válido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "debe tener el formato " + fe.Param()
	case "cuit":
		return "no es una CUIT válida"
	case "code":
		return "solo admite letras, números, guiones y guiones bajos"
	case "digits":
		return "solo admite dígitos"
	case "dive":
		return "contiene elementos inválidos"
	default:
		return "no cumple la regla " + fe.Tag()
	}
}
