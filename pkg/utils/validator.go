package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = fieldErrorMessage(err)
		}
	}

	return errors
}

// fieldErrorMessage translates a validator tag into the Spanish message the
// API surfaces for that field.
func fieldErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "email":
		return "Formato de correo inválido"
	case "min":
		return fmt.Sprintf("La longitud mínima es %s", err.Param())
	case "max":
		return fmt.Sprintf("La longitud máxima es %s", err.Param())
	case "gt":
		return fmt.Sprintf("Debe ser mayor que %s", err.Param())
	case "gte":
		return fmt.Sprintf("Debe ser mayor o igual a %s", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Debe ser uno de: %s", options)
	case "uuid":
		return "Debe ser un UUID válido"
	default:
		return fmt.Sprintf("Campo %s inválido", err.Field())
	}
}

// FormatValidationErrors flattens the field map into one stable message.
func FormatValidationErrors(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
