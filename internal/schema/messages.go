package schema

import (
	"fmt"
	"reflect"

	"fundpath/pkg/types"

	"github.com/go-playground/validator/v10"
)

var messages = map[string]map[string]string{
	types.LocaleEnglish: {
		"required":     "This field is required.",
		"email":        "Enter a valid email address.",
		"phone":        "Enter a phone number with at least 10 digits.",
		"money":        "Enter an amount greater than zero.",
		"oneof":        "Choose one of the listed options.",
		"eq":           "You must accept the terms to continue.",
		"min":          "Must be at least %s characters.",
		"max":          "Must be at most %s characters.",
		"min_multiple": "Select at least one option.",
		"default":      "This value is not valid.",
	},
	types.LocaleSpanish: {
		"required":     "Este campo es obligatorio.",
		"email":        "Ingrese un correo electrónico válido.",
		"phone":        "Ingrese un número de teléfono con al menos 10 dígitos.",
		"money":        "Ingrese una cantidad mayor que cero.",
		"oneof":        "Elija una de las opciones.",
		"eq":           "Debe aceptar los términos para continuar.",
		"min":          "Debe tener al menos %s caracteres.",
		"max":          "Debe tener como máximo %s caracteres.",
		"min_multiple": "Seleccione al menos una opción.",
		"default":      "Este valor no es válido.",
	},
}

func message(locale string, fe validator.FieldError) string {
	catalog, ok := messages[locale]
	if !ok {
		catalog = messages[types.LocaleEnglish]
	}

	tag := fe.Tag()
	if tag == "min" && fe.Kind() == reflect.Slice {
		tag = "min_multiple"
	}

	msg, ok := catalog[tag]
	if !ok {
		return catalog["default"]
	}

	if tag == "min" || tag == "max" {
		return fmt.Sprintf(msg, fe.Param())
	}

	return msg
}
