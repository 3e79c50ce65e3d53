// Package schema declares and enforces the field constraints of the lead
// forms. Constraints live as validate tags on types.LeadForm; this package
// registers the custom rules and turns validator errors into per-field
// messages keyed by form field name.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"fundpath/pkg/types"

	"github.com/go-playground/validator/v10"
)

const minPhoneDigits = 10

// FieldErrors maps a form field name to a human readable message.
type FieldErrors map[string]string

type Validator struct {
	validate *validator.Validate
	locale   string

	once   sync.Once
	fields map[string]string
}

func New(locale string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("money", validateMoney)

	if locale == "" {
		locale = types.LocaleEnglish
	}

	return &Validator{validate: v, locale: locale}
}

// WithLocale returns a validator that shares the registered rules but
// reports messages in another language.
func (v *Validator) WithLocale(locale string) *Validator {
	return &Validator{validate: v.validate, locale: locale}
}

// Struct validates every constrained field of form.
func (v *Validator) Struct(form *types.LeadForm) FieldErrors {
	return v.translate(v.validate.Struct(form))
}

// Fields validates only the named form fields. Fields outside the list are
// never checked, even when globally required.
func (v *Validator) Fields(form *types.LeadForm, names ...string) FieldErrors {
	if len(names) == 0 {
		return FieldErrors{}
	}

	structFields := make([]string, 0, len(names))
	for _, name := range names {
		field, ok := v.structField(name)
		if !ok {
			panic(fmt.Sprintf("schema: unknown form field %q", name))
		}
		structFields = append(structFields, field)
	}

	return v.translate(v.validate.StructPartial(form, structFields...))
}

// structField maps a form field name onto its Go field name, which is what
// StructPartial matches against.
func (v *Validator) structField(name string) (string, bool) {
	v.once.Do(func() {
		v.fields = map[string]string{}
		t := reflect.TypeOf(types.LeadForm{})
		for i := 0; i < t.NumField(); i++ {
			formName := t.Field(i).Tag.Get("form")
			if formName != "" && formName != "-" {
				v.fields[formName] = t.Field(i).Name
			}
		}
	})

	field, ok := v.fields[name]
	return field, ok
}

func (v *Validator) translate(err error) FieldErrors {
	errs := FieldErrors{}
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_form"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		name := fe.Field()
		// dive errors are reported as credit_profile[1]
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}
		if _, exists := errs[name]; exists {
			continue
		}
		errs[name] = message(v.locale, fe)
	}

	return errs
}

func validatePhone(fl validator.FieldLevel) bool {
	return len(DigitsOnly(fl.Field().String())) >= minPhoneDigits
}

func validateMoney(fl validator.FieldLevel) bool {
	_, ok := NormalizeFundingGoal(fl.Field().String())
	return ok
}

// DigitsOnly strips every non-digit character from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeFundingGoal reduces free-form money input such as "$50,000" to a
// positive integer. Input that reduces to nothing, zero or an overflowing
// number is rejected.
func NormalizeFundingGoal(s string) (int64, bool) {
	digits := DigitsOnly(s)
	if digits == "" {
		return 0, false
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}
