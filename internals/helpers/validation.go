package helper

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
	"github.com/pkg/errors"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator
)

func init() {
	Validate = validator.New()

	_fr := fr.New()
	uni := ut.New(_fr, _fr)
	Translator, _ = uni.GetTranslator("fr")
	_ = fr_translations.RegisterDefaultTranslations(Validate, Translator)

	// nama field di pesan error: tag label, lalu form, lalu nama struct
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if l := fld.Tag.Get("label"); l != "" {
			return l
		}
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
		return fld.Name
	})

	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		if s, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return true
	})
	_ = Validate.RegisterTranslation("notblank", Translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " ne peut pas être vide"
		})

	_ = Validate.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return IsAcademicYear(fl.Field().String())
	})
	_ = Validate.RegisterTranslation("academic_year", Translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " doit être au format AAAA-AAAA (ex. 2024-2025)"
		})
}

// IsAcademicYear: "2024-2025" (tahun kedua = tahun pertama + 1).
func IsAcademicYear(s string) bool {
	if len(s) != 9 || s[4] != '-' {
		return false
	}
	a, err1 := strconv.Atoi(s[:4])
	b, err2 := strconv.Atoi(s[5:])
	return err1 == nil && err2 == nil && b == a+1
}

// AcademicYearOf: tahun ajaran dimulai September.
func AcademicYearOf(t time.Time) string {
	y := t.Year()
	if t.Month() < time.September {
		y--
	}
	return strconv.Itoa(y) + "-" + strconv.Itoa(y+1)
}

// FieldError menandai error pada satu field form.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(msg string, flds ...FieldError) error {
	return &ValidationError{Err: errors.New(msg), Fields: flds}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return e.Fields[0].Error
	}
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Map field → pesan (untuk JSON 422 / highlight form).
func (e *ValidationError) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Error
	}
	return out
}

// ValidateStruct menjalankan validator dan menerjemahkan error ke bahasa Prancis.
func ValidateStruct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate")
	}
	ve := &ValidationError{Err: errors.New("validation failed")}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{Field: fe.Field(), Error: fe.Translate(Translator)})
	}
	return ve
}

// IsValidationError cek error (juga yang sudah di-wrap).
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(errors.Cause(err), &ve) {
		return ve, true
	}
	return nil, false
}

// Messages menggabungkan pesan validasi jadi satu baris untuk flash.
func Messages(err error) string {
	if ve, ok := IsValidationError(err); ok && len(ve.Fields) > 0 {
		parts := make([]string, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			parts = append(parts, f.Error)
		}
		return strings.Join(parts, " ; ")
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
