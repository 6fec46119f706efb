package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"pet-adoption/internal/platform/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Reportar errores con el nombre json del campo, o el nombre en lowerCamel si no tiene tag.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return lowerFirst(f.Name)
		}
		return tag
	})
	return v
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// DecodeJSON decodifica el body (sin campos desconocidos) y valida tags `validate`.
func DecodeJSON(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return apperr.Validation("decode", "invalid json", map[string]string{"body": err.Error()})
	}
	return Struct(dest)
}

// Struct valida un struct ya poblado.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return toAppErr(err)
	}
	return nil
}

// Var valida un valor suelto contra un tag, p.ej. Var("a@b.c", "email").
func Var(field string, v any, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		return apperr.Validation("validate", "validation failed", map[string]string{field: "is invalid"})
	}
	return nil
}

func toAppErr(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("validate", err.Error(), nil)
	}
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = message(fe)
	}
	return apperr.Validation("validate", "validation failed", fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid url"
	}
	return "is invalid"
}
