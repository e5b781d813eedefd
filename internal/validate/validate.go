// Package validate checks payloads and configuration against their
// `validate` tags before anything is sent, reporting every failure as a
// FieldError keyed by the field's JSON path.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

type engine struct {
	v     *validator.Validate
	trans ut.Translator
}

var load = sync.OnceValues(func() (engine, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return engine{}, fmt.Errorf("registering english translations: %w", err)
	}

	return engine{v: v, trans: trans}, nil
})

// jsonName reports fields by their JSON name so errors match the wire format.
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// Struct validates val against its tags. Tag failures come back as
// FieldErrors; anything else, such as a non-struct val, is returned as is.
func Struct(val any) error {
	e, err := load()
	if err != nil {
		return err
	}

	err = e.v.Struct(val)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, len(verrs))
	for i, ve := range verrs {
		fields[i] = FieldError{Field: path(ve), Err: e.message(ve)}
	}

	return fields
}

// path drops the root type from the namespace: "Config.limits.posts.window"
// becomes "limits.posts.window".
func path(ve validator.FieldError) string {
	_, rest, ok := strings.Cut(ve.Namespace(), ".")
	if !ok {
		return ve.Field()
	}
	return rest
}

func (e engine) message(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "This field is required"
	case "e164":
		return "must be a phone number in E.164 format, e.g. +14155550100"
	case "http_url":
		return "must be an absolute http or https URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(ve.Param(), " ", ", ")
	default:
		return ve.Translate(e.trans)
	}
}

// FieldError is a single failed field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors lists every field that failed validation.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	var b strings.Builder
	for i, f := range fe {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Field + ": " + f.Err)
	}
	return b.String()
}

// Fields returns the failed fields keyed by path.
func (fe FieldErrors) Fields() map[string]string {
	m := make(map[string]string, len(fe))
	for _, f := range fe {
		m[f.Field] = f.Err
	}
	return m
}
