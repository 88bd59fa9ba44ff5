// Package bind decodes request bodies and runs struct validation for handlers
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "beaconpair/internal/platform/errors"
	"beaconpair/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps request bodies when Options.MaxBytes is zero
const DefaultMaxBytes int64 = 1 << 20

// Options tunes ParseJSON
type Options struct {
	MaxBytes   int64 // zero means DefaultMaxBytes
	AllowEmpty bool  // an empty body yields the zero value instead of an error
}

type checker struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	chkOnce sync.Once
	chk     *checker
)

func get() *checker {
	chkOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		for tag, text := range shortMessages {
			override(v, trans, tag, text)
		}
		chk = &checker{v: v, trans: trans}
	})
	return chk
}

// messages read better than the library defaults for the tags request bodies use
var shortMessages = map[string]string{
	"min":              "{0} must be at least {1}",
	"max":              "{0} must be at most {1}",
	"required_without": "{0} is required when {1} is absent",
	"excluded_with":    "{0} cannot be combined with {1}",
}

func override(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), paramName(fe.Param()))
			return msg
		},
	)
}

// paramName lowercases struct field references in cross-field params, Chunks -> chunks
func paramName(p string) string {
	if p == "" || strings.ContainsAny(p, " 0123456789") {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "":
		return f.Name
	case "-":
		return ""
	}
	return name
}

// ParseJSON reads one JSON document into T, rejecting unknown fields and trailing data,
// then validates it. Failures come back as ErrorCodeJSON or ErrorCodeValidation
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var out T
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}

	body, err := readBody(r, o.MaxBytes)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if o.AllowEmpty || !hasBody(r.Method) {
			return out, nil
		}
		return out, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var zero T
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := get().v.Struct(out); err != nil {
		var zero T
		return zero, toErr(err, "")
	}
	return out, nil
}

// Var validates one value against a tag list such as "required,uuid".
// field names the value in the error
func Var(field string, value any, tag string) error {
	if err := get().v.Var(value, tag); err != nil {
		return toErr(err, field)
	}
	return nil
}

// Describe returns the first failing field and its translated message
func Describe(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field(), strings.TrimSpace(fe.Translate(get().trans))
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}

func toErr(err error, field string) error {
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator misuse")
		return perr.JSONErrf("validation error")
	}
	f, msg := Describe(err)
	if field != "" {
		// Var reports no field of its own
		msg = field + " " + msg
		f = field
	}
	return perr.WithField(perr.New(perr.ErrorCodeValidation, msg), f)
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Warn().Err(err).Msg("close request body")
		}
	}()
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, perr.JSONErrf("read body: %v", err)
	}
	if int64(len(body)) > limit {
		return nil, perr.JSONErrf("body exceeds %d bytes", limit)
	}
	return body, nil
}

func hasBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return false
	}
	return true
}
