// Package bind decodes and validates JSON request payloads
package bind

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "adrata/internal/platform/errors"
	"adrata/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type ctxKey uint8

const bindJSONPayloadKey ctxKey = iota

// ValidatorSvc holds the singleton validator and its translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc

	// seam so tests can fake trailing data without crafting odd payloads
	jsonMore = func(dec *json.Decoder) bool { return dec.More() }

	// handle ids: workspaces, apps, channels. lowercase, starts alnum
	handleRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// Init builds the singleton validator: english translations, json tag
// names in messages, and the project's custom tags
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		// the stock min/max messages are wordy, shorten them
		registerShortRange(v, trans, "min", "{0} must be at least {1}")
		registerShortRange(v, trans, "max", "{0} must be at most {1}")

		registerHandle(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// RegisterValidation registers a custom tag on the singleton
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// jsonFieldName makes error messages name the json field, not the Go field
func jsonFieldName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	if tag == "-" || tag == "" {
		return fld.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
	AllowEmptyBody  bool  // default false
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{
		MaxBytes:        1 << 20,
		DisallowUnknown: true,
		AllowEmptyBody:  false,
	}
}

// errEmptyBody signals a body with zero bytes; ParseJSON decides per
// method whether that is tolerable
var errEmptyBody = errors.New("empty body")

// payloadReader returns the capped body reader. When empty bodies are
// not allowed it reads one byte ahead to distinguish "no body" from
// "body that fails to decode"
func payloadReader(r *http.Request, o JSONOptions) (io.Reader, error) {
	var body io.Reader = r.Body

	if !o.AllowEmptyBody {
		probe := make([]byte, 1)
		n, _ := r.Body.Read(probe)
		if n == 0 {
			return nil, errEmptyBody
		}
		body = io.MultiReader(bytes.NewReader(probe[:n]), r.Body)
	}

	if o.MaxBytes > 0 {
		body = io.LimitReader(body, o.MaxBytes)
	}
	return body, nil
}

// bodylessMethod reports whether method conventionally carries no payload
func bodylessMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// ParseJSON decodes the request body into T, validates it, and maps
// failures to project error codes
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	reader, err := payloadReader(r, o)
	if err != nil {
		if bodylessMethod(r.Method) {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(reader)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		// EOF is acceptable when empty bodies are allowed
		if o.AllowEmptyBody && errors.Is(err, io.EOF) {
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// validate runs the struct rules and converts the first failure into a
// validation error with a translated message
func validate(dst any) error {
	err := Get().Validator.Struct(dst)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	_, msg := ValidationFieldAndMessage(err)
	return perr.Newf(perr.ErrorCodeValidation, "%s", msg)
}

// JSON parses JSON into T and stores a pointer on the request context
// for downstream handlers
func JSON[T any](opts ...JSONOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			val, err := ParseJSON[T](r, opts...)
			if err != nil {
				// error writing stays with the caller, this middleware is transport-agnostic
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			ctx := context.WithValue(r.Context(), bindJSONPayloadKey, &val)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext retrieves the bound payload if present
func FromContext[T any](r *http.Request) *T {
	v, _ := r.Context().Value(bindJSONPayloadKey).(*T)
	return v
}

// ValidationFieldAndMessage returns the first failing field and its
// translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		return "", inv.Error()
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// registerShortRange swaps in a compact translation for a builtin range tag
func registerShortRange(v *validator.Validate, trans ut.Translator, tag, template string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, template, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// registerHandle wires the custom handle tag used by workspace and channel ids
func registerHandle(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handleRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterTranslation("handle", trans,
		func(ut ut.Translator) error {
			return ut.Add("handle", "{0} must be lowercase letters, digits, - or _", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("handle", fe.Field())
			return msg
		},
	)
}
