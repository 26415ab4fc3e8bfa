package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var hexSigRe = regexp.MustCompile(`^0x[0-9a-fA-F]{130}$`)

// maxNativeDecimals is the precision of the native unit (wei).
const maxNativeDecimals = 18

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("native_amount", validateNativeAmount)
		_ = v.RegisterValidation("hex_sig", validateHexSig)
	}
}

// validateNativeAmount accepts a positive decimal with at most 18 fractional digits.
func validateNativeAmount(fl validator.FieldLevel) bool {
	return IsNativeAmount(fl.Field().String())
}

// IsNativeAmount reports whether s is a positive native-unit decimal string.
func IsNativeAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "eE+") {
		return false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.IsPositive() && d.Exponent() >= -maxNativeDecimals
}

// validateHexSig accepts a 65-byte 0x-prefixed hex signature.
func validateHexSig(fl validator.FieldLevel) bool {
	return hexSigRe.MatchString(fl.Field().String())
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
