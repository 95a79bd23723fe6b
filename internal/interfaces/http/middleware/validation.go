package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures the gin binding validator with custom tags.
// Must be called once before the engine starts serving.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// payment_mode accepts only the supported tender types
	_ = v.RegisterValidation("payment_mode", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "cash", "online":
			return true
		}
		return false
	})
}
