// Package validatex runs struct tag validation and reports failures as
// errx validation errors.
package validatex

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/go-playground/validator/v10"
)

var ErrRegistry = errx.NewRegistry("REQUEST")

var CodeValidationFailed = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator instance
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("hexcolor", func(fl validator.FieldLevel) bool {
			return kernel.IsHexColor(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct validates s and returns nil or an *errx.Error whose details map
// each offending field to the failed rule.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errx.Wrap(err, "validation could not run", errx.TypeInternal)
	}

	out := ErrRegistry.New(CodeValidationFailed)
	for _, fe := range verrs {
		out = out.WithDetail(fe.Field(), describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
}
