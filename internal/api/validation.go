package api

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipes-service/internal/mapper"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding rules and makes validation errors report
// JSON field names. It is safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		v.RegisterTagNameFunc(fieldName)
		if err := v.RegisterValidation("notblank", notBlank); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("noseparator", noSeparator)
	})
	return registerErr
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// noSeparator rejects ingredient tokens that would split differently once stored.
func noSeparator(fl validator.FieldLevel) bool {
	return !strings.Contains(fl.Field().String(), mapper.IngredientSeparator)
}
