// Package validate builds the shared request validator with the booking-specific tags.
package validate

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"slotBooker/internal/schedule"
)

var personName = regexp.MustCompile(`^[A-Za-z ]+$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// New returns the process-wide validator. Field names in errors use the json tag.
func New() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// Registration only fails on empty tags or nil funcs.
		_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
			return personName.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("slot", func(fl validator.FieldLevel) bool {
			return schedule.IsValidSlot(fl.Field().String())
		})

		instance = v
	})

	return instance
}
