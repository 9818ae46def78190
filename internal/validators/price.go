package validators

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Prices are stored as decimal(10,2): at most eight integer digits and two
// fraction digits, never negative.
var pricePattern = regexp.MustCompile(`^[0-9]{1,8}(\.[0-9]{1,2})?$`)

func IsPrice(s string) bool {
	return pricePattern.MatchString(s)
}

// Register installs the custom binding tags on gin's validator engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return IsPrice(fl.Field().String())
	})
}
