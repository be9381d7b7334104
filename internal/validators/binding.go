package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/appointment-services/internal/domain/capacity"
)

// RegisterBindings adds the custom tags used in request structs to gin's
// validator.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	return v.RegisterValidation("weekday", isWeekDay)
}

func isWeekDay(fl validator.FieldLevel) bool {
	_, err := capacity.ParseWeekDay(fl.Field().String())
	return err == nil
}
