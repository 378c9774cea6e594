package gateway

import (
	"errors"
	"reflect"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"shareit-backend/internal/clock"
	"shareit-backend/internal/dto"
)

// RegisterValidators adds the gateway's rules to gin's validator:
//
//	future          time strictly after now
//	futureorpresent time not before now
//	notblank        string with non-space content
//
// dto.Timestamp fields are validated as time.Time; a zero Timestamp counts as absent.
func RegisterValidators(clk clock.Clock) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	v.RegisterCustomTypeFunc(timestampValue, dto.Timestamp{})

	if err := v.RegisterValidation("future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(clk.Now())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("futureorpresent", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && !t.Before(clk.Now())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("notblank", validators.NotBlank)
}

func timestampValue(field reflect.Value) any {
	ts, ok := field.Interface().(dto.Timestamp)
	if !ok || ts.IsZero() {
		return nil
	}
	return ts.Time
}
