package orderdelivery

import (
	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ValidOperation accepts BUY and SELL in any case.
var ValidOperation validator.Func = func(fl validator.FieldLevel) bool {
	if op, ok := fl.Field().Interface().(string); ok {
		_, err := domain.ParseOperation(op)
		return err == nil
	}

	return false
}
