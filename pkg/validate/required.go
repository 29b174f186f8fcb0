package validate

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// FirstMissing runs the struct's `validate` tags and returns the name of the first
// field, in declaration order, that failed. ok is false when every field passed.
func FirstMissing(v any) (field string, ok bool) {
	err := get().Struct(v)
	if err == nil {
		return "", false
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), true
	}
	return "", true
}
