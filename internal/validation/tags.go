package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
)

// RegisterTags добавляет теги, используемые в DTO запросов:
// linkedin, skillcategory, skilllevel.
func RegisterTags(v *validator.Validate) error {
	if err := v.RegisterValidation("linkedin", func(fl validator.FieldLevel) bool {
		return IsLinkedInURL(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("skillcategory", func(fl validator.FieldLevel) bool {
		return valueobject.Category(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("skilllevel", func(fl validator.FieldLevel) bool {
		return valueobject.Level(fl.Field().String()).IsValid()
	})
}
