package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// registerBusinessRules registers custom business rule validators
func registerBusinessRules(validate *validator.Validate) {
	// "mixed" or a single difficulty level, case-insensitive
	validate.RegisterValidation("difficulty_mode", func(fl validator.FieldLevel) bool {
		mode := models.DifficultyMode(fl.Field().String())
		if mode.IsMixed() {
			return true
		}
		_, err := mode.Level()
		return err == nil
	})
}
