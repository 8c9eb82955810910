package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateStruct memvalidasi DTO create/update memakai tag `validate`.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// ValidationError mengubah validator.ValidationErrors menjadi response 422.
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}

	errorsMap := make(map[string][]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = append(errorsMap[fieldErr.Field()], fieldErr.Tag())
	}
	return JsonValidationError(c, errorsMap)
}
