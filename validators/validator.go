package validators

import (
	"net/http"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// EmailRegex validates the standard user@domain.ext shape.
var EmailRegex = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// ValidPassword reports whether a password is 6 to 20 characters with at
// least one digit, one lowercase and one uppercase letter.
func ValidPassword(password string) bool {
	if len(password) < 6 || len(password) > 20 {
		return false
	}
	var digit, lower, upper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && lower && upper
}

// CustomValidator adapts go-playground/validator to echo's Validator interface
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate runs struct validation and maps failures to a 400
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
