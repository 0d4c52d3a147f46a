package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/kasapp/cashledger/internal/core/domain"
)

func init() {
	registerCustomValidators()
}

// registerCustomValidators installs binding validators on gin's validator
// engine. Safe to call more than once.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("fullreference", validFullReference)
	}
}

// validFullReference accepts scanned slip references: uppercase
// alphanumeric, long enough to hold a currency code, a branch code and a
// generated reference.
func validFullReference(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	// 3-letter currency code + 1-char branch code minimum + prefix + sequence
	if len(s) < 3+1+domain.ReferencePrefixLen+1 {
		return false
	}
	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		isUpper := r >= 'A' && r <= 'Z'
		if !isDigit && !isUpper {
			return false
		}
	}
	return true
}
