package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage turns gin binding errors into a caller-friendly
// message, unpacking validator field errors when present.
func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		msgs := make([]string, len(validationErrs))
		for i, fe := range validationErrs {
			msgs[i] = fmt.Sprintf("field %s failed on the %s rule", fe.Field(), fe.Tag())
		}
		return "Invalid request: " + strings.Join(msgs, "; ")
	}
	return "Invalid request format: " + err.Error()
}
