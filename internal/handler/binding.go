package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
)

// bindingError converts a gin binding failure into a validation error with a
// readable field list instead of validator's struct-path dump.
func bindingError(err error) *apperrors.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "request body could not be parsed")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status,
		"invalid request fields: "+strings.Join(fields, ", "))
}
