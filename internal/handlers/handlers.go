package handlers

import (
	"errors"

	"roomly/internal/common"
)

func errorIsValidation(err error) bool {
	return errors.Is(err, common.ErrValidation)
}
