package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed caller input, rejected before the pipeline runs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderFailure marks a failed or empty provider completion.
	ErrProviderFailure = errors.New("provider failure")

	// Response validation kinds, one per failure mode of the validators.
	ErrInvalidResponseFormat = errors.New("invalid response format")
	ErrMissingField          = errors.New("missing field")
	ErrEmptyField            = errors.New("empty field")
	ErrUnsupportedValue      = errors.New("unsupported value")
	ErrInvalidValue          = errors.New("invalid value")
	ErrArithmeticMismatch    = errors.New("arithmetic mismatch")
	ErrBudgetExceeded        = errors.New("budget exceeded")

	// ErrPersistenceFailure marks a failed document-store write.
	ErrPersistenceFailure = errors.New("persistence failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// IsGenerationFailure reports whether err belongs to the provider/validation
// class: generation failed, nothing was produced worth persisting.
func IsGenerationFailure(err error) bool {
	for _, kind := range []error{
		ErrProviderFailure,
		ErrInvalidResponseFormat,
		ErrMissingField,
		ErrEmptyField,
		ErrUnsupportedValue,
		ErrInvalidValue,
		ErrArithmeticMismatch,
		ErrBudgetExceeded,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
