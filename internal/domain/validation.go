package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidCurrency          = errors.New("invalid currency code")
	ErrInvalidIdempotencyKey    = errors.New("invalid idempotency key")
	ErrInvalidReferenceNumber   = errors.New("invalid reference number")
	ErrInvalidExternalReference = errors.New("invalid external reference")
	ErrInvalidInitiator         = errors.New("invalid initiator")
	ErrMetadataTooLarge         = errors.New("metadata size exceeds limit")
)

// Validation constants
const (
	MaxIdempotencyKeyLength    = 255
	MaxReferenceNumberLength   = 100
	MaxExternalReferenceLength = 255
	MaxMetadataSize            = 10240 // 10KB
)

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeCurrencyCode upper-cases a code and checks it has three letters.
// Whether the code is convertible is the converter's concern.
func NormalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	if !currencyCodeRegex.MatchString(code) {
		return "", fmt.Errorf("%w: %q must be three letters", ErrInvalidCurrency, code)
	}

	return code, nil
}

// ValidateAmount validates a minor-unit amount.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}
	return nil
}

// ValidateIdempotencyKey validates a caller-supplied idempotency key
func ValidateIdempotencyKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidIdempotencyKey)
	}

	if len(key) > MaxIdempotencyKeyLength {
		return fmt.Errorf("%w: key exceeds %d characters", ErrInvalidIdempotencyKey, MaxIdempotencyKeyLength)
	}

	return nil
}

// ValidateReferenceNumber validates the required reference number
func ValidateReferenceNumber(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return fmt.Errorf("%w: reference number cannot be empty", ErrInvalidReferenceNumber)
	}

	if len(ref) > MaxReferenceNumberLength {
		return fmt.Errorf("%w: reference number exceeds %d characters", ErrInvalidReferenceNumber, MaxReferenceNumberLength)
	}

	return nil
}

// ValidateExternalReference validates the optional external reference
func ValidateExternalReference(ref string) error {
	if len(ref) > MaxExternalReferenceLength {
		return fmt.Errorf("%w: external reference exceeds %d characters", ErrInvalidExternalReference, MaxExternalReferenceLength)
	}
	return nil
}

// ValidateInitiator validates the id of whoever initiated the request
func ValidateInitiator(initiatedBy int64) error {
	if initiatedBy <= 0 {
		return fmt.Errorf("%w: initiatedBy must be a positive id", ErrInvalidInitiator)
	}
	return nil
}

// ValidateMetadata validates metadata size
func ValidateMetadata(metadata map[string]any) error {
	if metadata == nil {
		return nil
	}

	// Estimate size (rough approximation)
	size := 0
	for k, v := range metadata {
		size += len(k)
		size += len(fmt.Sprintf("%v", v))
	}

	if size > MaxMetadataSize {
		return fmt.Errorf("%w: metadata size %d bytes exceeds limit of %d bytes", ErrMetadataTooLarge, size, MaxMetadataSize)
	}

	return nil
}
