package errors

import "math"

// ValidateFinite rejects NaN and infinite values for the named field.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidOption, "%s must be a finite number, got %v", field, v)
	}
	return nil
}

// ValidateNonNegative rejects negative, NaN and infinite values.
func ValidateNonNegative(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidOption, "%s must not be negative, got %v", field, v)
	}
	return nil
}

// ValidatePositive rejects values that are not strictly positive.
func ValidatePositive(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidOption, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidateCanvas checks that both canvas dimensions are positive.
func ValidateCanvas(width, height float64) error {
	if err := ValidatePositive("width", width); err != nil {
		return err
	}
	return ValidatePositive("height", height)
}

// ValidateFormat checks that format is one of the supported values.
func ValidateFormat(format string, supported []string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (supported: %v)", format, supported)
}

// ValidatePadding checks a padding or curvature value in pixels.
func ValidatePadding(field string, v float64) error {
	return ValidateNonNegative(field, v)
}
