package apperrors

import "errors"

// Calculation errors terminate a single calculation and are returned to the caller unchanged in kind.
var (
	// ErrInvalidData indicates an empty price series or a non-positive price.
	ErrInvalidData = errors.New("invalid price data")

	// ErrInsufficientHistory indicates the requested tenure exceeds the available periods.
	ErrInsufficientHistory = errors.New("insufficient price history")

	// ErrInvalidPlan indicates a negative tenure or contribution.
	ErrInvalidPlan = errors.New("invalid investment plan")
)

// Lookup and parsing errors.
var (
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrInvalidDate       = errors.New("invalid date")
)

// Display errors.
var (
	// ErrAmountOutOfRange indicates a value that cannot be shown as rupees and paise.
	ErrAmountOutOfRange = errors.New("amount out of displayable range")
)
