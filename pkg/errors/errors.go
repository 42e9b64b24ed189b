package errors

import (
	"errors"
	"fmt"
)

// Error categories. Every BusinessError wraps exactly one of these so callers
// can branch with errors.Is regardless of the specific code.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrDatabase          = errors.New("database error")
	ErrCache             = errors.New("cache error")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeInvalidInterestRate = "INVALID_INTEREST_RATE"
	ErrCodeInvalidRequest      = "INVALID_REQUEST"
	ErrCodeOverpayment         = "OVERPAYMENT"
	ErrCodeNoInterest          = "NO_INTEREST_TO_CAPITALIZE"
	ErrCodeDuplicatePhone      = "DUPLICATE_PHONE"
	ErrCodeSameAccount         = "SAME_ACCOUNT"
	ErrCodePartyNotFound       = "PARTY_NOT_FOUND"
	ErrCodeBankAccountNotFound = "BANK_ACCOUNT_NOT_FOUND"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	ErrCodeNothingOwed         = "NOTHING_OWED"
	ErrCodeInvalidPassword     = "INVALID_PASSWORD"
	ErrCodeInvalidToken        = "INVALID_TOKEN"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
	ErrCodeAccrualInProgress   = "ACCRUAL_IN_PROGRESS"
)

func WrapInvalidAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Amount must be greater than 0, got %s", amount),
		ErrValidation,
	)
}

func WrapInvalidInterestRate(rate string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInterestRate,
		fmt.Sprintf("Interest rate must be 0 or greater, got %s", rate),
		ErrValidation,
	)
}

func WrapInvalidRequest(message string) *BusinessError {
	return NewBusinessError(ErrCodeInvalidRequest, message, ErrValidation)
}

func WrapOverpayment(amount, totalDue string) *BusinessError {
	return NewBusinessError(
		ErrCodeOverpayment,
		fmt.Sprintf("Payment %s exceeds total due %s", amount, totalDue),
		ErrValidation,
	)
}

func WrapNoInterest() *BusinessError {
	return NewBusinessError(
		ErrCodeNoInterest,
		"No interest to add to principal",
		ErrValidation,
	)
}

func WrapDuplicatePhone(phone string) *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicatePhone,
		fmt.Sprintf("A party with phone number %s already exists", phone),
		ErrValidation,
	)
}

func WrapSameAccount() *BusinessError {
	return NewBusinessError(
		ErrCodeSameAccount,
		"Source and destination accounts must be different",
		ErrValidation,
	)
}

func WrapPartyNotFound(kind, id string) *BusinessError {
	return NewBusinessError(
		ErrCodePartyNotFound,
		fmt.Sprintf("%s with ID %s not found", kind, id),
		ErrNotFound,
	)
}

func WrapBankAccountNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeBankAccountNotFound,
		fmt.Sprintf("Bank account with ID %s not found", id),
		ErrNotFound,
	)
}

func WrapUserNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeUserNotFound,
		fmt.Sprintf("User with ID %s not found", id),
		ErrNotFound,
	)
}

func WrapInsufficientBalance(balance, amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInsufficientBalance,
		fmt.Sprintf("Insufficient balance: have %s, need %s", balance, amount),
		ErrInsufficientFunds,
	)
}

func WrapNothingOwed() *BusinessError {
	return NewBusinessError(
		ErrCodeNothingOwed,
		"Party has no amount due",
		ErrInsufficientFunds,
	)
}

func WrapInvalidPassword() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPassword,
		"Invalid password",
		ErrUnauthorized,
	)
}

func WrapInvalidToken(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidToken,
		fmt.Sprintf("Invalid or expired token: %v", err),
		ErrUnauthorized,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		fmt.Errorf("%w: %w", ErrDatabase, err),
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		fmt.Errorf("%w: %w", ErrCache, err),
	)
}

func WrapAccrualInProgress(scope string) *BusinessError {
	return NewBusinessError(
		ErrCodeAccrualInProgress,
		fmt.Sprintf("Interest accrual already running for %s", scope),
		ErrValidation,
	)
}

// Code returns the BusinessError code carried by err, or "" if there is none.
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
