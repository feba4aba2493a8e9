package usecase

import "errors"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var target *DomainError
	return errors.As(err, &target)
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var target *TechnicalError
	return errors.As(err, &target)
}

// ErrorCode devolve o código de um DomainError ou TechnicalError, ou "" para outros erros.
func ErrorCode(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	var techErr *TechnicalError
	if errors.As(err, &techErr) {
		return techErr.Code
	}
	return ""
}

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeInvalidSession = "INVALID_SESSION"
	CodePriceLookup    = "PRICE_LOOKUP_FAILED"
	CodeSankhya        = "SANKHYA_ERROR"
	CodeLeadTotalStale = "LEAD_TOTAL_STALE"
)
