package domain

import (
	"errors"
	"fmt"
)

// Category sentinels. Callers classify failures with errors.Is against these.
var (
	ErrValidation           = fmt.Errorf("validation failed")
	ErrConversationNotFound = fmt.Errorf("conversation not found")
	ErrRepository           = fmt.Errorf("repository operation failed")
	ErrUseCase              = fmt.Errorf("use case failed")
)

// Specific sentinels. Each wraps exactly one category sentinel.
var (
	ErrInvalidMessage        = fmt.Errorf("invalid message: %w", ErrValidation)
	ErrInvalidConversationID = fmt.Errorf("invalid conversation id: %w", ErrValidation)
	ErrInvalidPersonality    = fmt.Errorf("invalid personality: %w", ErrValidation)
	ErrInvalidConversation   = fmt.Errorf("invalid conversation: %w", ErrValidation)

	// ErrConflict is returned by Update when the stored version moved on
	// since the conversation was loaded.
	ErrConflict = fmt.Errorf("concurrent update conflict: %w", ErrRepository)
	// ErrStoreUnavailable is returned while a store circuit breaker is open.
	ErrStoreUnavailable = fmt.Errorf("store unavailable: %w", ErrRepository)
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op     string // operation name (e.g., "Conversation.AddUserMessage")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// RepositoryError tags a storage failure with ErrRepository while keeping the
// driver error reachable through errors.Is / errors.As.
func RepositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRepository) || errors.Is(err, ErrConversationNotFound) {
		return WrapOp(op, err)
	}
	if errors.Is(err, ErrValidation) {
		// A stored record that no longer validates is corrupt, not bad input.
		return fmt.Errorf("%s: %w: corrupt record: %v", op, ErrRepository, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrRepository, err)
}

// UseCaseError is the catch-all failure of a use case. It carries the use
// case name so transports can log where an unexpected failure surfaced.
type UseCaseError struct {
	UseCase string
	Err     error
}

func (e *UseCaseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.UseCase, ErrUseCase, e.Err)
}

func (e *UseCaseError) Unwrap() []error { return []error{ErrUseCase, e.Err} }

// WrapUseCase lets validation and not-found errors through unchanged and
// wraps everything else in a *UseCaseError.
func WrapUseCase(useCase string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrConversationNotFound) {
		return err
	}
	var uce *UseCaseError
	if errors.As(err, &uce) {
		return err
	}
	return &UseCaseError{UseCase: useCase, Err: err}
}

// ErrorCode is a machine-parseable error category exposed to clients and logs.
type ErrorCode string

const (
	CodeUnknown              ErrorCode = "UNKNOWN"
	CodeValidation           ErrorCode = "VALIDATION_ERROR"
	CodeConversationNotFound ErrorCode = "CONVERSATION_NOT_FOUND"
	CodeRepository           ErrorCode = "REPOSITORY_ERROR"
	CodeConflict             ErrorCode = "CONFLICT"
	CodeStoreUnavailable     ErrorCode = "STORE_UNAVAILABLE"
	CodeUseCase              ErrorCode = "USE_CASE_ERROR"
)

// errorCodeOrder is checked front to back; specific sentinels precede the
// categories they wrap.
var errorCodeOrder = []struct {
	sentinel error
	code     ErrorCode
}{
	{ErrValidation, CodeValidation},
	{ErrConversationNotFound, CodeConversationNotFound},
	{ErrConflict, CodeConflict},
	{ErrStoreUnavailable, CodeStoreUnavailable},
	{ErrRepository, CodeRepository},
	{ErrUseCase, CodeUseCase},
}

// ErrorCodeOf returns the machine-parseable error code for the given error.
// Returns CodeUnknown if no matching sentinel is found.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}
	for _, e := range errorCodeOrder {
		if errors.Is(err, e.sentinel) {
			return e.code
		}
	}
	return CodeUnknown
}

// Code returns the ErrorCode for this DomainError's underlying sentinel.
func (e *DomainError) Code() ErrorCode {
	return ErrorCodeOf(e.Err)
}
