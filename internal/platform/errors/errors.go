package errors

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain is the error domain reported in gRPC error details.
const Domain = "github.com/Steffo99/royalspells"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context, e.g. offending parameters
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithMetadata creates a domain error with both metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
		Cause:    cause,
	}
}

// GetCode returns the code of the first *Error in err's chain, or
// CodeUnknown.
func GetCode(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// ToGRPCStatus converts the error to a gRPC status carrying an ErrorInfo
// detail with the code and metadata.
func (e *Error) ToGRPCStatus() error {
	grpcCode := e.Code.GRPCCode()
	st := status.New(grpcCode, e.Message)

	st, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   string(e.Code),
		Domain:   Domain,
		Metadata: e.Metadata,
	})
	if err != nil {
		// If we can't attach details, return the basic status
		return status.New(grpcCode, e.Message).Err()
	}
	return st.Err()
}

// ToGRPCStatus converts any error to a gRPC status error. Domain errors keep
// their mapped code and details; other errors become Internal.
func ToGRPCStatus(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.ToGRPCStatus()
	}
	return status.Error(CodeUnknown.GRPCCode(), err.Error())
}
