package auth

import (
	"fmt"
	"net/http"

	apperrors "github.com/spec-kit/crud-backends/pkg/util"
)

// ErrorCode is the machine-readable reason a request was rejected.
type ErrorCode string

const (
	CodeHeaderMissing ErrorCode = "authorization_header_missing"
	CodeInvalidHeader ErrorCode = "invalid_header"
	CodeInvalidToken  ErrorCode = "invalid_token"
	CodeTokenExpired  ErrorCode = "token_expired"
	CodeInvalidClaims ErrorCode = "invalid_claims"
	CodeForbidden     ErrorCode = "forbidden"
)

// AuthError is a terminal authorization failure for one request.
type AuthError struct {
	Code        ErrorCode
	Description string
	Status      int
	Err         error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// DomainError renders the failure in the shared error envelope. The reason code doubles as the
// message so clients can switch on it.
func (e *AuthError) DomainError() *apperrors.DomainError {
	return &apperrors.DomainError{
		Code:       string(e.Code),
		Message:    string(e.Code),
		HTTPStatus: e.Status,
		Details:    map[string]any{"description": e.Description},
		Err:        e.Err,
	}
}

func unauthorized(code ErrorCode, description string, err error) *AuthError {
	return &AuthError{Code: code, Description: description, Status: http.StatusUnauthorized, Err: err}
}

func forbidden(description string) *AuthError {
	return &AuthError{Code: CodeForbidden, Description: description, Status: http.StatusForbidden}
}
