package auth

import (
	"errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

// FailureKind classifies why a token was rejected.
type FailureKind string

const (
	FailureMissingHeader    FailureKind = "missing_header"
	FailureMalformedToken   FailureKind = "malformed_token"
	FailureInvalidSignature FailureKind = "invalid_signature"
	FailureExpired          FailureKind = "expired"
)

// TokenError is the failure outcome of Decode.
type TokenError struct {
	Kind FailureKind
	Err  error
}

// Sentinels for errors.Is checks against a failure kind.
var (
	ErrMissingHeader    = &TokenError{Kind: FailureMissingHeader}
	ErrMalformedToken   = &TokenError{Kind: FailureMalformedToken}
	ErrInvalidSignature = &TokenError{Kind: FailureInvalidSignature}
	ErrExpired          = &TokenError{Kind: FailureExpired}
)

func (e *TokenError) Error() string {
	if e.Err != nil {
		return "token " + string(e.Kind) + ": " + e.Err.Error()
	}
	return "token " + string(e.Kind)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// Is matches any TokenError of the same kind.
func (e *TokenError) Is(target error) bool {
	t, ok := target.(*TokenError)
	return ok && t.Kind == e.Kind
}

// KindOf reports the failure kind carried by err, if any.
func KindOf(err error) (FailureKind, bool) {
	var tokenErr *TokenError
	if errors.As(err, &tokenErr) {
		return tokenErr.Kind, true
	}
	return "", false
}

func classify(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Kind: FailureExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return &TokenError{Kind: FailureInvalidSignature, Err: err}
	default:
		return &TokenError{Kind: FailureMalformedToken, Err: err}
	}
}
