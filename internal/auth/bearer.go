package auth

import (
	"net/http"
	"strings"
)

// BearerPrefix is the exact Authorization scheme prefix accepted for tokens.
const BearerPrefix = "Bearer "

// AuthorizationHeader is the header carrying the bearer token.
const AuthorizationHeader = "Authorization"

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := header[len(BearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

// TokenFromRequest extracts the bearer token from the request headers.
func TokenFromRequest(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	return BearerToken(r.Header.Get(AuthorizationHeader))
}
