package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	testCases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{name: "keeps remainder verbatim", header: "Bearer  spaced", want: " spaced", ok: true},
		{name: "empty", header: "", ok: false},
		{name: "scheme only", header: "Bearer", ok: false},
		{name: "prefix without token", header: "Bearer ", ok: false},
		{name: "lower case", header: "bearer abc", ok: false},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", ok: false},
		{name: "raw token", header: "abc.def.ghi", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := BearerToken(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, ok := TokenFromRequest(req)
	assert.False(t, ok)

	req.Header.Set(AuthorizationHeader, "Bearer token-value")
	token, ok := TokenFromRequest(req)
	assert.True(t, ok)
	assert.Equal(t, "token-value", token)

	_, ok = TokenFromRequest(nil)
	assert.False(t, ok)
}
