package domain

// Identity is the caller identity carried inside an access token.
type Identity struct {
	ID   string
	Name string
}
