package auth

import (
	"fmt"
	"net/http"
	"strings"
)

const bearerPrefix = "bearer "

// BearerToken retrieves the token from the request's "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if len(h) <= len(bearerPrefix) || !strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return "", fmt.Errorf("%w: no bearer Authorization header", ErrNoToken)
	}

	return strings.TrimSpace(h[len(bearerPrefix):]), nil
}
