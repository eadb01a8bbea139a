package auth

import (
	"fmt"
	"net/http"

	"github.com/cloud-cli/gw"
	"github.com/golang-jwt/jwt/v4"
)

// AuthenticateJWT decodes jwt claims from the request's bearer token,
// falling back to the "jwt" query param.
// If neither is set, AuthenticateJWT returns ErrNoToken.
// Please note that the consuming party needs to pass appToken as a pointer
// so that it can be hydrated by ParseWithClaims.
func (s *Service) AuthenticateJWT(r *http.Request, appToken jwt.Claims) (jwt.Claims, error) {
	reqToken, err := BearerToken(r)
	if err != nil {
		reqToken = r.URL.Query().Get("jwt")
	}

	if reqToken == "" {
		return nil, fmt.Errorf("%w: no bearer token or jwt param set", ErrNoToken)
	}

	token, err := s.parser.ParseWithClaims(reqToken, appToken, func(token *jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotValid, err)
	}

	return token.Claims, nil
}

// JWT authorizes requests carrying a valid JWT signed with the Service's key.
//
// newClaims constructs the claims each token is decoded into;
// a nil newClaims decodes into jwt.RegisteredClaims.
func (s *Service) JWT(newClaims func() jwt.Claims) gw.AuthFunc {
	if newClaims == nil {
		newClaims = func() jwt.Claims { return new(jwt.RegisteredClaims) }
	}

	return func(_ http.ResponseWriter, r *http.Request) (bool, error) {
		if _, err := s.AuthenticateJWT(r, newClaims()); err != nil {
			return false, err
		}

		return true, nil
	}
}

// SignJWT signs claims with the Service's key.
func (s *Service) SignJWT(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	return signed, nil
}
