package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
)

// Service builds gw.AuthFuncs verifying JWTs signed with its key
// and, when configured with a Google client, Google OAuth2 access tokens.
type Service struct {
	config   *oauth2.Config
	endpoint string
	key      []byte
	parser   *jwt.Parser
}

// A ServiceOptFn is a functional option configuring a Service when constructing a new one.
type ServiceOptFn func(*Service)

// WithGoogleEndpoint overrides the base URL of the Google OAuth2 API.
func WithGoogleEndpoint(url string) func(*Service) {
	return func(s *Service) {
		s.endpoint = url
	}
}

// NewService constructs a *Service signing and verifying JWTs with jwtKey.
//
// Google OAuth2 support requires both googleClient and googleSecret;
// leaving both empty disables it.
func NewService(jwtKey, googleClient, googleSecret string, opts ...ServiceOptFn) (*Service, error) {
	if jwtKey == "" {
		return nil, fmt.Errorf(`%w: jwt key cannot be ""`, ErrNotValid)
	}

	if (googleClient == "") != (googleSecret == "") {
		return nil, fmt.Errorf("%w: google client and secret must be set together", ErrNotValid)
	}

	s := &Service{
		key:    []byte(jwtKey),
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}

	if googleClient != "" {
		s.config = &oauth2.Config{
			ClientID:     googleClient,
			ClientSecret: googleSecret,
			Scopes:       []string{goauth2.UserinfoEmailScope},
			Endpoint:     google.Endpoint,
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}
