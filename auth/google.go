package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloud-cli/gw"
	"golang.org/x/oauth2"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// FetchUser retrieves the Google account the token was issued for.
func (s *Service) FetchUser(ctx context.Context, token *oauth2.Token) (*goauth2.Userinfo, error) {
	if s.config == nil {
		return nil, fmt.Errorf("%w: google client not configured", ErrNotValid)
	}

	opts := []option.ClientOption{option.WithTokenSource(s.config.TokenSource(ctx, token))}
	if s.endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.endpoint))
	}

	service, err := goauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	user, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotValid, err)
	}

	return user, nil
}

// Google authorizes requests whose bearer token is a Google OAuth2 access token
// issued to an allowed account.
//
// An allowed entry is either an email address or a domain prefixed with "@",
// e.g., "@example.com". No entries allows any Google account.
func (s *Service) Google(allowed ...string) gw.AuthFunc {
	return func(_ http.ResponseWriter, r *http.Request) (bool, error) {
		access, err := BearerToken(r)
		if err != nil {
			return false, err
		}

		user, err := s.FetchUser(r.Context(), &oauth2.Token{AccessToken: access, TokenType: "Bearer"})
		if err != nil {
			return false, err
		}

		if !isAllowed(user.Email, allowed) {
			return false, fmt.Errorf("%w: %s", ErrForbidden, user.Email)
		}

		return true, nil
	}
}

func isAllowed(email string, allowed []string) bool {
	if len(allowed) == 0 {
		return email != ""
	}

	email = strings.ToLower(email)
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return false
	}

	for _, a := range allowed {
		a = strings.ToLower(a)
		if a == email || a == "@"+domain {
			return true
		}
	}

	return false
}
