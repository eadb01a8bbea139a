// Command gw runs a gateway serving a health check and an echo Resource.
//
// Setting JWT_SECRET requires a bearer JWT signed with it to reach the echo Resource;
// Setting GOOGLE_ALLOWED as well, a comma-separated list of emails and @domains,
// requires a Google OAuth2 access token issued to one of them instead.
// Without JWT_SECRET, setting API_KEYS, a comma-separated list,
// requires one of them in an X-Api-Key header.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/cloud-cli/gw"
	"github.com/cloud-cli/gw/auth"
	"github.com/cloud-cli/gw/server"
)

func main() {
	s, err := server.New()
	if err != nil {
		log.Fatal(err)
	}

	hook, err := echoAuth()
	if err != nil {
		log.Fatal(err)
	}

	s.Add("health", gw.Resource{Get: health, Head: health}).
		Add("echo", gw.Resource{
			Auth: hook,
			Body: &gw.BodyConfig{
				JSON:       &gw.BodyOptions{},
				Text:       &gw.BodyOptions{},
				URLEncoded: &gw.BodyOptions{},
			},
			CORS:    &gw.CORSPolicy{AllowedHeaders: []string{"Authorization", "Content-Type", auth.APIKeyHeader}},
			Post:    echo,
			Put:     echo,
			Options: func(http.ResponseWriter, *http.Request) error { return nil },
		})

	if err := s.Guide(); err != nil {
		log.Fatal(err)
	}
}

// echoAuth picks the echo Resource's AuthFunc from the environment.
func echoAuth() (gw.AuthFunc, error) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		svc, err := auth.NewService(secret, os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"))
		if err != nil {
			return nil, err
		}

		if allowed := gw.EnvVarOrStrings("GOOGLE_ALLOWED", nil); allowed != nil {
			return svc.Google(allowed...), nil
		}

		return svc.JWT(nil), nil
	}

	if keys := gw.EnvVarOrStrings("API_KEYS", nil); keys != nil {
		return auth.APIKey(keys...), nil
	}

	return nil, nil
}

func health(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}

	return json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func echo(w http.ResponseWriter, r *http.Request) error {
	body, _ := gw.BodyFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	return json.NewEncoder(w).Encode(map[string]any{
		"body":   body,
		"method": r.Method,
		"path":   r.URL.Path,
	})
}
