package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/cloud-cli/gw"
)

// APIKeyHeader is the header APIKey reads keys from.
const APIKeyHeader = "X-Api-Key"

// APIKey authorizes requests whose X-Api-Key header matches one of keys.
func APIKey(keys ...string) gw.AuthFunc {
	return func(_ http.ResponseWriter, r *http.Request) (bool, error) {
		got := r.Header.Get(APIKeyHeader)
		if got == "" {
			return false, fmt.Errorf("%w: no %s header", ErrNoToken, APIKeyHeader)
		}

		for _, k := range keys {
			if k != "" && subtle.ConstantTimeCompare([]byte(got), []byte(k)) == 1 {
				return true, nil
			}
		}

		return false, nil
	}
}
