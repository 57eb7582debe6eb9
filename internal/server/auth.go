package server

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/zalando/go-keyring"
)

// LookupPassword reads the basic-auth password for user from the OS keyring.
func LookupPassword(user string) (string, error) {
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringLookup, err)
	}
	return pass, nil
}

// StorePassword saves the basic-auth password for user in the OS keyring.
func StorePassword(user, pass string) error {
	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringStore, err)
	}
	return nil
}

// basicAuth guards every route except the health probe.
func basicAuth(next http.Handler, user, pass string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == config.PathHealth {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, user) || !secureCompare(p, pass) {
			w.Header().Set(config.HeaderAuthenticate, config.BasicAuthRealm)
			http.Error(w, config.HTTPMsgUnauthorized, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
