package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/zalando/go-keyring"
)

func TestPasswordRoundTripThroughKeyring(t *testing.T) {
	keyring.MockInit()

	_, err := LookupPassword("alice")
	require.Error(t, err, "No password stored yet")
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	require.NoError(t, StorePassword("alice", "s3cret"))

	pass, err := LookupPassword("alice")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pass)
}

func TestBasicAuth(t *testing.T) {
	srv := New("0", Options{AuthUser: "alice", AuthPass: "s3cret"})
	srv.Update([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR"))
	h := srv.Handler()

	tests := []struct {
		name       string
		path       string
		user, pass string
		want       int
	}{
		{"Health is public", config.PathHealth, "", "", http.StatusOK},
		{"No credentials", config.RouteCalendar, "", "", http.StatusUnauthorized},
		{"Wrong password", config.RouteCalendar, "alice", "nope", http.StatusUnauthorized},
		{"Wrong user", "/api/people", "bob", "s3cret", http.StatusUnauthorized},
		{"Valid credentials", config.RouteCalendar, "alice", "s3cret", http.StatusOK},
		{"Valid credentials on API", "/api/people", "alice", "s3cret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.user != "" {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, config.BasicAuthRealm, w.Header().Get(config.HeaderAuthenticate))
			}
		})
	}
}

func TestBasicAuth_DisabledWithoutPassword(t *testing.T) {
	srv := New("0", Options{AuthUser: "alice"})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/people", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
