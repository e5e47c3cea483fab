package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func channelKeyHash(t *testing.T, key string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBasicAuth(t *testing.T) {
	hash := channelKeyHash(t, "MoragoLedgerKey001")

	tests := []struct {
		name        string
		credentials string
		want        int
	}{
		{name: "valid credentials", credentials: "MoragoApp:MoragoLedgerKey001", want: http.StatusOK},
		{name: "wrong key", credentials: "MoragoApp:WrongKey", want: http.StatusUnauthorized},
		{name: "wrong channel", credentials: "OtherApp:MoragoLedgerKey001", want: http.StatusUnauthorized},
		{name: "missing header", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.credentials != "" {
				req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(tt.credentials)))
			}

			rr := httptest.NewRecorder()
			BasicAuth("MoragoApp", hash)(okHandler()).ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestBasicAuth_MissingConfiguration(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	BasicAuth("MoragoApp", "")(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestActor(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ActorFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ActorHeader, " user-42 ")
	Actor(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "user-42", seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	Actor(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, seen)
}

func TestRequestLogger_PassesStatusThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	RequestLogger(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}
