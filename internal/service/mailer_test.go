package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamflix/internal/config"
)

func TestElasticMailerSendResetCode(t *testing.T) {
	var received map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		received = map[string]string{
			"apikey":  r.PostFormValue("apikey"),
			"to":      r.PostFormValue("to"),
			"subject": r.PostFormValue("subject"),
			"body":    r.PostFormValue("bodyText"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewElasticMailer(&config.Config{
		MailAPIKey:   "key-123",
		MailFrom:     "noreply@example.com",
		MailFromName: "StreamFlix",
	})
	m.endpoint = srv.URL

	err := m.SendResetCode("alice@example.com", "123456", 10*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, "key-123", received["apikey"])
	assert.Equal(t, "alice@example.com", received["to"])
	assert.Contains(t, received["body"], "123456")
	assert.Contains(t, received["body"], "10 分钟")
}

func TestElasticMailerUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid apikey", http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewElasticMailer(&config.Config{})
	m.endpoint = srv.URL

	err := m.SendResetCode("alice@example.com", "123456", 10*time.Minute)
	assert.Error(t, err)
}
