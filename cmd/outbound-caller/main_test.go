package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anand38913/Rasa/pkg/commons"
)

func newTestLogger() commons.Logger {
	l, _ := commons.NewApplicationLogger(commons.Level("error"))
	return l
}

func newViper(serverUrl string) *viper.Viper {
	v := viper.New()
	v.Set("SERVER_URL", serverUrl)
	v.Set("SUPPORTED_LANGUAGES", "hi,te,en,ur")
	return v
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), nil, newViper(""), newTestLogger(), &out)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Usage: outbound-caller")
	assert.Contains(t, out.String(), "te - Telugu")
}

func TestRun_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing plus", []string{"919876543210", "hi"}},
		{"too short", []string{"+91987", "hi"}},
		{"unsupported language", []string{"+919876543210", "fr"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, 1, run(context.Background(), tt.args, newViper("http://127.0.0.1:1"), newTestLogger(), &out))
		})
	}
}

func TestRun_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+919876543210", body["to_number"])
		assert.Equal(t, "hi", body["language"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","call_sid":"CA77","to":"+919876543210","language":"hi"}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	code := run(context.Background(), []string{"+919876543210"}, newViper(srv.URL), newTestLogger(), &out)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Call initiated successfully")
	assert.Contains(t, out.String(), "CA77")
}

func TestRun_ServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"twilio down"}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	code := run(context.Background(), []string{"+919876543210", "en"}, newViper(srv.URL), newTestLogger(), &out)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Failed to initiate call")
}
