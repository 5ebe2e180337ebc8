package internal_conversation_rasa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_language "github.com/Anand38913/Rasa/api/voice-api/internal/language"
	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/config"
	"github.com/Anand38913/Rasa/pkg/commons"
)

const englishFallback = "Sorry, I did not understand that. Could you please repeat?"

func newTestLogger() commons.Logger {
	l, _ := commons.NewApplicationLogger(commons.Level("error"))
	return l
}

func newEngine(url string, timeout time.Duration) internal_type.ConversationEngine {
	return NewRasaEngine(newTestLogger(),
		&config.RasaConfig{Url: url, Timeout: timeout},
		internal_language.NewResolver("hi", nil))
}

func TestSend_JoinsFragments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, WEBHOOK_PATH, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CA1", body["sender"])
		assert.Equal(t, "hello", body["message"])
		metadata := body["metadata"].(map[string]interface{})
		assert.Equal(t, "en", metadata["language"])
		history := metadata["conversation_history"].([]interface{})
		require.Len(t, history, 1)
		assert.Equal(t, "hi", history[0].(map[string]interface{})["user"])
		assert.Equal(t, "hey", history[0].(map[string]interface{})["bot"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"recipient_id":"CA1","text":"Hi"},{"recipient_id":"CA1","image":"x.png"},{"recipient_id":"CA1","text":"there"}]`))
	}))
	defer srv.Close()

	reply := newEngine(srv.URL, time.Second).Send(context.Background(), "CA1", "hello", "en",
		[]internal_type.Turn{{User: "hi", Bot: "hey"}})
	assert.Equal(t, "Hi there", reply)
}

func TestSend_SkipsBlankFragments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"text":"Hi"},{"text":""},{"text":"  "},{"text":" there "}]`))
	}))
	defer srv.Close()

	reply := newEngine(srv.URL, time.Second).Send(context.Background(), "CA1", "hello", "en", nil)
	assert.Equal(t, "Hi there", reply)
}

func TestSend_TrailingEmptyFragment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"text":"Hi"},{"text":""}]`))
	}))
	defer srv.Close()

	reply := newEngine(srv.URL, time.Second).Send(context.Background(), "CA1", "hello", "en", nil)
	assert.Equal(t, "Hi", reply)
}

func TestSend_EmptyHistoryIsArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		metadata := body["metadata"].(map[string]interface{})
		assert.Equal(t, []interface{}{}, metadata["conversation_history"])
		_, _ = w.Write([]byte(`[{"text":"ok"}]`))
	}))
	defer srv.Close()

	assert.Equal(t, "ok", newEngine(srv.URL, time.Second).Send(context.Background(), "CA1", "hello", "en", nil))
}

func TestSend_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"empty list", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}},
		{"no text fragments", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"image":"a.png"}]`))
		}},
		{"blank text", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"text":"  "}]`))
		}},
		{"undecodable", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			reply := newEngine(srv.URL, time.Second).Send(context.Background(), "CA1", "hello", "en", nil)
			assert.Equal(t, englishFallback, reply)
		})
	}
}

func TestSend_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`[{"text":"too late"}]`))
	}))
	defer srv.Close()

	reply := newEngine(srv.URL, 50*time.Millisecond).Send(context.Background(), "CA1", "hello", "en", nil)
	assert.Equal(t, englishFallback, reply)
}

func TestSend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	reply := newEngine(url, time.Second).Send(context.Background(), "CA1", "नमस्ते", "hi", nil)
	assert.Equal(t, "क्षमा करें, मैं आपकी बात समझ नहीं पाया। क्या आप कृपया दोहरा सकते हैं?", reply)
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == STATUS_PATH {
			_, _ = w.Write([]byte(`{"model_file":"x"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	assert.True(t, newEngine(srv.URL, time.Second).Healthy(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()
	assert.False(t, newEngine(down.URL, time.Second).Healthy(context.Background()))
}
