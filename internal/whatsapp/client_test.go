package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendText(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"messages":[{"id":"wamid.out"}]}`))
	}))
	defer ts.Close()

	client := New(ts.URL, "wa-token", "phone-id")
	err := client.SendText(context.Background(), "919876543210", "hello there")
	require.NoError(t, err)

	assert.Equal(t, "/phone-id/messages", gotPath)
	assert.Equal(t, "Bearer wa-token", gotAuth)
	assert.Equal(t, "whatsapp", gotBody["messaging_product"])
	assert.Equal(t, "919876543210", gotBody["to"])
	assert.Equal(t, "text", gotBody["type"])
	text, ok := gotBody["text"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hello there", text["body"])
}

func TestSendTextErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := New(ts.URL, "bad-token", "phone-id")
	err := client.SendText(context.Background(), "1555", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestGetMedia(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/media-42", r.URL.Path)
		assert.Equal(t, "Bearer wa-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{
			"url":       "https://lookaside.example/v/t62",
			"mime_type": "audio/ogg; codecs=opus",
		})
	}))
	defer ts.Close()

	client := New(ts.URL, "wa-token", "phone-id")
	info, err := client.GetMedia(context.Background(), "media-42")
	require.NoError(t, err)
	assert.Equal(t, "https://lookaside.example/v/t62", info.URL)
	assert.Equal(t, "audio/ogg; codecs=opus", info.MimeType)
}

func TestDownloadMedia(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer wa-token", r.Header.Get("Authorization"))
		w.Write([]byte("binary-audio"))
	}))
	defer ts.Close()

	client := New(ts.URL, "wa-token", "phone-id")
	data, err := client.DownloadMedia(context.Background(), ts.URL+"/blob")
	require.NoError(t, err)
	assert.Equal(t, []byte("binary-audio"), data)
}

func TestDownloadMediaExpiredURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	client := New(ts.URL, "wa-token", "phone-id")
	_, err := client.DownloadMedia(context.Background(), ts.URL+"/blob")
	assert.Error(t, err)
}
