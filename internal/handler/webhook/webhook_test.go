package webhook

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paisabot/internal/config"
	"paisabot/internal/db"
	"paisabot/internal/logging"
	"paisabot/internal/logic/pipeline"
	"paisabot/internal/svc"
	"paisabot/internal/whatsapp"
)

func testContext(t *testing.T) (*svc.ServiceContext, *httptest.Server, *[]string) {
	t.Helper()
	logging.Disable()

	var sent []string
	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sent = append(sent, r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(graph.Close)

	store, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svcCtx := &svc.ServiceContext{
		Config: config.Config{
			VerifyToken: "secret-token",
			OpenAIKey:   "sk-default",
		},
		DB:       store,
		WhatsApp: whatsapp.New(graph.URL, "wa-token", "pnid"),
	}
	return svcCtx, graph, &sent
}

func TestVerifyHandshakeEchoesChallenge(t *testing.T) {
	svcCtx, _, _ := testContext(t)
	handler := VerifyHandler(svcCtx)

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", rec.Body.String(), "challenge must be echoed verbatim")
}

func TestVerifyHandshakeRejectsBadToken(t *testing.T) {
	svcCtx, _, _ := testContext(t)
	handler := VerifyHandler(svcCtx)

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "12345", "the challenge is never echoed on mismatch")
}

func TestVerifyBareRequestIsHealthCheck(t *testing.T) {
	svcCtx, _, _ := testContext(t)
	handler := VerifyHandler(svcCtx)

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), `"status"`)
}

func TestVerifyUnconfiguredTokenIs500(t *testing.T) {
	svcCtx, _, _ := testContext(t)
	svcCtx.Config.VerifyToken = ""
	handler := VerifyHandler(svcCtx)

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=x&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEventDeliveryAlwaysReturns200(t *testing.T) {
	svcCtx, _, _ := testContext(t)
	handler := EventHandler(svcCtx, pipeline.New(svcCtx))

	payloads := []string{
		// Delivery-status callback: no messages, accepted and ignored.
		`{"object":"whatsapp_business_account","entry":[{"changes":[{"value":{"statuses":[{"id":"x"}]}}]}]}`,
		// Garbage body.
		`this is not json`,
		// Empty envelope.
		`{}`,
		// Unsupported message type.
		`{"entry":[{"changes":[{"value":{"messages":[{"id":"wamid.1","from":"1555","type":"image"}]}}]}]}`,
	}

	for _, body := range payloads {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "payload: %s", body)
		assert.Equal(t, "OK", rec.Body.String())
	}
}

func TestEventDeliveryRunsPipeline(t *testing.T) {
	svcCtx, _, sent := testContext(t)
	handler := EventHandler(svcCtx, pipeline.New(svcCtx))

	// Unlinked sender: the pipeline halts with a linking reply, and the
	// transport response is still a plain 200.
	body := `{"entry":[{"changes":[{"value":{"messages":[
		{"id":"wamid.1","from":"919876543210","type":"text","text":{"body":"coffee 50"}}
	]}}]}]}`

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	require.Len(t, *sent, 1, "exactly one outbound reply")
	assert.Equal(t, "/pnid/messages", (*sent)[0])
}
