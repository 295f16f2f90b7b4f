package webhook

import (
	"encoding/json"
	"net/http"

	"paisabot/internal/httputil"
	"paisabot/internal/logging"
	"paisabot/internal/logic/pipeline"
	"paisabot/internal/svc"
	"paisabot/internal/types"
)

// EventHandler accepts event deliveries. The response is committed as
// 200 "OK" no matter what happens downstream, so the provider never
// redelivers an event because the pipeline struggled with it; all real
// outcomes travel back to the sender as chat replies.
func EventHandler(svcCtx *svc.ServiceContext, p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Commit the transport response first.
		defer httputil.PlainText(w, http.StatusOK, "OK")

		var envelope types.WebhookEnvelope
		if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
			logging.Warnf("webhook payload undecodable: %v", err)
			return
		}

		msg := envelope.FirstMessage()
		if msg == nil {
			// Delivery-status callbacks carry no messages; accepted and ignored.
			return
		}

		inbound, ok := toInbound(msg)
		if !ok {
			logging.Infof("ignoring unsupported message type %q from %s", msg.Type, msg.From)
			return
		}

		p.Handle(r.Context(), inbound)
	}
}

// toInbound converts a webhook message into the pipeline's immutable input.
// Only text and audio messages are processed.
func toInbound(m *types.WebhookMessage) (types.InboundMessage, bool) {
	switch m.Type {
	case "text":
		if m.Text == nil {
			return types.InboundMessage{}, false
		}
		return types.InboundMessage{
			MessageID: m.ID,
			From:      m.From,
			Kind:      types.KindText,
			Text:      m.Text.Body,
		}, true
	case "audio", "voice":
		if m.Audio == nil {
			return types.InboundMessage{}, false
		}
		return types.InboundMessage{
			MessageID: m.ID,
			From:      m.From,
			Kind:      types.KindAudio,
			MediaID:   m.Audio.ID,
		}, true
	}
	return types.InboundMessage{}, false
}
