package types

// Webhook envelope types for WhatsApp Cloud API event deliveries.
// Only the fields the pipeline reads are declared; the provider sends more.

type WebhookEnvelope struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

// WebhookValue carries the messages array. Status-only deliveries (read
// receipts etc.) have no messages and are ignored.
type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	ID    string        `json:"id"`
	From  string        `json:"from"`
	Type  string        `json:"type"`
	Text  *WebhookText  `json:"text,omitempty"`
	Audio *WebhookAudio `json:"audio,omitempty"`
}

type WebhookText struct {
	Body string `json:"body"`
}

type WebhookAudio struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
}

// FirstMessage extracts the single message from the nested envelope, or nil
// when the delivery carries none.
func (e *WebhookEnvelope) FirstMessage() *WebhookMessage {
	if len(e.Entry) == 0 || len(e.Entry[0].Changes) == 0 {
		return nil
	}
	msgs := e.Entry[0].Changes[0].Value.Messages
	if len(msgs) == 0 {
		return nil
	}
	return &msgs[0]
}
