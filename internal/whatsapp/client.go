package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client talks to the WhatsApp Cloud API for one phone-number id.
type Client struct {
	baseURL       string
	token         string
	phoneNumberID string
	http          *http.Client
}

// New creates a Cloud API client. baseURL is the Graph API root
// (e.g. https://graph.facebook.com/v19.0); tests point it at a stub.
func New(baseURL, token, phoneNumberID string) *Client {
	return &Client{
		baseURL:       baseURL,
		token:         token,
		phoneNumberID: phoneNumberID,
		http:          &http.Client{},
	}
}

type textPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

// SendText posts a single outbound text message to the given address.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	payload := textPayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: body},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("send failed: status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

// MediaInfo is the metadata the Cloud API returns for a media id. The URL
// is short-lived and must be fetched with the same bearer token.
type MediaInfo struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

// GetMedia resolves a media id to its download URL and MIME type.
func (c *Client) GetMedia(ctx context.Context, mediaID string) (*MediaInfo, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, mediaID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("media lookup failed: status %d: %s", resp.StatusCode, respBody)
	}

	var info MediaInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DownloadMedia fetches the binary content behind a resolved media URL.
func (c *Client) DownloadMedia(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media download failed: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
