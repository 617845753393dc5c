package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
)

// Sender delivers transactional email. Callers must treat failures as
// non-fatal: a registration response is identical whether or not the
// verification email actually went out.
type Sender interface {
	Send(to, subject, body string) error
}

// Client posts to an HTTP email API with retries and backoff.
type Client struct {
	baseURL string
	apiKey  string
	from    string
	client  *pester.Client
}

func NewClient(baseURL, apiKey, from string) *Client {
	p := pester.New()
	p.Concurrency = 1
	p.MaxRetries = 3
	p.Backoff = pester.ExponentialBackoff
	p.Timeout = 10 * time.Second
	return &Client{baseURL: baseURL, apiKey: apiKey, from: from, client: p}
}

type sendReq struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

func (c *Client) Send(to, subject, body string) error {
	payload, _ := json.Marshal(sendReq{From: c.from, To: to, Subject: subject, Text: body})
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("email send: %d", resp.StatusCode)
	}
	return nil
}

// NopSender drops everything; used when no API key is configured.
type NopSender struct{}

func (NopSender) Send(string, string, string) error { return nil }
