// Package webhook delivers bot replies to an outbound HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Payload is the body POSTed for every reply.
type Payload struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

// Config for Sender.
type Config struct {
	URL        string
	Timeout    time.Duration
	MaxRetries uint64
	RetryDelay time.Duration // Initial backoff interval
	Logger     zerolog.Logger
}

// Sender implements usecase.Sender by POSTing replies as JSON.
type Sender struct {
	url        string
	httpClient *http.Client
	maxRetries uint64
	retryDelay time.Duration
	logger     zerolog.Logger
}

// NewSender creates a new Sender.
func NewSender(cfg Config) *Sender {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Sender{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
	}
}

// SendText delivers text to conversationID. 5xx responses and network errors
// are retried with exponential backoff; 4xx responses are not.
func (s *Sender) SendText(ctx context.Context, conversationID, text string) error {
	body, err := json.Marshal(Payload{ConversationID: conversationID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}

	exp := backoff.NewExponentialBackOff()
	if s.retryDelay > 0 {
		exp.InitialInterval = s.retryDelay
	}
	b := backoff.WithMaxRetries(exp, s.maxRetries)

	return backoff.RetryNotify(func() error {
		return s.post(ctx, body)
	}, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
		s.logger.Warn().Err(err).Dur("wait", wait).Str("conversation_id", conversationID).Msg("reply delivery failed, retrying")
	})
}

func (s *Sender) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("webhook error: %s", resp.Status)
	case resp.StatusCode >= 300:
		return backoff.Permanent(fmt.Errorf("webhook rejected reply: %s", resp.Status))
	}

	return nil
}
