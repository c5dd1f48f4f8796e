package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/mitiledger/internal/adapter/http/dto"
	"github.com/iho/mitiledger/internal/adapter/repository/memory"
	"github.com/iho/mitiledger/internal/infrastructure/dispatcher"
	"github.com/iho/mitiledger/internal/usecase"
	"github.com/iho/mitiledger/internal/usecase/mocks"
)

type stubSubmitter struct {
	replies  []string
	err      error
	received []usecase.Message
}

func (s *stubSubmitter) Submit(_ context.Context, msg usecase.Message) ([]string, error) {
	s.received = append(s.received, msg)
	return s.replies, s.err
}

type countingCounter struct{ n int }

func (c *countingCounter) Inc() { c.n++ }

func postMessage(t *testing.T, h *MessageHandler, body string) (*httptest.ResponseRecorder, dto.MessageResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Receive(rr, req)

	var resp dto.MessageResponse
	if rr.Code < 300 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr, resp
}

const validMessage = `{"message_id":"m1","sender_id":"a@s.whatsapp.net","conversation_id":"123@g.us","text":"!balance","is_group":true}`

func TestMessageHandler_Processes(t *testing.T) {
	sub := &stubSubmitter{replies: []string{"Este es el balance actual:"}}
	h := NewMessageHandler(MessageHandlerConfig{Submitter: sub, Logger: zerolog.Nop()})

	rr, resp := postMessage(t, h, validMessage)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, dto.StatusProcessed, resp.Status)
	assert.Equal(t, "m1", resp.MessageID)
	assert.Equal(t, []string{"Este es el balance actual:"}, resp.Replies)

	require.Len(t, sub.received, 1)
	assert.Equal(t, "a@s.whatsapp.net", sub.received[0].SenderID)
	assert.True(t, sub.received[0].IsGroup)
}

func TestMessageHandler_NoRepliesIsEmptyList(t *testing.T) {
	h := NewMessageHandler(MessageHandlerConfig{Submitter: &stubSubmitter{}, Logger: zerolog.Nop()})

	rr, _ := postMessage(t, h, validMessage)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"replies":[]`)
}

func TestMessageHandler_BadRequests(t *testing.T) {
	h := NewMessageHandler(MessageHandlerConfig{Submitter: &stubSubmitter{}, Logger: zerolog.Nop()})

	for _, body := range []string{`not json`, `{"conversation_id":"123@g.us","text":"hola"}`} {
		rr, _ := postMessage(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestMessageHandler_OtherConversationIsAccepted(t *testing.T) {
	sub := &stubSubmitter{}
	h := NewMessageHandler(MessageHandlerConfig{Submitter: sub, TargetConversationID: "family@g.us", Logger: zerolog.Nop()})

	rr, resp := postMessage(t, h, validMessage)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, dto.StatusIgnored, resp.Status)
	assert.Empty(t, sub.received)
}

func TestMessageHandler_DropsDuplicates(t *testing.T) {
	sub := &stubSubmitter{replies: []string{"ok"}}
	dupes := &countingCounter{}
	h := NewMessageHandler(MessageHandlerConfig{
		Submitter:    sub,
		Deduplicator: memory.NewMessageDeduplicator(),
		Duplicates:   dupes,
		Logger:       zerolog.Nop(),
	})

	_, first := postMessage(t, h, validMessage)
	rr, second := postMessage(t, h, validMessage)

	assert.Equal(t, dto.StatusProcessed, first.Status)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, dto.StatusDuplicate, second.Status)
	assert.Len(t, sub.received, 1)
	assert.Equal(t, 1, dupes.n)
}

func TestMessageHandler_DedupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	dedup := mocks.NewMockMessageDeduplicator(ctrl)
	dedup.EXPECT().Claim(gomock.Any(), "m1", usecase.DefaultDedupTTL).Return(false, errors.New("redis down"))

	sub := &stubSubmitter{}
	h := NewMessageHandler(MessageHandlerConfig{Submitter: sub, Deduplicator: dedup, Logger: zerolog.Nop()})

	rr, _ := postMessage(t, h, validMessage)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Empty(t, sub.received)
}

func TestMessageHandler_SubmitErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"stopped", dispatcher.ErrStopped, http.StatusServiceUnavailable},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMessageHandler(MessageHandlerConfig{Submitter: &stubSubmitter{err: tt.err}, Logger: zerolog.Nop()})

			rr, _ := postMessage(t, h, validMessage)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestMessageHandler_FailedSubmitCanBeRedelivered(t *testing.T) {
	sub := &stubSubmitter{err: context.DeadlineExceeded}
	dupes := &countingCounter{}
	h := NewMessageHandler(MessageHandlerConfig{
		Submitter:    sub,
		Deduplicator: memory.NewMessageDeduplicator(),
		Duplicates:   dupes,
		Logger:       zerolog.Nop(),
	})

	rr, _ := postMessage(t, h, validMessage)
	assert.Equal(t, http.StatusGatewayTimeout, rr.Code)

	sub.err = nil
	sub.replies = []string{"ok"}

	rr, resp := postMessage(t, h, validMessage)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, dto.StatusProcessed, resp.Status)
	assert.Len(t, sub.received, 2)
	assert.Zero(t, dupes.n)
}

func TestMessageHandler_ReleaseFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	dedup := mocks.NewMockMessageDeduplicator(ctrl)
	dedup.EXPECT().Claim(gomock.Any(), "m1", usecase.DefaultDedupTTL).Return(true, nil)
	dedup.EXPECT().Release(gomock.Any(), "m1").Return(errors.New("redis down"))

	sub := &stubSubmitter{err: dispatcher.ErrStopped}
	h := NewMessageHandler(MessageHandlerConfig{Submitter: sub, Deduplicator: dedup, Logger: zerolog.Nop()})

	rr, _ := postMessage(t, h, validMessage)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestMessageHandler_DeliveryFailureKeepsClaim(t *testing.T) {
	ctrl := gomock.NewController(t)
	dedup := mocks.NewMockMessageDeduplicator(ctrl)
	dedup.EXPECT().Claim(gomock.Any(), "m1", usecase.DefaultDedupTTL).Return(true, nil)

	sub := &stubSubmitter{err: fmt.Errorf("%w: timeout", usecase.ErrDeliveryFailed)}
	h := NewMessageHandler(MessageHandlerConfig{Submitter: sub, Deduplicator: dedup, Logger: zerolog.Nop()})

	rr, resp := postMessage(t, h, validMessage)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, dto.StatusProcessed, resp.Status)
}

func TestMessageHandler_DeliveryFailureStillAnswers(t *testing.T) {
	sub := &stubSubmitter{
		replies: []string{"Registro: $ 10.000 debe Bob a Alice - taxi"},
		err:     fmt.Errorf("%w: connection refused", usecase.ErrDeliveryFailed),
	}
	h := NewMessageHandler(MessageHandlerConfig{Submitter: sub, Logger: zerolog.Nop()})

	rr, resp := postMessage(t, h, validMessage)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, dto.StatusProcessed, resp.Status)
	assert.Len(t, resp.Replies, 1)
	assert.Contains(t, resp.DeliveryError, "connection refused")
}
