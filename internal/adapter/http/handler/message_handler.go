package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/mitiledger/internal/adapter/http/dto"
	"github.com/iho/mitiledger/internal/usecase"
)

// MessageSubmitter runs a message through the conversation and returns its replies.
type MessageSubmitter interface {
	Submit(ctx context.Context, msg usecase.Message) ([]string, error)
}

// Counter is incremented for every redelivered message.
type Counter interface {
	Inc()
}

// MessageHandlerConfig holds the dependencies of MessageHandler.
type MessageHandlerConfig struct {
	Submitter            MessageSubmitter
	Deduplicator         usecase.MessageDeduplicator // Optional
	DedupTTL             time.Duration
	TargetConversationID string
	Duplicates           Counter // Optional
	Logger               zerolog.Logger
}

// MessageHandler accepts inbound chat events.
type MessageHandler struct {
	submitter  MessageSubmitter
	dedup      usecase.MessageDeduplicator
	dedupTTL   time.Duration
	target     string
	duplicates Counter
	logger     zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(cfg MessageHandlerConfig) *MessageHandler {
	if cfg.DedupTTL == 0 {
		cfg.DedupTTL = usecase.DefaultDedupTTL
	}

	return &MessageHandler{
		submitter:  cfg.Submitter,
		dedup:      cfg.Deduplicator,
		dedupTTL:   cfg.DedupTTL,
		target:     cfg.TargetConversationID,
		duplicates: cfg.Duplicates,
		logger:     cfg.Logger,
	}
}

// Receive handles one inbound event and answers with the bot replies.
func (h *MessageHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var req dto.MessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid message", err.Error())
		return
	}

	resp := dto.MessageResponse{MessageID: req.MessageID, Replies: []string{}}

	if h.target != "" && req.ConversationID != h.target {
		resp.Status = dto.StatusIgnored
		writeJSON(w, http.StatusAccepted, resp)
		return
	}

	if h.dedup != nil && req.MessageID != "" {
		first, err := h.dedup.Claim(r.Context(), req.MessageID, h.dedupTTL)
		if err != nil {
			h.logger.Error().Err(err).Str("message_id", req.MessageID).Msg("failed to claim message")
			writeError(w, http.StatusServiceUnavailable, "failed to claim message", err.Error())
			return
		}

		if !first {
			if h.duplicates != nil {
				h.duplicates.Inc()
			}
			h.logger.Info().Str("message_id", req.MessageID).Msg("duplicate message dropped")
			resp.Status = dto.StatusDuplicate
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	replies, err := h.submitter.Submit(r.Context(), req.ToMessage())
	if err != nil && !errors.Is(err, usecase.ErrDeliveryFailed) {
		h.release(r, req.MessageID)
		writeError(w, mapDomainError(err), "failed to process message", err.Error())
		return
	}

	if err != nil {
		resp.DeliveryError = err.Error()
	}

	resp.Status = dto.StatusProcessed
	if replies != nil {
		resp.Replies = replies
	}

	writeJSON(w, http.StatusOK, resp)
}

// release drops the claim of a message that was not processed, so the
// transport can redeliver it.
func (h *MessageHandler) release(r *http.Request, messageID string) {
	if h.dedup == nil || messageID == "" {
		return
	}

	if err := h.dedup.Release(context.WithoutCancel(r.Context()), messageID); err != nil {
		h.logger.Error().Err(err).Str("message_id", messageID).Msg("failed to release message claim")
	}
}
