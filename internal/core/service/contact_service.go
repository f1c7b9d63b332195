package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

// ContactService relays contact messages to the storefront backend. Failures
// are surfaced immediately, once, with no retry.
type ContactService struct {
	backend ports.ContactBackend
	log     zerolog.Logger
}

func NewContactService(backend ports.ContactBackend, log zerolog.Logger) *ContactService {
	return &ContactService{backend: backend, log: log}
}

func (s *ContactService) Send(ctx context.Context, msg domain.ContactMessage) error {
	msg.Body = strings.TrimSpace(msg.Body)
	if msg.Body == "" {
		return domain.ErrEmptyMessage
	}

	if err := s.backend.SendMessage(ctx, msg); err != nil {
		s.log.Warn().Err(err).Str("username", msg.Username).Msg("contact message rejected")
		return err
	}

	s.log.Info().Str("username", msg.Username).Msg("contact message sent")
	return nil
}
