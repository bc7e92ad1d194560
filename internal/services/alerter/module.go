package alerter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/astro-insights/internal/ports/service"
)

// Sender канал доставки алертов
type Sender interface {
	SendAlert(ctx context.Context, message string) error
}

// Service реализует IAlerterService для отправки алертов
type Service struct {
	sender  Sender
	appName string
	log     *slog.Logger
}

// New создаёт сервис алертов. Без sender алерты только пишутся в лог.
func New(sender Sender, appName string, log *slog.Logger) service.IAlerterService {
	return &Service{
		sender:  sender,
		appName: appName,
		log:     log,
	}
}

// SendAlert отправляет алерт с префиксом приложения
func (s *Service) SendAlert(ctx context.Context, message string) error {
	if s.sender == nil {
		s.log.Warn("alert not delivered, alerter is disabled", "message", message)
		return nil
	}

	if err := s.sender.SendAlert(ctx, fmt.Sprintf("[%s] %s", s.appName, message)); err != nil {
		return fmt.Errorf("send alert: %w", err)
	}
	return nil
}
