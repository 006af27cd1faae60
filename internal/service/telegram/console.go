package telegram

import (
	"context"

	"TradeRadar/internal/domain/repository"
	"TradeRadar/pkg/logger"
)

// ConsoleNotifier logs alerts instead of sending them. Used when
// Telegram is not configured.
type ConsoleNotifier struct {
	log *logger.Logger
}

func NewConsole(log *logger.Logger) repository.Notifier {
	return &ConsoleNotifier{log: log}
}

func (n *ConsoleNotifier) Notify(_ context.Context, text string) error {
	n.log.Info("alert", logger.String("text", text))
	return nil
}
