package services

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramService pushes short operational alerts (final dunning notices,
// approval decisions) to the organization's manager chat. A nil service or
// empty token degrades to a no-op, so callers never need to branch.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegramService(botToken string, managerChatID int64, logger *zap.Logger) *TelegramService {
	if botToken == "" || managerChatID == 0 {
		logger.Info("telegram alerts disabled: no bot token or chat id configured")
		return &TelegramService{logger: logger}
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		logger.Warn("telegram bot init failed, alerts disabled", zap.Error(err))
		return &TelegramService{logger: logger}
	}
	return &TelegramService{bot: bot, chatID: managerChatID, logger: logger}
}

// SendManagerAlert delivers text to the manager chat. No-op when disabled.
func (t *TelegramService) SendManagerAlert(text string) error {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
