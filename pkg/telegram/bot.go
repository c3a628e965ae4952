package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/models"
)

// Bot represents a Telegram bot instance
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *logger.Logger
}

// HandlerFunc is a function that handles a Telegram message that is not a known command
type HandlerFunc func(message *tgbotapi.Message)

// CommandHandler is a function that handles a Telegram command
type CommandHandler func(message *tgbotapi.Message)

// New creates a new Telegram bot instance
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot := &Bot{
		api:    api,
		logger: logger.New("telegram"),
	}

	bot.logger.Info("Telegram bot created: @%s", api.Self.UserName)
	return bot, nil
}

// SessionFor returns the pantry session of a message's sender. Users without
// a Telegram username are keyed by their chat ID.
func SessionFor(message *tgbotapi.Message) models.Session {
	if message.From != nil && message.From.UserName != "" {
		return models.Session{Username: message.From.UserName}
	}
	return models.Session{Username: "chat_" + strconv.FormatInt(message.Chat.ID, 10)}
}

// StateKey identifies the sender of a message for conversation state, so that
// members of a group chat each have their own state. Messages without a
// sender fall back to the chat ID.
func StateKey(message *tgbotapi.Message) int64 {
	if message.From != nil && message.From.ID != 0 {
		return message.From.ID
	}
	return message.Chat.ID
}

// Start listens for updates until Stop is called
func (b *Bot) Start(commandHandlers map[string]CommandHandler, defaultHandler HandlerFunc) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		message := update.Message
		if message == nil {
			continue
		}
		log := b.logger.With(strconv.FormatInt(message.Chat.ID, 10))

		if message.IsCommand() {
			command := message.Command()
			if handler, ok := commandHandlers[command]; ok {
				log.Info("Handling command: %s from user %s", command, SessionFor(message).Key())
				handler(message)
				continue
			}
			log.Debug("Unknown command: %s", command)
		}

		if defaultHandler != nil {
			defaultHandler(message)
		}
	}

	return nil
}

// Stop stops receiving updates, which makes Start return
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// SendMessage sends a text message to a chat
func (b *Bot) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	return b.api.Send(msg)
}
