package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"carbot/internal/config"
	"carbot/internal/handler"
	"carbot/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// welcomeMessage is sent in response to /start.
const welcomeMessage = "Welcome! Use /car [amount] to find a car around that price."

// Bot runs the Telegram long-polling transport and dispatches commands to
// the command handler.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *handler.CommandHandler
	timeout int
}

// New creates a new Telegram bot
func New(cfg *config.TelegramConfig, h *handler.CommandHandler) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	api.Debug = cfg.Debug

	return &Bot{
		api:     api,
		handler: h,
		timeout: cfg.UpdateTimeout,
	}, nil
}

// Username returns the bot account name, for startup logging.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Run polls for updates until the context is canceled. Each command is
// handled in its own goroutine; invocations share no state.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.timeout

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			go b.dispatch(ctx, update.Message)
		}
	}
}

// dispatch routes a single command message
func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.send(msg.Chat.ID, model.Reply{Text: welcomeMessage})
	case "car":
		args := strings.Fields(msg.CommandArguments())
		b.send(msg.Chat.ID, b.handler.Handle(ctx, args))
	}
}

// send delivers a reply as either a photo message (with optional caption)
// or a plain text message.
func (b *Bot) send(chatID int64, reply model.Reply) {
	var err error
	switch {
	case reply.PhotoURL != "":
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(reply.PhotoURL))
		photo.Caption = reply.Text
		_, err = b.api.Send(photo)
	case reply.PhotoPath != "":
		_, err = b.api.Send(tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(reply.PhotoPath)))
	default:
		_, err = b.api.Send(tgbotapi.NewMessage(chatID, reply.Text))
	}
	if err != nil {
		log.Printf("Failed to send reply to chat %d: %v", chatID, err)
	}
}
