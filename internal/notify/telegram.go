package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cinecraft/internal/domain/models"
	"cinecraft/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MessageSender is the subset of *tgbotapi.BotAPI the sink needs.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink posts a summary of every new booking to the studio chats.
type TelegramSink struct {
	Bot     MessageSender
	ChatIDs []int64
}

func NewTelegramSink(token string, chatIDs []int64) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	log.Printf("[NOTIFY] action=telegram_init msg=authorized as %s", bot.Self.UserName)
	return &TelegramSink{Bot: bot, ChatIDs: chatIDs}, nil
}

func BookingMessage(b models.Booking) string {
	service := b.ServiceTitle
	if service == "" {
		service = "a service"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "New Booking Request #%d\n", b.ID)
	fmt.Fprintf(&sb, "%s requested %s\n", b.Name, service)
	fmt.Fprintf(&sb, "Date: %s %s\n", b.Date, b.Time)
	fmt.Fprintf(&sb, "Email: %s\nPhone: %s", b.Email, b.Phone)
	if msg := strings.TrimSpace(b.Message); msg != "" {
		fmt.Fprintf(&sb, "\n\n%s", msg)
	}
	if b.Image != "" {
		fmt.Fprintf(&sb, "\nAttachment: %s", b.Image)
	}
	return sb.String()
}

func (s *TelegramSink) BookingCreated(_ context.Context, b models.Booking) {
	text := BookingMessage(b)
	for _, id := range s.ChatIDs {
		if _, err := s.Bot.Send(tgbotapi.NewMessage(id, text)); err != nil {
			utils.LogError("", "notify", "telegram_send", fmt.Errorf("chat %d: %w", id, err))
		}
	}
}
