package telegram

import (
	"io"

	"gopkg.in/telebot.v3"
)

// Client defines an interface for sending messages and photos via a Telegram
// bot. This helps in decoupling the application logic from the specific bot
// library.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
	SendPhoto(recipientChatID int64, image io.Reader) error
}
