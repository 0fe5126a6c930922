// internal/infra/telegram/client.go
package telegram

import (
	"io"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the domain telegram.Client interface using the
// gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.Chat{ID: recipientChatID} // Group or private chat alike
	_, err := tba.bot.Send(recipient, text, options)
	return err
}

// SendPhoto sends a single photo to the specified chat.
func (tba *TelebotAdapter) SendPhoto(recipientChatID int64, image io.Reader) error {
	recipient := &telebot.Chat{ID: recipientChatID}
	photo := &telebot.Photo{File: telebot.FromReader(image)}
	_, err := tba.bot.Send(recipient, photo)
	return err
}
