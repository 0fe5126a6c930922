// internal/infra/telegram/capture_handlers.go
package telegram

import (
	"context"
	"strings"

	"birthday_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterCaptureHandlers wires the birthday capture dialogue: the reply
// keyboard button starts it, and any following free text is fed to the
// dialogue until the date parses or the user sends /start.
func RegisterCaptureHandlers(
	ctx context.Context,
	b *telebot.Bot,
	captureService *app.CaptureService,
	baseLogger *logrus.Entry,
) {
	captureLogger := baseLogger.WithField("handler_group", "capture")

	menu := &telebot.ReplyMarkup{ResizeKeyboard: true}
	btnAdd := menu.Text(AddBirthdayButtonText)

	b.Handle(&btnAdd, func(c telebot.Context) error {
		captureLogger.WithField("sender_id", c.Sender().ID).Info("Add-birthday button pressed")
		return c.Send(captureService.Begin(c.Sender().ID))
	})

	b.Handle(telebot.OnText, func(c telebot.Context) error {
		sender := c.Sender()
		if captureService.State(sender.ID) != app.StateAwaitingDate {
			return nil // Not in a dialogue; nothing to do with stray text.
		}

		fullName := strings.TrimSpace(sender.FirstName + " " + sender.LastName)
		reply, err := captureService.Submit(ctx, sender.ID, sender.Username, fullName, c.Text())
		if err != nil {
			captureLogger.WithError(err).WithField("sender_id", sender.ID).Error("Failed to process date submission")
			return c.Send("Сталася помилка при збереженні. Спробуй ще раз пізніше.")
		}
		return c.Send(reply)
	})
}
