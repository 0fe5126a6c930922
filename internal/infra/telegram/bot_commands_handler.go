// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"fmt"
	"strings"

	"birthday_bot/internal/app"
	"birthday_bot/internal/domain/destination"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// AddBirthdayButtonText is the reply-keyboard button that starts the
// birthday capture dialogue.
const AddBirthdayButtonText = "Додати день народження"

// mainMenu is the persistent reply keyboard attached to the greeting.
func mainMenu() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(AddBirthdayButtonText)))
	return menu
}

// RegisterBotCommands registers /start, /help and /getid.
func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	captureService *app.CaptureService,
	registry destination.Registry,
	baseLogger *logrus.Entry, // For contextual logging
) {
	commandsLogger := baseLogger.WithField("handler_group", "commands")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/start").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /start command")

		// /start doubles as the dialogue fallback: abandon any capture in
		// progress without writing anything.
		captureService.Cancel(c.Sender().ID)

		return c.Send(
			"Привіт! Я бот, що збирає дні народження та вітає у групі 🎂",
			mainMenu(),
		)
	})

	b.Handle("/help", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/help").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /help command")

		var helpText strings.Builder
		helpText.WriteString("Я збираю дні народження учасників і вітаю іменинників у групі.\n\n")
		helpText.WriteString(fmt.Sprintf("«%s» — надіслати мені свою дату народження (рік не зберігається).\n\n", AddBirthdayButtonText))
		helpText.WriteString("`/getid` — зареєструвати групу для привітань (виконується у самій групі).\n\n")
		helpText.WriteString("`/start` — скасувати введення дати й почати спочатку.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/getid", func(c telebot.Context) error {
		chat := c.Chat()
		logCtx := commandsLogger.WithFields(logrus.Fields{
			"command":   "/getid",
			"sender_id": c.Sender().ID,
			"chat_id":   chat.ID,
			"chat_type": chat.Type,
		})
		logCtx.Info("Processing /getid command")

		if chat.Type != telebot.ChatGroup && chat.Type != telebot.ChatSuperGroup {
			logCtx.Warn("Destination registration attempted outside a group chat")
			return c.Send("Ця команда працює тільки в групах.")
		}

		if err := registry.Register(ctx, chat.ID); err != nil {
			logCtx.WithError(err).Error("Failed to register destination chat")
			return c.Send("Не вдалося зберегти групу. Спробуйте пізніше.")
		}

		logCtx.Info("Destination chat registered")
		return c.Send(fmt.Sprintf("Group ID збережено: %d", chat.ID))
	})
}
