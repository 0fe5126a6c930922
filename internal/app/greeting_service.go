// internal/app/greeting_service.go
package app

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"time"

	"birthday_bot/internal/domain/birthday"
	"birthday_bot/internal/domain/destination"
	domainTelegram "birthday_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// greetingTemplates take the member mention as the single substitution.
var greetingTemplates = []string{
	"🎂 Сьогодні день народження у %s! Вітаємо!",
	"🥳 Ура! %s святкує сьогодні!",
}

// ImagePool supplies an optional greeting image. PickRandom reports ok=false
// when no images are available, in which case greetings go out text-only.
type ImagePool interface {
	PickRandom(rng *rand.Rand) (image []byte, ok bool)
}

// GreetingService runs the daily birthday check: find today's records, pick
// a greeting per record and send it to the registered destination chat.
type GreetingService struct {
	birthdayRepo birthday.Repository
	registry     destination.Registry
	client       domainTelegram.Client
	images       ImagePool
	rng          *rand.Rand // injected so tests can seed deterministically
	logger       *logrus.Entry
}

func NewGreetingService(
	br birthday.Repository,
	reg destination.Registry,
	client domainTelegram.Client,
	images ImagePool,
	rng *rand.Rand,
	logger *logrus.Entry,
) *GreetingService {
	return &GreetingService{
		birthdayRepo: br,
		registry:     reg,
		client:       client,
		images:       images,
		rng:          rng,
		logger:       logger,
	}
}

// SendDailyGreetings greets every member whose birthday matches today.
// No matches and no registered destination are both normal no-ops. A send
// failure for one member does not stop the remaining members.
func (s *GreetingService) SendDailyGreetings(ctx context.Context, today time.Time) error {
	date := birthday.MonthDayOf(today)
	logCtx := s.logger.WithField("date", date.String())

	records, err := s.birthdayRepo.FindByDate(ctx, date)
	if err != nil {
		logCtx.WithError(err).Error("Failed to query today's birthdays")
		return fmt.Errorf("failed to query birthdays for %s: %w", date, err)
	}
	if len(records) == 0 {
		logCtx.Debug("No birthdays today")
		return nil
	}

	chatID, err := s.registry.Current(ctx)
	if err != nil {
		if err == destination.ErrNoDestination {
			logCtx.Warn("Birthdays found but no destination chat registered, skipping")
			return nil
		}
		logCtx.WithError(err).Error("Failed to read destination chat")
		return fmt.Errorf("failed to read destination chat: %w", err)
	}

	logCtx = logCtx.WithField("chat_id", chatID)
	logCtx.WithField("count", len(records)).Info("Sending birthday greetings")

	for _, rec := range records {
		s.greet(chatID, rec, logCtx)
	}
	return nil
}

// greet sends one greeting, re-drawing the template and image per member.
func (s *GreetingService) greet(chatID int64, rec *birthday.Record, logCtx *logrus.Entry) {
	recLog := logCtx.WithField("member_id", rec.MemberID)

	template := greetingTemplates[s.rng.Intn(len(greetingTemplates))]
	message := fmt.Sprintf(template, rec.Mention())

	if err := s.client.SendMessage(chatID, message, nil); err != nil {
		recLog.WithError(err).Error("Failed to send birthday greeting")
		return
	}

	if s.images != nil {
		if image, ok := s.images.PickRandom(s.rng); ok {
			if err := s.client.SendPhoto(chatID, bytes.NewReader(image)); err != nil {
				recLog.WithError(err).Error("Failed to send birthday image")
			}
		}
	}

	recLog.Info("Birthday greeting sent")
}
