// internal/app/capture_service.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"birthday_bot/internal/domain/birthday"
	"birthday_bot/internal/dateparse"

	"github.com/sirupsen/logrus"
)

// DialogueState is the per-user state of the birthday capture dialogue.
type DialogueState int

const (
	StateIdle DialogueState = iota
	StateAwaitingDate
)

const (
	promptText  = "Напиши дату свого ДН (01.12, 1 грудня, 2006-12-01 тощо)."
	retryText   = "Не вдалося розпізнати дату. Спробуй інший формат."
	confirmText = "Зберегла твій день народження: %s"
)

// Normalizer converts free-text input into a canonical month-day value.
type Normalizer func(text string) (birthday.MonthDay, error)

// CaptureService runs the per-user dialogue that solicits a birthday in free
// text and commits the normalized value to the store. Dialogue state lives
// in memory only; an interrupted capture is simply restarted by the user.
type CaptureService struct {
	birthdayRepo birthday.Repository
	normalize    Normalizer
	logger       *logrus.Entry

	mu     sync.Mutex
	states map[int64]DialogueState
}

func NewCaptureService(repo birthday.Repository, normalize Normalizer, logger *logrus.Entry) *CaptureService {
	if normalize == nil {
		normalize = dateparse.Normalize
	}
	return &CaptureService{
		birthdayRepo: repo,
		normalize:    normalize,
		logger:       logger,
		states:       make(map[int64]DialogueState),
	}
}

// State reports the current dialogue state for the given user.
func (s *CaptureService) State(userID int64) DialogueState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[userID]
}

// Begin moves the user into AwaitingDate and returns the prompt to send.
func (s *CaptureService) Begin(userID int64) string {
	s.mu.Lock()
	s.states[userID] = StateAwaitingDate
	s.mu.Unlock()

	s.logger.WithField("user_id", userID).Info("Birthday capture started")
	return promptText
}

// Cancel abandons an in-progress capture without writing anything.
func (s *CaptureService) Cancel(userID int64) {
	s.mu.Lock()
	delete(s.states, userID)
	s.mu.Unlock()
}

// Submit feeds one message of free text into the dialogue. On a parse
// failure the user stays in AwaitingDate and gets a retry message; there is
// no attempt limit. On success the record is upserted (replacing any prior
// record for the member) and the user returns to Idle.
func (s *CaptureService) Submit(ctx context.Context, userID int64, username, fullName, text string) (string, error) {
	logCtx := s.logger.WithField("user_id", userID)

	date, err := s.normalize(text)
	if err != nil {
		logCtx.WithField("input", text).Info("Date input not recognized, re-prompting")
		return retryText, nil
	}

	rec := &birthday.Record{
		MemberID: userID,
		Username: nullableString(username),
		FullName: nullableString(fullName),
		Birthday: date,
	}
	if err := s.birthdayRepo.Upsert(ctx, rec); err != nil {
		logCtx.WithError(err).Error("Failed to store birthday record")
		return "", fmt.Errorf("failed to store birthday for member %d: %w", userID, err)
	}

	s.mu.Lock()
	delete(s.states, userID)
	s.mu.Unlock()

	logCtx.WithField("birthday", date.String()).Info("Birthday stored")
	return fmt.Sprintf(confirmText, date.String()), nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
