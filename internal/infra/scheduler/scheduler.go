package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// GreetingJob is the daily birthday check, implemented by app.GreetingService.
type GreetingJob interface {
	SendDailyGreetings(ctx context.Context, today time.Time) error
}

// GreetingScheduler fires the daily birthday greeting job at the configured
// wall-clock time in the configured zone. It runs independently of the
// inbound message loop.
type GreetingScheduler struct {
	cronEngine    *cron.Cron
	job           GreetingJob
	location      *time.Location
	cronSpecDaily string
	logger        *logrus.Entry
}

func NewGreetingScheduler(
	job GreetingJob,
	location *time.Location,
	cronSpecDaily string, // e.g., "0 9 * * *" (09:00 daily)
	logger *logrus.Entry,
) *GreetingScheduler {
	return &GreetingScheduler{
		cronEngine:    cron.New(cron.WithLocation(location)),
		job:           job,
		location:      location,
		cronSpecDaily: cronSpecDaily,
		logger:        logger,
	}
}

func (s *GreetingScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpecDaily, func() {
		s.logger.Info("Cron job triggered for daily birthday greetings")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		today := time.Now().In(s.location)
		if err := s.job.SendDailyGreetings(ctx, today); err != nil {
			s.logger.WithError(err).Error("Daily birthday greeting run failed")
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithFields(logrus.Fields{
		"cron_spec": s.cronSpecDaily,
		"timezone":  s.location.String(),
	}).Info("Greeting scheduler started")
	return nil
}

func (s *GreetingScheduler) Stop() {
	s.logger.Info("Stopping greeting scheduler...")
	ctx := s.cronEngine.Stop() // Waits for a running job to finish.
	<-ctx.Done()
	s.logger.Info("Greeting scheduler gracefully stopped")
}
