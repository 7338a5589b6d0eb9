package runner

import (
	"context"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultInterval = time.Minute

type trigger struct {
	at           string
	hour, minute int
	next         time.Time
	job          Job
}

// Scheduler runs jobs once a day at fixed wall clock times in Location. Due
// jobs are only noticed when RunPending is called, so a job can run up to one
// Interval late.
type Scheduler struct {
	Location *time.Location
	Interval time.Duration
	Clock    Clock
	Logger   log.FieldLogger

	triggers []*trigger
}

func NewScheduler(s Scheduler) *Scheduler {
	if s.Location == nil {
		s.Location = time.Local
	}
	if s.Interval <= 0 {
		s.Interval = DefaultInterval
	}
	if s.Clock == nil {
		s.Clock = SystemClock{}
	}
	if s.Logger == nil {
		s.Logger = log.StandardLogger()
	}
	return &s
}

// At registers job to run every day at the "HH:MM" time of day. The first run
// is the next occurrence strictly after now.
func (s *Scheduler) At(at string, job Job) error {
	hour, minute, err := ParseClock(at)
	if err != nil {
		return err
	}
	t := &trigger{at: at, hour: hour, minute: minute, job: job}
	t.next = s.nextRun(s.Clock.Now(), t)
	s.triggers = append(s.triggers, t)

	s.Logger.WithFields(log.Fields{
		"at":   at,
		"zone": s.Location.String(),
		"next": t.next,
	}).Debug("registered daily trigger")
	return nil
}

func (s *Scheduler) nextRun(now time.Time, t *trigger) time.Time {
	local := now.In(s.Location)
	next := time.Date(local.Year(), local.Month(), local.Day(), t.hour, t.minute, 0, 0, s.Location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Next returns the pending run times in ascending order
func (s *Scheduler) Next() []time.Time {
	out := make([]time.Time, 0, len(s.triggers))
	for _, t := range s.triggers {
		out = append(out, t.next)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// RunPending runs every job that is due and schedules it for the following
// day. It returns the number of jobs run. Jobs keep ctx's values but not its
// cancellation: a started job always runs to completion.
func (s *Scheduler) RunPending(ctx context.Context) int {
	jobCtx := context.WithoutCancel(ctx)
	ran := 0
	for _, t := range s.triggers {
		now := s.Clock.Now()
		if now.Before(t.next) {
			continue
		}
		s.Logger.WithFields(log.Fields{"at": t.at, "due": t.next}).Debug("running scheduled job")
		t.job(jobCtx)
		t.next = s.nextRun(s.Clock.Now(), t)
		ran++
	}
	return ran
}

// Run polls for due jobs every Interval until ctx is done. Cancellation is
// only noticed between polls and is a normal stop that returns nil.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Logger.Info("Starting scheduler for NSE indices updates...")
	for ctx.Err() == nil {
		s.RunPending(ctx)
		select {
		case <-ctx.Done():
		case <-s.Clock.After(s.Interval):
		}
	}
	s.Logger.Info("Scheduler stopped by user.")
	return nil
}
