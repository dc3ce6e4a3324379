package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
)

type recordingBroadcaster struct {
	calls []time.Time
	err   error
}

func (r *recordingBroadcaster) BroadcastDue(_ context.Context, now time.Time) (int, error) {
	r.calls = append(r.calls, now)
	return 1, r.err
}

func TestAnnouncementsJobPassesClock(t *testing.T) {
	at := time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC)
	b := &recordingBroadcaster{}
	announcementsJob(b, func() time.Time { return at })()
	if len(b.calls) != 1 || !b.calls[0].Equal(at) {
		t.Fatalf("unexpected calls %v", b.calls)
	}

	b.err = errors.New("db down")
	announcementsJob(b, func() time.Time { return at })()
	if len(b.calls) != 2 {
		t.Fatalf("job should still run on error")
	}
}

func TestInitCronJobsRegistersEveryMinute(t *testing.T) {
	c := cron.New()
	if err := InitCronJobs(c, &recordingBroadcaster{}); err != nil {
		t.Fatalf("InitCronJobs: %v", err)
	}
	defer c.Stop()

	entries := c.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one job, got %d", len(entries))
	}
	if gap := entries[0].Schedule.Next(time.Date(2025, 6, 2, 1, 0, 30, 0, time.UTC)); gap.Minute() != 1 || gap.Second() != 0 {
		t.Fatalf("expected next run at the next minute, got %v", gap)
	}
}
