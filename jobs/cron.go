package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DueBroadcaster pushes announcements scheduled for the current minute.
type DueBroadcaster interface {
	BroadcastDue(ctx context.Context, now time.Time) (int, error)
}

// InitCronJobs registers the scheduled jobs and starts the scheduler.
func InitCronJobs(c *cron.Cron, announcements DueBroadcaster) error {
	if _, err := c.AddFunc("* * * * *", announcementsJob(announcements, time.Now)); err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}

func announcementsJob(announcements DueBroadcaster, now func() time.Time) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := announcements.BroadcastDue(ctx, now()); err != nil {
			log.Printf("Announcement broadcast failed: %v", err)
		}
	}
}
