// Package reminder runs the periodic due-date scan that surfaces tasks
// approaching their deadline.
package reminder

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sebaxchen/lookSocial/internal/events"
	"github.com/sebaxchen/lookSocial/internal/store"
)

// Window is how far ahead the scan looks for upcoming due dates.
const Window = 24 * time.Hour

// Reminder scans the task collection on a cron schedule and announces
// tasks that come due inside the window.
type Reminder struct {
	cron      *cron.Cron
	tasks     *store.TaskStore
	publisher *events.Publisher
	log       *log.Logger
}

func New(tasks *store.TaskStore, publisher *events.Publisher, logger *log.Logger) *Reminder {
	if logger == nil {
		logger = log.Default()
	}
	return &Reminder{
		cron:      cron.New(),
		tasks:     tasks,
		publisher: publisher,
		log:       logger,
	}
}

// Start registers the hourly scan and starts the scheduler.
func (r *Reminder) Start() error {
	if _, err := r.cron.AddFunc("@hourly", r.Scan); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

func (r *Reminder) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// Scan runs one pass over the tasks and publishes a due event for each
// incomplete task whose deadline falls inside the window.
func (r *Reminder) Scan() {
	due := r.tasks.DueWithin(Window)
	for _, task := range due {
		r.log.Printf("⏰ task %q is due %s", task.Title, task.DueDate.Format(time.RFC3339))
		r.publisher.Publish(events.SubjectTaskDue, task)
	}
}
