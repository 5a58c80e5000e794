package mailer

import (
	"context"
)

// Dispatcher accepts an email job for delivery. Dispatch returning nil
// means the job was accepted, not necessarily delivered.
type Dispatcher interface {
	Dispatch(ctx context.Context, job EmailJob) error
}

// DirectDispatcher renders and sends in the calling goroutine.
type DirectDispatcher struct {
	Sender Sender
}

func NewDirectDispatcher(s Sender) *DirectDispatcher {
	return &DirectDispatcher{Sender: s}
}

func (d *DirectDispatcher) Dispatch(ctx context.Context, job EmailJob) error {
	return Deliver(ctx, d.Sender, job)
}

// Publisher publishes a JSON body to a queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueDispatcher enqueues jobs for cmd/email_worker.
type QueueDispatcher struct {
	Pub Publisher
}

func NewQueueDispatcher(p Publisher) *QueueDispatcher {
	return &QueueDispatcher{Pub: p}
}

func (q *QueueDispatcher) Dispatch(ctx context.Context, job EmailJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	return q.Pub.PublishJSON(ctx, job)
}
