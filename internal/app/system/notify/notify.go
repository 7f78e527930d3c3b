// Package notify delivers admin notification emails off the request path.
//
// Contact-form submissions must never fail or slow down because SMTP is
// down, so handlers enqueue and move on. Delivery failures are logged and
// dropped; the submission itself is already persisted.
package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/mailer"
)

// Sender is the part of the mailer the notifier needs.
type Sender interface {
	Send(email mailer.Email) error
	FromName() string
}

// Notification is one queued admin notification, delivered as a single
// email addressed to every recipient in Recipients.
type Notification struct {
	Recipients []string
	Subject    string
	TextBody   string
	HTMLBody   string
}

// Notifier is a single-worker queue in front of the mailer.
type Notifier struct {
	mail  Sender
	log   *zap.Logger
	queue chan Notification
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// queueDepth bounds memory when SMTP is down for a long stretch. A full
// queue drops new notifications rather than blocking handlers.
const queueDepth = 64

// New creates a Notifier and starts its worker.
func New(mail Sender, log *zap.Logger) *Notifier {
	n := &Notifier{
		mail:  mail,
		log:   log,
		queue: make(chan Notification, queueDepth),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

// Enqueue queues a notification for delivery. It never blocks; when the
// queue is full, or the notifier is already stopping, the notification is
// dropped and logged.
func (n *Notifier) Enqueue(msg Notification) {
	if len(msg.Recipients) == 0 {
		return
	}
	// The lock orders Enqueue against Stop closing the queue; a request
	// racing shutdown gets a dropped notification, not a panic.
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		n.log.Warn("notifier stopped, dropping notification",
			zap.String("subject", msg.Subject))
		return
	}
	select {
	case n.queue <- msg:
	default:
		n.log.Warn("notification queue full, dropping",
			zap.String("subject", msg.Subject),
			zap.Int("recipients", len(msg.Recipients)))
	}
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for msg := range n.queue {
		err := n.mail.Send(mailer.Email{
			To:       msg.Recipients,
			Subject:  msg.Subject,
			TextBody: msg.TextBody,
			HTMLBody: msg.HTMLBody,
		})
		if err != nil {
			// Already logged by the mailer with the SMTP detail.
			n.log.Warn("notification not delivered",
				zap.Strings("to", msg.Recipients),
				zap.String("subject", msg.Subject))
		}
	}
}

// Stop closes the queue and waits for in-flight deliveries, up to the
// context deadline.
func (n *Notifier) Stop(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		n.log.Warn("notifier shutdown timed out",
			zap.Int("queued", len(n.queue)))
		return ctx.Err()
	}
}

// Drain is a test helper that waits until the queue empties.
func (n *Notifier) Drain(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if len(n.queue) == 0 {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}
