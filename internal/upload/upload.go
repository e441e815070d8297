package upload

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Defaults used when an Uploader is built with zero values
const (
	DefaultDelay       = 1500 * time.Millisecond
	DefaultPlaceholder = "/api/placeholder/600/400"
)

// Status of an upload
type Status int

const (
	Pending Status = iota
	Completed
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// Uploader simulates a resource upload: after a fixed delay every upload
// resolves with the same placeholder reference. Nothing is transferred.
type Uploader struct {
	delay       time.Duration
	placeholder string
}

// NewUploader creates an Uploader. Zero values fall back to the defaults.
func NewUploader(delay time.Duration, placeholder string) *Uploader {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Uploader{delay: delay, placeholder: placeholder}
}

// Upload is a single in-flight simulated upload
type Upload struct {
	ID string

	mu     sync.Mutex
	status Status
	ref    string
	timer  *time.Timer
	done   chan struct{}
	onDone func(*Upload)
}

// Start begins an upload and returns immediately. onDone, if not nil, runs on
// the timer goroutine once the upload completes; it never runs for a cancelled
// upload. Cancelling ctx cancels the upload.
func (u *Uploader) Start(ctx context.Context, onDone func(*Upload)) *Upload {
	up := &Upload{
		ID:     uuid.New().String(),
		done:   make(chan struct{}),
		onDone: onDone,
	}

	up.mu.Lock()
	up.timer = time.AfterFunc(u.delay, func() { up.complete(u.placeholder) })
	up.mu.Unlock()

	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				up.Cancel()
			case <-up.done:
			}
		}()
	}

	log.Printf("Upload %s started (resolves in %s)", up.ID, u.delay)
	return up
}

func (up *Upload) complete(ref string) {
	up.mu.Lock()
	if up.status != Pending {
		up.mu.Unlock()
		return
	}
	up.status = Completed
	up.ref = ref
	close(up.done)
	cb := up.onDone
	up.mu.Unlock()

	log.Printf("Upload %s completed: %s", up.ID, ref)
	if cb != nil {
		cb(up)
	}
}

// Cancel stops a pending upload. It reports whether the upload was still pending.
func (up *Upload) Cancel() bool {
	up.mu.Lock()
	defer up.mu.Unlock()
	if up.status != Pending {
		return false
	}
	up.timer.Stop()
	up.status = Cancelled
	close(up.done)
	log.Printf("Upload %s cancelled", up.ID)
	return true
}

// Done is closed once the upload completes or is cancelled.
func (up *Upload) Done() <-chan struct{} {
	return up.done
}

// Status returns the current status
func (up *Upload) Status() Status {
	up.mu.Lock()
	defer up.mu.Unlock()
	return up.status
}

// Result returns the resource reference of a completed upload.
func (up *Upload) Result() (string, bool) {
	up.mu.Lock()
	defer up.mu.Unlock()
	return up.ref, up.status == Completed
}

// InProgress reports whether the upload is still pending.
func (up *Upload) InProgress() bool {
	return up.Status() == Pending
}
