package inbox

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/openclaw/agent-teams/internal/identity"
)

// defaultPollInterval is the interval between Watch polls when none is given.
const defaultPollInterval = 500 * time.Millisecond

// Watch polls the identity's inbox and invokes handler for each message
// the cursor passes. It returns a cancel function that stops the watcher
// and waits for the polling goroutine to exit.
//
// Watching consumes messages: each successful poll advances the cursor,
// exactly as a manual poll would. Messages are delivered in append order.
func (s *Service) Watch(id identity.Identity, interval time.Duration, handler func(Message)) (cancel func()) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	var stopped atomic.Bool
	var wg sync.WaitGroup

	wg.Go(func() {
		for !stopped.Load() {
			time.Sleep(interval)
			if stopped.Load() {
				return
			}

			messages, err := s.Poll(id)
			if err != nil {
				// Transient I/O failures are expected when other
				// processes are mutating state; keep polling.
				continue
			}
			for _, msg := range messages {
				handler(msg)
			}
		}
	})

	return func() {
		stopped.Store(true)
		wg.Wait()
	}
}
