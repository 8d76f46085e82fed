package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNetwork marks failures to reach a remote backend. Only these are
// retried when connecting.
var ErrNetwork = errors.New("cache backend unreachable")

func networkError(err error) error {
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

// backoff retries network errors with a doubling delay.
type backoff struct {
	attempts int
	delay    time.Duration
}

var connectBackoff = backoff{attempts: 3, delay: time.Second}

func (b backoff) retry(ctx context.Context, fn func() error) error {
	delay := b.delay
	var err error
	for i := 0; i < b.attempts; i++ {
		if err = fn(); err == nil || !errors.Is(err, ErrNetwork) {
			return err
		}
		if i == b.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
