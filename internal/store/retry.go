package store

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	defaultUpdateRetries = 100

	updateBackoffInitial = 2 * time.Millisecond
	updateBackoffMax     = 50 * time.Millisecond
	updateMaxElapsed     = 10 * time.Second
)

// errRaceLost marks an update attempt that lost to a concurrent writer and
// may be tried again.
var errRaceLost = errors.New("store: update race lost")

// retryUpdate runs attempt until it stops reporting errRaceLost, sleeping a
// jittered, growing interval in between. Any other error ends the loop.
func retryUpdate(ctx context.Context, maxTries int, attempt func() error) error {
	if maxTries <= 0 {
		maxTries = defaultUpdateRetries
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = updateBackoffInitial
	policy.MaxInterval = updateBackoffMax
	policy.RandomizationFactor = 0.5
	policy.Multiplier = 1.5

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := attempt()
		if err == nil || errors.Is(err, errRaceLost) {
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(maxTries)),
		backoff.WithMaxElapsedTime(updateMaxElapsed),
	)
	if errors.Is(err, errRaceLost) {
		return ErrConflict
	}
	return err
}
