// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the registry sources.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryBaseDelay is the first backoff interval; each retry doubles it.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// Retryable reports whether a registry response status is worth retrying:
// rate limiting (429) and temporary unavailability (503).
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes an HTTP request and retries retryable statuses with
// exponential backoff starting at RetryBaseDelay.
//
// When maxRetries is 0 the default (3) is used. The body of every retried
// response is drained and closed. Transport errors are not retried. If the
// context ends during a backoff wait the function returns ctx.Err(). After
// exhausting retries the last response is returned so the caller can
// inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = RetryBaseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = RetryBaseDelay << maxRetries
	bo.MaxElapsedTime = 0

	var (
		resp    *http.Response
		attempt int
	)
	op := func() error {
		r, err := client.Do(req.Clone(ctx))
		if err != nil {
			return backoff.Permanent(err)
		}
		if !Retryable(r.StatusCode) || attempt >= maxRetries {
			resp = r
			return nil
		}
		attempt++

		io.Copy(io.Discard, r.Body)
		r.Body.Close()
		return fmt.Errorf("HTTP %d (attempt %d/%d)", r.StatusCode, attempt, maxRetries)
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return resp, nil
}
