// Package validator provides the HTTP client for the external review service
package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	perr "mouthwash/internal/platform/errors"
	"mouthwash/internal/platform/logger"
	"mouthwash/internal/services/moderation/domain"
)

const (
	reviewPath       = "/v1/review"
	defaultTimeout   = 5 * time.Second
	defaultRetryBase = 250 * time.Millisecond
	defaultFailures  = 3
	defaultCooldown  = 30 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL string
	Timeout time.Duration

	// RetryBase seeds the jittered backoff before the single retry
	RetryBase time.Duration

	// Breaker trips after this many consecutive failures and stays open
	// for Cooldown before probing again
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// Client is a resilient HTTP implementation of the moderation ValidatorPort
type Client struct {
	http  *http.Client
	opts  Options
	cb    *gobreaker.CircuitBreaker
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a Client with sane defaults. BaseURL is required
func New(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.BreakerFailures == 0 {
		o.BreakerFailures = defaultFailures
	}
	if o.BreakerCooldown <= 0 {
		o.BreakerCooldown = defaultCooldown
	}

	log := *logger.Named("validator")
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "validator",
		Timeout: o.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= o.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("validator breaker state change")
		},
	})

	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		cb:    cb,
		log:   log,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Review implements the moderation ValidatorPort. The breaker wraps the whole
// call so a dead validator fails fast instead of stalling every segment
func (c *Client) Review(ctx context.Context, req domain.ReviewRequest) (domain.ReviewReply, error) {
	out, err := c.cb.Execute(func() (any, error) {
		return c.post(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.ReviewReply{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "validator breaker open")
		}
		return domain.ReviewReply{}, err
	}
	reply, ok := out.(domain.ReviewReply)
	if !ok {
		return domain.ReviewReply{}, perr.Newf(perr.ErrorCodeUnknown, "validator reply type %T", out)
	}
	return reply, nil
}

// post issues the review request, retrying once on transport errors
func (c *Client) post(ctx context.Context, req domain.ReviewRequest) (domain.ReviewReply, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.ReviewReply{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "validator marshal failed")
	}

	url := c.opts.BaseURL + reviewPath
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return domain.ReviewReply{}, ctx.Err()
		default:
		}

		hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return domain.ReviewReply{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "validator new request failed")
		}
		hreq.Header.Set("Content-Type", "application/json")
		hreq.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(hreq)
		lat := c.now().Sub(start)

		if err != nil {
			if attempts >= 1 {
				return domain.ReviewReply{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "validator do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Err(err).Msg("validator transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("validator http response")

		if resp.StatusCode != http.StatusOK {
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return domain.ReviewReply{}, perr.Newf(perr.ErrorCodeUnavailable,
				"validator unexpected status %d body %s", resp.StatusCode, string(tail))
		}

		var reply domain.ReviewReply
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&reply); err != nil {
			_ = resp.Body.Close()
			return domain.ReviewReply{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "validator decode failed")
		}
		_ = resp.Body.Close()
		return reply, nil
	}
}

// backoff is half-fixed half-jittered so concurrent retries spread out
func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	return d/2 + time.Duration(rand.Int63n(int64(d/2)))
}
