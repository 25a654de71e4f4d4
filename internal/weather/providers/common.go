package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

const userAgent = "weather-backend/1.0"

var (
	errServerError = errors.New("server error")
	errDecode      = errors.New("decode response")
)

// BreakerConfig controls the circuit breaker guarding an upstream.
type BreakerConfig struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// MaxConsecutiveFailures trips the breaker once exceeded.
	MaxConsecutiveFailures uint32
}

// DefaultBreakerConfig mirrors the settings used for every provider.
var DefaultBreakerConfig = BreakerConfig{
	MaxRequests:            5,
	Interval:               1 * time.Minute,
	Timeout:                2 * time.Minute,
	MaxConsecutiveFailures: 5,
}

func newCircuitBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > cfg.MaxConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// newRestClient wraps client in a resty client with request logging.
// A nil client falls back to http.DefaultClient.
func newRestClient(client *http.Client) *resty.Client {
	if client == nil {
		client = http.DefaultClient
	}

	rc := resty.NewWithClient(client).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		slog.Debug("upstream response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time().String(),
			"bytes", len(resp.Body()),
		)
		return nil
	})

	return rc
}

// executeWithBreaker runs send inside the circuit breaker. Transport failures
// (including broken bodies), undecodable JSON and 5xx answers count against the
// breaker; other non-2xx answers are returned to the caller as a response.
func executeWithBreaker(cb *gobreaker.CircuitBreaker, send func() (*resty.Response, error)) (*resty.Response, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		resp, err := send()
		if err != nil {
			if isDecodeError(err) {
				return nil, fmt.Errorf("%w: %v", errDecode, err)
			}
			return nil, err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	resp, ok := result.(*resty.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

func isDecodeError(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func isBreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
