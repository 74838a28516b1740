// internal/services/events_client.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/karyadesa/karya-desa-backend/internal/config"
)

// EventsCounter reports how many events an external source knows about.
type EventsCounter interface {
	Count(ctx context.Context) int
}

// EventsClient reads the row count of a hosted events table. The count is
// cosmetic, so every failure degrades to zero instead of an error.
type EventsClient struct {
	url      string
	apiKey   string
	timeout  time.Duration
	client   *http.Client
	failures metric.Int64Counter
}

func NewEventsClient(cfg config.EventsConfig) *EventsClient {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	failures, err := otel.Meter(instrumentationName).Int64Counter(
		"events_api.failures",
		metric.WithDescription("External events API calls that fell back to zero"),
	)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create events failure counter")
	}

	return &EventsClient{
		url:      strings.TrimSpace(cfg.URL),
		apiKey:   strings.TrimSpace(cfg.APIKey),
		timeout:  timeout,
		client:   &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		failures: failures,
	}
}

// Configured reports whether both the URL and API key are set.
func (c *EventsClient) Configured() bool {
	return c.url != "" && c.apiKey != ""
}

func (c *EventsClient) Count(ctx context.Context) int {
	if !c.Configured() {
		return 0
	}

	count, err := c.fetch(ctx)
	if err != nil {
		if c.failures != nil {
			c.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", failureReason(err))))
		}
		logrus.WithError(err).Warn("Events API unavailable, using 0")
		return 0
	}
	return count
}

type eventsError struct {
	reason string
	err    error
}

func (e *eventsError) Error() string { return e.reason + ": " + e.err.Error() }
func (e *eventsError) Unwrap() error { return e.err }

func failureReason(err error) string {
	if e, ok := err.(*eventsError); ok {
		return e.reason
	}
	return "unknown"
}

func (c *EventsClient) fetch(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, &eventsError{reason: "request", err: err}
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "count=exact")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, &eventsError{reason: "network", err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return 0, &eventsError{reason: "status", err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if count, ok := parseContentRange(resp.Header.Get("Content-Range")); ok {
		io.Copy(io.Discard, resp.Body)
		return count, nil
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return 0, &eventsError{reason: "decode", err: err}
	}
	return len(rows), nil
}

// parseContentRange extracts the total from "0-9/42" or "*/42".
func parseContentRange(header string) (int, bool) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return 0, false
	}
	total, err := strconv.Atoi(strings.TrimSpace(header[idx+1:]))
	if err != nil || total < 0 {
		return 0, false
	}
	return total, true
}
