package bria

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
)

// Job lifecycle states reported by the status endpoint.
const (
	statusSubmitted = "SUBMITTED"
	statusRunning   = "RUNNING"
	statusCompleted = "COMPLETED"
	statusFailed    = "FAILED"
)

type statusResponse struct {
	Status string       `json:"status"`
	Result *imageResult `json:"result"`
	Error  string       `json:"error"`
}

// pollUntilTerminal checks the job status on a fixed interval until the job
// completes, fails, or the overall window elapses. A single flaky poll must
// not abort an otherwise-successful long-running job, so transient per-poll
// errors are logged and tolerated; only FAILED stops the loop early and only
// the overall deadline produces a timeout.
func (c *Client) pollUntilTerminal(ctx context.Context, statusURL string) (*imageResult, error) {
	deadline := time.Now().Add(c.pollTimeout)
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		result, terminal, err := c.checkStatus(ctx, statusURL)
		if terminal {
			return result, err
		}
		if err != nil {
			c.logger.Warn().Err(err).Str("status_url", statusURL).Msg("bria: transient poll failure, retrying")
		}

		select {
		case <-ctx.Done():
			return nil, &domain.TimeoutError{Op: "bria poll", Timeout: c.pollTimeout}
		case <-ticker.C:
		}
	}
}

// checkStatus performs one status GET. terminal reports whether the loop must
// stop; a false terminal with a non-nil error marks a tolerated transient
// failure.
func (c *Client) checkStatus(ctx context.Context, statusURL string) (*imageResult, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("api_token", c.apiKey)

	resp, err := c.transport.Do(req, c.pollRequestTimeout)
	if err != nil {
		// The overall window expiring mid-request is a real timeout, not a hiccup.
		if ctx.Err() != nil {
			return nil, true, &domain.TimeoutError{Op: "bria poll", Timeout: c.pollTimeout}
		}
		return nil, false, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}
	if resp.StatusCode >= 300 {
		return nil, false, errors.New("status endpoint returned " + resp.Status)
	}

	var decoded statusResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, false, err
	}

	switch decoded.Status {
	case statusCompleted:
		if decoded.Result == nil || strings.TrimSpace(decoded.Result.ImageURL) == "" {
			return nil, true, &domain.GenerationError{Backend: "bria", Reason: "job completed without image_url"}
		}
		return decoded.Result, true, nil
	case statusFailed:
		reason := strings.TrimSpace(decoded.Error)
		if reason == "" {
			reason = "job failed"
		}
		return nil, true, &domain.GenerationError{Backend: "bria", Reason: reason}
	case statusSubmitted, statusRunning:
		return nil, false, nil
	default:
		return nil, false, errors.New("unknown job status " + strings.TrimSpace(decoded.Status))
	}
}
