package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
)

var ErrNoURL = errors.New("webhook: url is not configured")

// DeliveryError reports the day whose POST failed. StatusCode is zero for
// transport failures.
type DeliveryError struct {
	Date       string
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("webhook: deliver %s: http status %d", e.Date, e.StatusCode)
	}
	return fmt.Sprintf("webhook: deliver %s: %v", e.Date, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

type Client struct {
	http     *http.Client
	location *time.Location
	logger   *slog.Logger
}

func NewClient(httpClient *http.Client, loc *time.Location, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{http: httpClient, location: loc, logger: logger}
}

// Send posts one payload per day, in order. The first failure aborts the
// remaining days and is returned as a *DeliveryError.
func (c *Client) Send(ctx context.Context, url string, subs []model.Submission) error {
	if strings.TrimSpace(url) == "" {
		return ErrNoURL
	}
	for _, p := range Encode(subs, c.location) {
		if err := c.post(ctx, url, p); err != nil {
			return err
		}
		c.logger.Debug("webhook payload delivered", "date", p.Date, "submissions", len(p.Submissions))
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return &DeliveryError{Date: p.Date, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Date: p.Date, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return &DeliveryError{Date: p.Date, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DeliveryError{Date: p.Date, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return nil
}
