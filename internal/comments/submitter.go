package comments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RelayHeader carries the token that marks a submission as forwarded by this
// server's own comment form.
const RelayHeader = "X-Comment-Relay"

// Submitter delivers a validated comment to the comment endpoint.
type Submitter interface {
	Submit(ctx context.Context, in Input) error
}

// HTTPSubmitter POSTs the comment as JSON to an endpoint URL.
type HTTPSubmitter struct {
	endpoint   string
	httpClient *http.Client
	relayToken string
}

func NewHTTPSubmitter(endpoint string, hc *http.Client) *HTTPSubmitter {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSubmitter{endpoint: endpoint, httpClient: hc}
}

// WithRelayToken makes every submission present token in RelayHeader, so the
// endpoint can tell forwarded form posts from direct API calls.
func (s *HTTPSubmitter) WithRelayToken(token string) *HTTPSubmitter {
	s.relayToken = token
	return s
}

func (s *HTTPSubmitter) Submit(ctx context.Context, in Input) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.relayToken != "" {
		req.Header.Set(RelayHeader, s.relayToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit comment: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("submit comment: endpoint answered %s", resp.Status)
	}
	return nil
}
