package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inkwell/internal/models"
)

// SanityClient talks to a hosted Sanity project over its HTTP query and mutation APIs.
type SanityClient struct {
	httpClient *http.Client
	projectID  string
	dataset    string
	apiVersion string
	token      string
	useCDN     bool
	baseURL    string
}

type SanityOption func(*SanityClient)

// WithBaseURL sends every request to baseURL instead of the project's API hosts.
func WithBaseURL(baseURL string) SanityOption {
	return func(c *SanityClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithHTTPClient(hc *http.Client) SanityOption {
	return func(c *SanityClient) {
		c.httpClient = hc
	}
}

func WithToken(token string) SanityOption {
	return func(c *SanityClient) {
		c.token = token
	}
}

func WithCDN(useCDN bool) SanityOption {
	return func(c *SanityClient) {
		c.useCDN = useCDN
	}
}

func NewSanityClient(projectID, dataset, apiVersion string, opts ...SanityOption) *SanityClient {
	c := &SanityClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 4,
			},
		},
		projectID:  projectID,
		dataset:    dataset,
		apiVersion: strings.TrimPrefix(apiVersion, "v"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SanityClient) endpoint(kind string, cdn bool) string {
	base := c.baseURL
	if base == "" {
		host := "api.sanity.io"
		if cdn {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", c.projectID, host)
	}
	return fmt.Sprintf("%s/v%s/data/%s/%s", base, c.apiVersion, kind, c.dataset)
}

// Query runs a GROQ query and decodes its result into out. Params are JSON-encoded
// and sent as $name query parameters.
func (c *SanityClient) Query(ctx context.Context, query string, params map[string]interface{}, out interface{}) error {
	values := url.Values{}
	values.Set("query", query)
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("query", c.useCDN)+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := c.do(req, &envelope); err != nil {
		return err
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return ErrNotFound
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode query result: %w", err)
	}
	return nil
}

// Mutate applies a list of mutations in one transaction and returns the affected document ids.
func (c *SanityClient) Mutate(ctx context.Context, mutations []map[string]interface{}) ([]string, error) {
	body, err := json.Marshal(map[string]interface{}{"mutations": mutations})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("mutate", false)+"?returnIds=true", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result struct {
		TransactionID string `json:"transactionId"`
		Results       []struct {
			ID        string `json:"id"`
			Operation string `json:"operation"`
		} `json:"results"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(result.Results))
	for _, r := range result.Results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (c *SanityClient) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{StatusCode: resp.StatusCode, Message: apiErrorMessage(excerpt)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode content api response: %w", err)
	}
	return nil
}

func apiErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Description string `json:"description"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error.Description != "" {
			return payload.Error.Description
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}

func (c *SanityClient) Slugs(ctx context.Context) ([]string, error) {
	var posts []models.Post
	if err := c.Query(ctx, slugsQuery, nil, &posts); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list slugs: %w", err)
	}

	slugs := make([]string, 0, len(posts))
	for _, p := range posts {
		if p.Slug.Current != "" {
			slugs = append(slugs, p.Slug.Current)
		}
	}
	return slugs, nil
}

func (c *SanityClient) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.Query(ctx, postsQuery, nil, &posts); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.Post{}, nil
		}
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (c *SanityClient) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := c.Query(ctx, postBySlugQuery, map[string]interface{}{"slug": slug}, &post); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch post %q: %w", slug, err)
	}
	post.Comments = models.VisibleComments(post.ID, post.Comments)
	return &post, nil
}

func (c *SanityClient) CreateComment(ctx context.Context, nc NewComment) (string, error) {
	ids, err := c.Mutate(ctx, []map[string]interface{}{
		{
			"create": map[string]interface{}{
				"_type": "comment",
				"post": map[string]interface{}{
					"_type": "reference",
					"_ref":  nc.PostID,
				},
				"name":     nc.Name,
				"email":    nc.Email,
				"comment":  nc.Comment,
				"approved": false,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create comment: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("create comment: no document id returned")
	}
	return ids[0], nil
}
