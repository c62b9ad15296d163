// Package remote reads and submits play sessions through the spreadsheet-backed
// form endpoint.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/boardgame-journal/config"
	"github.com/rpupo63/boardgame-journal/errs"
	"github.com/rpupo63/boardgame-journal/models"
	"github.com/rpupo63/boardgame-journal/normalize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 100
	// LookupPageSize is the page scanned when resolving a single remote play.
	LookupPageSize = 500

	maxResponseSize = 10 * 1024 * 1024
)

type Config struct {
	Endpoint string
	Token    string
	TimeZone string
	CacheTTL time.Duration
	Timeout  time.Duration
}

// ConfigFromMap reads GAS_ENDPOINT, SECRET_TOKEN, REMOTE_TIME_ZONE,
// REMOTE_CACHE_TTL_SECONDS and REMOTE_TIMEOUT_SECONDS.
func ConfigFromMap(cfg map[string]string) Config {
	return Config{
		Endpoint: config.GetString(cfg, "GAS_ENDPOINT", ""),
		Token:    config.GetString(cfg, "SECRET_TOKEN", ""),
		TimeZone: config.GetString(cfg, "REMOTE_TIME_ZONE", normalize.DefaultTimeZone),
		CacheTTL: config.GetSeconds(cfg, "REMOTE_CACHE_TTL_SECONDS", 10*time.Minute),
		Timeout:  config.GetSeconds(cfg, "REMOTE_TIMEOUT_SECONDS", 10*time.Second),
	}
}

type Client struct {
	endpoint   string
	token      string
	loc        *time.Location
	httpClient *http.Client
	cache      *pageCache
	logger     zerolog.Logger
}

// NewClient builds a client. A nil httpClient gets a default one bounded by cfg.Timeout.
// A missing endpoint is not an error here; it is reported by each call.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		token:      cfg.Token,
		loc:        normalize.LoadZone(cfg.TimeZone),
		httpClient: httpClient,
		cache:      newPageCache(cfg.CacheTTL),
		logger:     log.With().Str("component", "remoteClient").Logger(),
	}
}

// Configured reports whether an endpoint is set. It has no side effects.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

func (c *Client) pageURL(page, size int) (string, error) {
	if c.endpoint == "" {
		return "", errs.NewConfigMissingError("GAS_ENDPOINT")
	}
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", errs.NewConfigInvalidError("GAS_ENDPOINT", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if c.token != "" {
		q.Set("token", c.token)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPlays reads one page of remote plays. Responses are served from the cache
// while fresh. Rows that cannot be decoded are dropped without failing the page.
func (c *Client) FetchPlays(ctx context.Context, page, size int) (*models.PlayPage, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	target, err := c.pageURL(page, size)
	if err != nil {
		return nil, err
	}

	return c.cache.get(ctx, target, func() (*models.PlayPage, error) {
		// shared by every caller waiting on this key, so it must not die with the first one
		return c.fetch(context.WithoutCancel(ctx), target, page, size)
	})
}

func (c *Client) fetch(ctx context.Context, target string, page, size int) (*models.PlayPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errs.NewRemoteFetchError("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewRemoteFetchError("request failed", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, errs.NewRemoteFetchError(fmt.Sprintf("GAS GET failed: %d", res.StatusCode), nil)
	}

	var envelope map[string]any
	if err := json.NewDecoder(io.LimitReader(res.Body, maxResponseSize)).Decode(&envelope); err != nil {
		return nil, errs.NewRemoteFetchError("invalid JSON response", err)
	}

	if !truthy(envelope["ok"]) {
		message := normalize.Scalar(envelope["error"])
		if message == "" {
			message = "unknown error"
		}
		return nil, errs.NewRemoteFetchError(message, nil)
	}

	rawItems, _ := envelope["items"].([]any)
	items := decodePlays(rawItems, c.loc)
	if dropped := len(rawItems) - len(items); dropped > 0 {
		c.logger.Debug().Int("dropped", dropped).Msg("Dropped remote plays without id or game")
	}

	return &models.PlayPage{
		Page:  intOr(envelope["page"], page),
		Size:  intOr(envelope["size"], size),
		Total: intOr(envelope["total"], len(items)),
		Items: items,
	}, nil
}

// FindPlay scans the lookup page for id.
func (c *Client) FindPlay(ctx context.Context, id string) (models.Play, bool, error) {
	page, err := c.FetchPlays(ctx, DefaultPage, LookupPageSize)
	if err != nil {
		return models.Play{}, false, err
	}
	for _, play := range page.Items {
		if play.ID == id {
			return play, true, nil
		}
	}
	return models.Play{}, false, nil
}

// SubmitResult is the upstream answer to a submission.
type SubmitResult struct {
	OK   bool
	Body map[string]any
}

// SubmitPlay forwards a play submission with the shared token attached. A
// submission without an id gets a generated one. A successful submission clears
// the cache so the new play shows up on the next read.
func (c *Client) SubmitPlay(ctx context.Context, payload map[string]any) (*SubmitResult, error) {
	if c.endpoint == "" {
		return nil, errs.NewConfigMissingError("GAS_ENDPOINT")
	}

	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	if normalize.Scalar(body["id"]) == "" {
		body["id"] = uuid.NewString()
	}
	body["token"] = c.token

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errs.NewRemoteSubmitError("failed to encode payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, errs.NewRemoteSubmitError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewRemoteSubmitError("request failed", err)
	}
	defer res.Body.Close()

	var upstream map[string]any
	if err := json.NewDecoder(io.LimitReader(res.Body, maxResponseSize)).Decode(&upstream); err != nil {
		return nil, errs.NewRemoteSubmitError(fmt.Sprintf("invalid JSON response (status %d)", res.StatusCode), err)
	}

	ok := res.StatusCode >= 200 && res.StatusCode <= 299
	if ok && truthy(upstream["ok"]) {
		c.cache.clear()
		c.logger.Info().Str("id", normalize.Scalar(body["id"])).Msg("Submitted play")
	}
	return &SubmitResult{OK: ok, Body: upstream}, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

func intOr(v any, fallback int) int {
	if i := normalize.Int(v); i != nil {
		return *i
	}
	return fallback
}
