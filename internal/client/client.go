package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/services"
)

const RequestIDHeader = "X-Request-ID"

// EntryRequest is the body sent when creating or updating an entry.
type EntryRequest struct {
	Date          string          `json:"date,omitempty"`
	FlowIntensity string          `json:"flow_intensity"`
	Symptoms      models.Symptoms `json:"symptoms"`
	Notes         string          `json:"notes"`
}

type cachedEntries struct {
	etag    string
	entries []models.Entry
}

// Client talks to the /api/cycles endpoints of a cycletrack server.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.Mutex
	entries map[string]cachedEntries
}

func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		entries: map[string]cachedEntries{},
	}
}

// ListEntries fetches the user's entries. A previously seen ETag is sent so
// an unchanged list is served from the local copy.
func (c *Client) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	c.mu.Lock()
	cached, hasCache := c.entries[userID]
	c.mu.Unlock()

	request, err := c.newRequest(ctx, http.MethodGet, c.userPath(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch cycle data: %w", err)
	}
	if hasCache && cached.etag != "" {
		request.Header.Set("If-None-Match", cached.etag)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch cycle data: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotModified && hasCache {
		return cloneEntries(cached.entries), nil
	}

	var entries []models.Entry
	if err := decodeResponse(response, &entries); err != nil {
		return nil, fmt.Errorf("fetch cycle data: %w", err)
	}
	if entries == nil {
		entries = []models.Entry{}
	}

	c.mu.Lock()
	if etag := response.Header.Get("ETag"); etag != "" {
		c.entries[userID] = cachedEntries{etag: etag, entries: cloneEntries(entries)}
	} else {
		delete(c.entries, userID)
	}
	c.mu.Unlock()

	return entries, nil
}

func (c *Client) CreateEntry(ctx context.Context, userID string, entry EntryRequest) (models.Entry, error) {
	var created models.Entry
	if err := c.doJSON(ctx, http.MethodPost, c.userPath(userID), entry, &created); err != nil {
		if errors.Is(err, ErrEntryConflict) {
			return models.Entry{}, ErrEntryConflict
		}
		return models.Entry{}, fmt.Errorf("add cycle entry: %w", err)
	}
	return created, nil
}

func (c *Client) UpdateEntry(ctx context.Context, userID string, id uint, entry EntryRequest) (models.Entry, error) {
	var updated models.Entry
	if err := c.doJSON(ctx, http.MethodPut, c.entryPath(userID, id), entry, &updated); err != nil {
		return models.Entry{}, fmt.Errorf("update cycle entry: %w", err)
	}
	return updated, nil
}

func (c *Client) DeleteEntry(ctx context.Context, userID string, id uint) error {
	if err := c.doJSON(ctx, http.MethodDelete, c.entryPath(userID, id), nil, nil); err != nil {
		return fmt.Errorf("delete cycle entry: %w", err)
	}
	return nil
}

func (c *Client) ListPredictions(ctx context.Context, userID string) ([]models.Prediction, error) {
	var predictions []models.Prediction
	if err := c.doJSON(ctx, http.MethodGet, c.userPath(userID)+"/predictions", nil, &predictions); err != nil {
		return nil, fmt.Errorf("fetch cycle predictions: %w", err)
	}
	if predictions == nil {
		predictions = []models.Prediction{}
	}
	return predictions, nil
}

func (c *Client) Insights(ctx context.Context, userID string) (services.Insights, error) {
	var insights services.Insights
	if err := c.doJSON(ctx, http.MethodGet, c.userPath(userID)+"/insights", nil, &insights); err != nil {
		return services.Insights{}, fmt.Errorf("fetch cycle insights: %w", err)
	}
	return insights, nil
}

// Export downloads the user's entries as "csv" or "json", optionally bounded
// by from and to (YYYY-MM-DD, empty for open).
func (c *Client) Export(ctx context.Context, userID string, format string, from string, to string) ([]byte, error) {
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}
	path := c.userPath(userID) + "/export/" + url.PathEscape(format)
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	request, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("export cycle data: %w", err)
	}
	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("export cycle data: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("export cycle data: %w", readAPIError(response))
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("export cycle data: %w", err)
	}
	return body, nil
}

func (c *Client) doJSON(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	response, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	return decodeResponse(response, out)
}

func (c *Client) newRequest(ctx context.Context, method string, path string, body io.Reader) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set(RequestIDHeader, uuid.NewString())
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	return request, nil
}

func (c *Client) userPath(userID string) string {
	return "/" + url.PathEscape(userID)
}

func (c *Client) entryPath(userID string, id uint) string {
	return c.userPath(userID) + "/" + strconv.FormatUint(uint64(id), 10)
}

func decodeResponse(response *http.Response, out any) error {
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return readAPIError(response)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readAPIError(response *http.Response) error {
	apiErr := &APIError{StatusCode: response.StatusCode}
	payload := struct {
		Error string `json:"error"`
	}{}
	raw, _ := io.ReadAll(io.LimitReader(response.Body, 64<<10))
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

func cloneEntries(entries []models.Entry) []models.Entry {
	cloned := make([]models.Entry, len(entries))
	copy(cloned, entries)
	return cloned
}
