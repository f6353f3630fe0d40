// Package catalog resolves books by ISBN, fetching metadata from the Google
// Books API when the local store has no matching row.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

var (
	// ErrCatalogMiss means the catalog answered but had no matching volume.
	ErrCatalogMiss = errors.New("book not found in catalog")
	// ErrInvalidISBN means the supplied ISBN is not 10 or 13 digits.
	ErrInvalidISBN = errors.New("invalid ISBN")
)

// sentinelYear marks books whose catalog record carries no publication date.
const sentinelYear = 1000

// notAvailable fills text fields the catalog left empty.
const notAvailable = "N/A"

// Volume is the catalog's view of a single book edition, already mapped to
// our field conventions.
type Volume struct {
	Title         string
	Author        string // comma-joined when the catalog lists several
	Language      string
	Image         string
	Pages         int
	Publisher     string
	PublishedDate time.Time
}

// Client fetches book metadata from the Google Books volumes API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewClient creates a Google Books client with rate limiting. The request
// timeout doubles as the only cancellation mechanism for catalog calls.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		rateLimiter: newRateLimiter(time.Second), // 1 request per second
	}
}

// LookupISBN queries the catalog for a single ISBN. Returns ErrCatalogMiss
// when the catalog has no matching volume; transport and status failures are
// wrapped and surface to the caller as an upstream error.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (*Volume, error) {
	isbn = NormalizeISBN(isbn)
	if isbn == "" {
		return nil, ErrInvalidISBN
	}

	c.rateLimiter.wait()

	url := fmt.Sprintf("%s/volumes?q=isbn:%s", c.baseURL, isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "libruary/1.0 (https://github.com/libruary/libruary)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ISBN data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, ErrCatalogMiss
	}

	return convertVolume(&result.Items[0].VolumeInfo), nil
}

func convertVolume(info *volumeInfo) *Volume {
	vol := &Volume{
		Title:         info.Title,
		Language:      info.Language,
		Image:         info.ImageLinks.Thumbnail,
		Pages:         info.PageCount,
		Publisher:     info.Publisher,
		PublishedDate: parsePublishedDate(info.PublishedDate),
	}

	if len(info.Authors) > 0 {
		vol.Author = strings.Join(info.Authors, ", ")
	}

	if vol.Title == "" {
		vol.Title = notAvailable
	}
	if vol.Author == "" {
		vol.Author = notAvailable
	}
	if vol.Language == "" {
		vol.Language = notAvailable
	}

	return vol
}

// parsePublishedDate normalizes the catalog's date strings. A bare year or a
// year-month becomes January 1 of that year; anything unparseable falls back
// to the sentinel year.
func parsePublishedDate(dateStr string) time.Time {
	dateStr = strings.TrimSpace(dateStr)

	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		return t
	}
	for _, format := range []string{"2006-01", "2006"} {
		if t, err := time.Parse(format, dateStr); err == nil {
			return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		}
	}

	return time.Date(sentinelYear, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// NormalizeISBN removes hyphens and spaces from an ISBN. Returns "" unless
// the result is 10 or 13 characters long.
func NormalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	isbn = strings.TrimSpace(isbn)

	if len(isbn) != 10 && len(isbn) != 13 {
		return ""
	}

	return isbn
}

// Google Books API response types (internal)

type volumesResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []volumeItem `json:"items"`
}

type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	Publisher     string     `json:"publisher"`
	PublishedDate string     `json:"publishedDate"`
	Language      string     `json:"language"`
	PageCount     int        `json:"pageCount"`
	ImageLinks    imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}
