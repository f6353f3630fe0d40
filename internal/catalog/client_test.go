package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"978-0-14-044913-6", "9780140449136"},
		{"0-14-044913-9", "0140449139"},
		{"978 0 14 044913 6", "9780140449136"},
		{"9780140449136", "9780140449136"},
		{"123", ""},            // Too short
		{"12345678901234", ""}, // Too long
		{"", ""},
		{"  978-0-14-044913-6  ", "9780140449136"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeISBN(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeISBN(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParsePublishedDate(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"1996-11-01", time.Date(1996, time.November, 1, 0, 0, 0, 0, time.UTC)},
		{"1996-11", time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"1996", time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"", time.Date(sentinelYear, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"not a date", time.Date(sentinelYear, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parsePublishedDate(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("parsePublishedDate(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLookupISBN(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("q") != "isbn:9780140449136" {
			_ = json.NewEncoder(w).Encode(volumesResponse{})
			return
		}

		response := volumesResponse{
			TotalItems: 1,
			Items: []volumeItem{
				{
					ID: "abc123",
					VolumeInfo: volumeInfo{
						Title:         "The Odyssey",
						Authors:       []string{"Homer", "Robert Fagles"},
						Publisher:     "Penguin Classics",
						PublishedDate: "1996-11-01",
						Language:      "en",
						PageCount:     541,
						ImageLinks:    imageLinks{Thumbnail: "http://books.example/odyssey.jpg"},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	vol, err := client.LookupISBN(context.Background(), "978-0-14-044913-6")
	if err != nil {
		t.Fatalf("LookupISBN failed: %v", err)
	}

	if vol.Title != "The Odyssey" {
		t.Errorf("Title = %q, expected %q", vol.Title, "The Odyssey")
	}
	if vol.Author != "Homer, Robert Fagles" {
		t.Errorf("Author = %q, expected comma-joined authors", vol.Author)
	}
	if vol.Language != "en" {
		t.Errorf("Language = %q, expected %q", vol.Language, "en")
	}
	if vol.Pages != 541 {
		t.Errorf("Pages = %d, expected 541", vol.Pages)
	}
	if vol.Image != "http://books.example/odyssey.jpg" {
		t.Errorf("Image = %q, expected thumbnail link", vol.Image)
	}
	expectedDate := time.Date(1996, time.November, 1, 0, 0, 0, 0, time.UTC)
	if !vol.PublishedDate.Equal(expectedDate) {
		t.Errorf("PublishedDate = %v, expected %v", vol.PublishedDate, expectedDate)
	}
}

func TestLookupISBN_MissingFieldsGetSentinels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := volumesResponse{
			TotalItems: 1,
			Items:      []volumeItem{{ID: "bare", VolumeInfo: volumeInfo{}}},
		}
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	vol, err := client.LookupISBN(context.Background(), "9780140449136")
	if err != nil {
		t.Fatalf("LookupISBN failed: %v", err)
	}

	if vol.Title != "N/A" || vol.Author != "N/A" || vol.Language != "N/A" {
		t.Errorf("empty fields should default to N/A, got title=%q author=%q language=%q",
			vol.Title, vol.Author, vol.Language)
	}
	if vol.PublishedDate.Year() != sentinelYear {
		t.Errorf("absent date should use the sentinel year, got %v", vol.PublishedDate)
	}
}

func TestLookupISBN_Miss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(volumesResponse{TotalItems: 0})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.LookupISBN(context.Background(), "9780140449136")
	if !errors.Is(err, ErrCatalogMiss) {
		t.Errorf("expected ErrCatalogMiss, got %v", err)
	}
}

func TestLookupISBN_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.LookupISBN(context.Background(), "9780140449136")
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if errors.Is(err, ErrCatalogMiss) {
		t.Error("upstream failure must not be reported as a catalog miss")
	}
}

func TestLookupISBN_InvalidISBN(t *testing.T) {
	client := NewClient("http://unused.example", time.Second)

	_, err := client.LookupISBN(context.Background(), "123")
	if !errors.Is(err, ErrInvalidISBN) {
		t.Errorf("expected ErrInvalidISBN, got %v", err)
	}
}
