// Package testutil provides testing utilities for the ratings scraper.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// MockRatingsAPI is a configurable mock of the EA ratings endpoint.
// Responses are keyed by the offset query parameter.
type MockRatingsAPI struct {
	server *httptest.Server
	mu     sync.RWMutex
	pages  map[int]mockPage

	// Tracking
	RequestCount int
	Offsets      []int
}

type mockPage struct {
	statusCode int
	body       string
}

// NewMockRatingsAPI creates a new mock ratings server. Offsets without a
// configured page respond with an empty items list.
func NewMockRatingsAPI() *MockRatingsAPI {
	mock := &MockRatingsAPI{
		pages: make(map[int]mockPage),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		mock.mu.Lock()
		mock.RequestCount++
		mock.Offsets = append(mock.Offsets, offset)
		page, exists := mock.pages[offset]
		mock.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")

		if !exists {
			w.Write([]byte(`{"items": []}`))
			return
		}

		if page.statusCode != 0 && page.statusCode != http.StatusOK {
			w.WriteHeader(page.statusCode)
			return
		}
		w.Write([]byte(page.body))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockRatingsAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockRatingsAPI) Close() {
	m.server.Close()
}

// Reset clears tracking counters and configured pages.
func (m *MockRatingsAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.Offsets = nil
	m.pages = make(map[int]mockPage)
}

// SetPage configures the response body for an offset.
func (m *MockRatingsAPI) SetPage(offset int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[offset] = mockPage{statusCode: http.StatusOK, body: body}
}

// SetError configures an error status for an offset.
func (m *MockRatingsAPI) SetError(offset, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[offset] = mockPage{statusCode: statusCode}
}

// SetGeneratedPages configures consecutive full pages of pageLimit items
// each, followed by one page of remainder items. Item ids are sequential
// across pages.
func (m *MockRatingsAPI) SetGeneratedPages(pageLimit, fullPages, remainder int) {
	id := 0
	for p := 0; p < fullPages; p++ {
		m.SetPage(p*pageLimit, GeneratePage(id, pageLimit))
		id += pageLimit
	}
	m.SetPage(fullPages*pageLimit, GeneratePage(id, remainder))
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockRatingsAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GeneratePage builds a page body with count items carrying sequential
// ids starting at firstID.
func GeneratePage(firstID, count int) string {
	items := make([]map[string]any, count)
	for i := range items {
		items[i] = map[string]any{
			"id":   firstID + i,
			"name": fmt.Sprintf("Player %d", firstID+i),
		}
	}
	data, _ := json.Marshal(map[string]any{"items": items})
	return string(data)
}
