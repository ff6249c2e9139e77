package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobradar/pkg/cache"
	"jobradar/pkg/models"
)

type mockCrawler struct {
	mock.Mock
}

func (m *mockCrawler) Crawl(ctx context.Context, req models.CrawlRequest) (*models.CrawlResult, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*models.CrawlResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestServer(crawler Crawler) *Server {
	return NewServer(crawler, cache.NewMemoryCache(10))
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleCrawl_Questions(t *testing.T) {
	crawler := new(mockCrawler)
	crawler.On("Crawl", mock.Anything, mock.MatchedBy(func(req models.CrawlRequest) bool {
		return req.Kind == models.KindQuestions && req.Category == "backend"
	})).Return(&models.CrawlResult{
		Success:   true,
		Kind:      models.KindQuestions,
		Category:  "backend",
		Questions: []models.InterviewQuestion{{ID: "abc", Question: "What is redis?"}},
		Timestamp: time.Now(),
	}, nil)

	rec := post(t, newTestServer(crawler), "/crawl/questions", `{"category":"backend","keywords":["redis"]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp crawlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "backend", resp.Platform)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "What is redis?", resp.Questions[0].Question)
	crawler.AssertExpectations(t)
}

func TestHandleCrawl_Jobs(t *testing.T) {
	crawler := new(mockCrawler)
	crawler.On("Crawl", mock.Anything, mock.MatchedBy(func(req models.CrawlRequest) bool {
		return req.Kind == models.KindJobs
	})).Return(&models.CrawlResult{
		Success:  true,
		Kind:     models.KindJobs,
		Category: "backend",
		Jobs:     []models.JobPosition{{ID: "j1", Title: "Go Dev", Company: "Acme"}},
	}, nil)

	rec := post(t, newTestServer(crawler), "/crawl/jobs", `{"category":"backend"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp crawlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Go Dev", resp.Data[0].Title)
}

func TestHandleCrawl_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing category", `{"keywords":["redis"]}`},
		{"unknown category", `{"category":"underwater-basket-weaving"}`},
		{"negative max results", `{"category":"backend","max_results":-2}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			crawler := new(mockCrawler)
			rec := post(t, newTestServer(crawler), "/crawl/questions", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			crawler.AssertNotCalled(t, "Crawl", mock.Anything, mock.Anything)

			var resp crawlResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleCrawl_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.NewTimeoutError("s", "u", nil), http.StatusGatewayTimeout},
		{models.NewNetworkError("s", "u", nil), http.StatusBadGateway},
		{models.NewRateLimitError("s", time.Minute), http.StatusTooManyRequests},
		{models.NewParseError("s", "f", nil), http.StatusBadGateway},
		{models.NewUnknownError("s", assert.AnError), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(models.KindOf(tc.err)), func(t *testing.T) {
			crawler := new(mockCrawler)
			crawler.On("Crawl", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := post(t, newTestServer(crawler), "/crawl/questions", `{"category":"backend"}`)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandleCacheClear(t *testing.T) {
	store := cache.NewMemoryCache(10)
	require.NoError(t, store.SetJSON(context.Background(), "jobradar:crawl:x", "v", time.Minute))

	s := NewServer(new(mockCrawler), store)

	req := httptest.NewRequest(http.MethodDelete, "/cache", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp["removed"])
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(new(mockCrawler))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "uptime")
}
