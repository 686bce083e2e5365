package pixabay

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/pixgrid/internal/adapter"
	"github.com/mmcdole/pixgrid/internal/domain"
)

type recorder struct {
	mu      sync.Mutex
	queries []url.Values
}

func (r *recorder) add(q url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
}

func hitsJSON(n, start int) string {
	parts := make([]string, n)
	for i := range parts {
		id := start + i
		parts[i] = fmt.Sprintf(`{"id":%d,"pageURL":"https://pixabay.com/photos/%d/","type":"photo","tags":"cat, animal, pet","previewURL":"https://cdn.example/%d_150.jpg","webformatURL":"https://cdn.example/%d_640.jpg","largeImageURL":"https://cdn.example/%d_1280.jpg","imageWidth":4000,"imageHeight":3000,"views":1200,"downloads":800,"likes":40,"comments":3,"user_id":7,"user":"someone","userImageURL":""}`, id, id, id, id, id)
	}
	return strings.Join(parts, ",")
}

func newServer(t *testing.T, rec *recorder) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"total":1000,"totalHits":500,"hits":[%s]}`, hitsJSON(24, 0))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchFirstPageParameters(t *testing.T) {
	rec := &recorder{}
	srv := newServer(t, rec)
	c := NewClient(srv.URL, "test-key", adapter.NullLogger())

	page, err := c.Search(context.Background(), domain.DefaultSearchParams().WithQuery("cat"), 1)
	require.NoError(t, err)

	require.Len(t, rec.queries, 1)
	q := rec.queries[0]
	assert.Equal(t, "test-key", q.Get("key"))
	assert.Equal(t, "cat", q.Get("q"))
	assert.Equal(t, "24", q.Get("per_page"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "true", q.Get("safesearch"))

	assert.Len(t, page.Hits, 24)
	assert.Equal(t, 500, page.TotalHits)
	assert.Equal(t, 1000, page.Total)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, "someone", page.Hits[0].User)
	assert.Equal(t, "https://cdn.example/0_640.jpg", page.Hits[0].DisplayURL())
	assert.Equal(t, []string{"cat", "animal", "pet"}, page.Hits[0].TagList())
}

func TestSearchNextPageKeepsFilters(t *testing.T) {
	rec := &recorder{}
	srv := newServer(t, rec)
	c := NewClient(srv.URL, "test-key", adapter.NullLogger())

	params := domain.DefaultSearchParams().WithQuery("cat")
	_, err := c.Search(context.Background(), params, 2)
	require.NoError(t, err)

	q := rec.queries[0]
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "true", q.Get("safesearch"))
	assert.Equal(t, "24", q.Get("per_page"))
}

func TestSearchEmptyQuery(t *testing.T) {
	rec := &recorder{}
	srv := newServer(t, rec)
	c := NewClient(srv.URL, "test-key", adapter.NullLogger())

	_, err := c.Search(context.Background(), domain.DefaultSearchParams(), 1)
	require.NoError(t, err)
	assert.True(t, rec.queries[0].Has("q"))
	assert.Equal(t, "", rec.queries[0].Get("q"))
}

func TestSearchMissingKey(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", adapter.NullLogger())
	_, err := c.Search(context.Background(), domain.DefaultSearchParams(), 1)
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestSearchStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, "", domain.ErrAuthFailed},
		{"forbidden", http.StatusForbidden, "", domain.ErrAuthFailed},
		{"bad key as 400", http.StatusBadRequest, "[ERROR 400] Invalid API key", domain.ErrAuthFailed},
		{"rate limited", http.StatusTooManyRequests, "", domain.ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", adapter.NullLogger())
			_, err := c.Search(context.Background(), domain.DefaultSearchParams(), 1)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSearchOutOfRangeIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[ERROR 400] "page" is out of valid range.`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", adapter.NullLogger())
	_, err := c.Search(context.Background(), domain.DefaultSearchParams(), 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of valid range")
	assert.NotErrorIs(t, err, domain.ErrAuthFailed)
}

func TestSearchMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not-json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", adapter.NullLogger())
	_, err := c.Search(context.Background(), domain.DefaultSearchParams(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestSearchServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(base, "k", adapter.NullLogger(), WithTimeout(time.Second))
	_, err := c.Search(context.Background(), domain.DefaultSearchParams(), 1)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestSearchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "k", adapter.NullLogger())
	_, err := c.Search(ctx, domain.DefaultSearchParams(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedactKey(t *testing.T) {
	got := redactKey("https://pixabay.com/api/?key=secret&q=cat")
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "q=cat")
}
