package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]string
	calls atomic.Int32
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) ([]byte, error) {
	f.calls.Add(1)
	page, ok := f.pages[pageURL]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(page), nil
}

func TestCrawl_KeepsInputOrderAndIsolatesFailures(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/a": wechatPage,
		"https://example.com/c": `<html><body><p>学员：高三 化学</p></body></html>`,
	}}
	c := New(f, nil, WithWorkers(2), WithRateLimit(0))

	out := c.Crawl(context.Background(), []string{
		"https://example.com/a",
		"https://example.com/missing",
		"ftp://example.com/b",
		"https://example.com/c",
		"https://example.com/a",
	})

	require.Len(t, out, 5)
	require.NoError(t, out[0].Err)
	require.Len(t, out[0].Demands, 1)
	assert.Equal(t, "数学", out[0].Demands[0].Demand.Subject)
	assert.Equal(t, "浦东", out[0].Demands[0].Demand.District)

	assert.Error(t, out[1].Err)
	assert.ErrorIs(t, out[2].Err, ErrInvalidURL)

	require.NoError(t, out[3].Err)
	assert.Equal(t, "高三", out[3].Demands[0].Demand.Grade)
	assert.Equal(t, "化学", out[3].Demands[0].Demand.Subject)

	assert.ErrorIs(t, out[4].Err, errDuplicateURL)
	assert.Equal(t, int32(3), f.calls.Load())
}

func TestCrawl_Empty(t *testing.T) {
	assert.Empty(t, New(&fakeFetcher{}, nil).Crawl(context.Background(), nil))
}

func TestStaticFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(wechatPage))
	}))
	defer srv.Close()

	f := StaticFetcher{Timeout: 5 * time.Second}

	body, err := f.Fetch(context.Background(), srv.URL+"/article")
	require.NoError(t, err)
	assert.Contains(t, string(body), "js_content")

	_, err = f.Fetch(context.Background(), srv.URL+"/gone")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Fetch(ctx, srv.URL+"/article")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateURL(t *testing.T) {
	u, err := ValidateURL("  https://example.com/a?b=1 ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a?b=1", u)

	for _, bad := range []string{"", "example.com/a", "mailto:x@example.com", "http://"} {
		_, err := ValidateURL(bad)
		assert.ErrorIs(t, err, ErrInvalidURL, bad)
	}
}

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	p := NewWorkerPool(3, 10)
	results := p.Run(context.Background())

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		key := string(rune('a' + i))
		p.Submit(key, func(context.Context) error {
			ran.Add(1)
			if key == "c" {
				return errors.New("boom")
			}
			return nil
		})
	}
	p.Close()

	failed := map[string]bool{}
	count := 0
	for r := range results {
		count++
		if r.Err != nil {
			failed[r.Key] = true
		}
	}
	assert.Equal(t, 10, count)
	assert.Equal(t, int32(10), ran.Load())
	assert.Equal(t, map[string]bool{"c": true}, failed)
}

func TestWorkerPool_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewWorkerPool(1, 1)
	p.SetRateLimit(1)
	results := p.Run(ctx)
	cancel()
	p.Close()

	for range results {
	}
}

func TestWorkerPool_RateLimitedDrainsAfterClose(t *testing.T) {
	p := NewWorkerPool(2, 4)
	p.SetRateLimit(50)
	results := p.Run(context.Background())
	for i := 0; i < 4; i++ {
		p.Submit(string(rune('a'+i)), func(context.Context) error { return nil })
	}
	p.Close()

	done := make(chan int)
	go func() {
		n := 0
		for range results {
			n++
		}
		done <- n
	}()
	select {
	case n := <-done:
		assert.Equal(t, 4, n)
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not drain")
	}
}
