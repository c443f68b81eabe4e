package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

var (
	ErrInvalidURL   = errors.New("invalid article url")
	errEmptyPage    = errors.New("empty page")
	errDuplicateURL = errors.New("duplicate article url")
)

// Fetcher returns the HTML of one page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// ValidateURL accepts absolute http(s) URLs only.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u.String(), nil
}

// StaticFetcher downloads pages without running scripts.
type StaticFetcher struct {
	Timeout time.Duration
}

func (f StaticFetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.SetRequestTimeout(timeout)

	var body []byte
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
		r.Headers.Set("Accept-Language", "zh-CN,zh;q=0.9")
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	c.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			reqErr = fmt.Errorf("fetch %s: status=%d: %w", pageURL, r.StatusCode, err)
			return
		}
		reqErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, err
	}
	c.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if reqErr != nil {
		return nil, reqErr
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, errEmptyPage)
	}
	return body, nil
}

// HeadlessFetcher renders pages in headless Chrome for articles whose body
// is filled in by scripts.
type HeadlessFetcher struct {
	Timeout time.Duration
	Settle  time.Duration
}

func (f HeadlessFetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	settle := f.Settle
	if settle <= 0 {
		settle = 1500 * time.Millisecond
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, timeout)
	defer reqCancel()

	var html string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("headless fetch %s: %w", pageURL, err)
	}
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("headless fetch %s: %w", pageURL, errEmptyPage)
	}
	return []byte(html), nil
}

var (
	_ Fetcher = StaticFetcher{}
	_ Fetcher = HeadlessFetcher{}
)
