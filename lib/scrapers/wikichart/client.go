package wikichart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const defaultBaseUrl = "https://en.wikipedia.org"

var ErrBadStatus = errors.New("unexpected response status")

type ClientOptions struct {
	// BaseUrl defaults to the english wikipedia.
	BaseUrl string
	// Timeout is the per-request timeout, defaults to 20s.
	Timeout time.Duration
	// RetryCount defaults to 3 attempts after the first.
	RetryCount int
	// RetryWait is the base backoff between attempts, defaults to 2.5s.
	RetryWait time.Duration
	// PolitenessDelay is the minimum spacing between outbound requests
	// across all goroutines sharing the client. Zero disables pacing.
	PolitenessDelay time.Duration
}

type Client struct {
	baseUrl string
	http    *resty.Client
}

func NewClient(opts ClientOptions) Client {
	if opts.BaseUrl == "" {
		opts.BaseUrl = defaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 20
	}
	if opts.RetryCount == 0 {
		opts.RetryCount = 3
	}
	if opts.RetryWait == 0 {
		opts.RetryWait = time.Millisecond * 2500
	}

	client := resty.New()
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	client.SetHeader("accept-language", "en-US,en;q=0.8")
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(opts.RetryWait)
	client.SetRetryMaxWaitTime(opts.RetryWait * 4)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return res.StatusCode() >= 500 || res.StatusCode() == http.StatusTooManyRequests
	})

	if opts.PolitenessDelay > 0 {
		limiter := rate.NewLimiter(rate.Every(opts.PolitenessDelay), 1)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	return Client{
		baseUrl: opts.BaseUrl,
		http:    client,
	}
}

func (c Client) YearURL(year int) string {
	return fmt.Sprintf("%s/wiki/List_of_Billboard_Hot_100_number_ones_of_%d", c.baseUrl, year)
}

func (c Client) fetchPage(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %d for %s", ErrBadStatus, res.StatusCode(), url)
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
}
