package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tutor-board/internal/domain/demand"

	"go.uber.org/zap"
)

var (
	ErrUnexpectedStatus   = errors.New("unexpected response status")
	ErrUnrecognizedShape  = errors.New("unrecognized response shape")
	errNilClient          = errors.New("nil feed client")
	defaultRequestTimeout = 5 * time.Second
)

// Client reads the demand list. It never fails: any problem on the wire is
// reported through the fallback acquisition it returns.
type Client interface {
	FetchDemands(ctx context.Context) demand.Acquisition
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &httpClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpClient) FetchDemands(ctx context.Context) demand.Acquisition {
	if c == nil || c.client == nil {
		return demand.FallbackFor(errNilClient)
	}
	endpoint := c.baseURL + demand.DemandsPath

	records, err := c.fetch(ctx, endpoint)
	if err != nil {
		c.logger.Warn("demand feed fetch failed",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return demand.FallbackFor(err)
	}

	c.logger.Debug("demand feed fetched",
		zap.String("endpoint", endpoint),
		zap.Int("count", len(records)),
	)
	return demand.Live(demand.DemandsPath, demand.NormalizeAll(records))
}

func (c *httpClient) fetch(ctx context.Context, endpoint string) ([]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(body)
}

// DecodeRecords accepts either a bare JSON array or an object carrying a
// truthy success flag and a data array.
func DecodeRecords(body []byte) ([]any, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}

	switch v := root.(type) {
	case []any:
		return v, nil
	case map[string]any:
		data, ok := v["data"].([]any)
		if !ok || !truthy(v["success"]) {
			return nil, ErrUnrecognizedShape
		}
		return data, nil
	default:
		return nil, ErrUnrecognizedShape
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

var _ Client = (*httpClient)(nil)
