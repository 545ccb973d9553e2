package noaa

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"
)

const (
	// DefaultBaseURL is the production NOAA CO-OPS endpoint.
	DefaultBaseURL = "https://api.tidesandcurrents.noaa.gov"

	dataPath = "/api/prod/datagetter"
)

// ErrNoData is returned when the API answers successfully but carries no
// predictions for the requested station and day.
var ErrNoData = errors.New("no prediction data for station")

// ClientOptions configures a Client. The zero value of every field has a
// usable default.
type ClientOptions struct {
	BaseURL       string
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
	RetryMaxWait  time.Duration
}

// Client queries the NOAA CO-OPS API.
type Client struct {
	c      *resty.Client
	logger *zap.SugaredLogger
}

// NewClient builds a Client. A nil logger disables request logging.
func NewClient(opts ClientOptions, logger *zap.SugaredLogger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryWaitTime == 0 {
		opts.RetryWaitTime = 2 * time.Second
	}
	if opts.RetryMaxWait == 0 {
		opts.RetryMaxWait = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetRetryMaxWaitTime(opts.RetryMaxWait)
	if logger != nil {
		client.SetLogger(logger)
	}

	return &Client{
		c:      client,
		logger: logger,
	}
}

// Predictions fetches the hourly tide series described by q.
func (c *Client) Predictions(ctx context.Context, q PredictionQuery) (Predictions, error) {
	q.Interval = IntervalHourly
	return c.get(ctx, q)
}

// Extremes fetches only the high and low tide events described by q.
func (c *Client) Extremes(ctx context.Context, q PredictionQuery) (Predictions, error) {
	q.Interval = IntervalHiLo
	return c.get(ctx, q)
}

func (c *Client) get(ctx context.Context, q PredictionQuery) (Predictions, error) {
	req := c.c.R().
		SetContext(ctx).
		SetQueryParamsFromValues(q.build()).
		SetResult(&Result{})

	resp, err := req.Get(dataPath)
	if err != nil {
		return nil, fmt.Errorf("%w: can't fetch tide predictions", err)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debugf("got response %s status: %s, %s", resp.Request.URL, resp.Status(), resp.Duration())
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("tide prediction request failed: %s", resp.Status())
	}

	result := resp.Result().(*Result)
	// The API reports failures like unknown stations inside a 200 response.
	if result.Error != nil {
		return nil, result.Error
	}
	if len(result.Predictions) == 0 {
		return nil, fmt.Errorf("%w %d on %s", ErrNoData, q.Station, q.Date.Format(dateFormat))
	}

	return result.Predictions, nil
}
