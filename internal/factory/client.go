// Package factory talks to the external pizza factory that fulfills orders.
package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Diner identifies who the factory is baking for.
type Diner struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FulfillmentRequest struct {
	Diner Diner `json:"diner"`
	Order any   `json:"order"`
}

// FulfillmentResult is the factory's success body.
type FulfillmentResult struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

// RejectedError is returned when the factory answers with a non-2xx status.
type RejectedError struct {
	StatusCode int
	Message    string
	ReportURL  string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("factory rejected order (status %d): %s", e.StatusCode, e.Message)
}

type Client interface {
	// Fulfill submits an order, authenticating with the caller's bearer token
	Fulfill(ctx context.Context, bearerToken string, req *FulfillmentRequest) (*FulfillmentResult, error)
}

type httpClient struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("client", "factory")),
	}
}

func (c *httpClient) Fulfill(ctx context.Context, bearerToken string, req *FulfillmentRequest) (*FulfillmentResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "encode fulfillment request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/order", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build fulfillment request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+bearerToken)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error("Factory request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, errors.Wrap(err, "call factory")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, "read factory response")
	}

	c.log.Debug("Factory responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Message   string `json:"message"`
			ReportURL string `json:"reportUrl"`
		}
		// a non-JSON error body still yields a RejectedError
		_ = json.Unmarshal(body, &failure)
		return nil, &RejectedError{
			StatusCode: resp.StatusCode,
			Message:    failure.Message,
			ReportURL:  failure.ReportURL,
		}
	}

	var result FulfillmentResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrap(err, "decode factory response")
	}
	return &result, nil
}
