// Package livy is a client for the Livy batches REST API: batch
// submission, state reads, paginated log retrieval, and batch deletion.
package livy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"livybatch/internal/apperrors"
	"livybatch/internal/jsonpath"
	"livybatch/pkg/restcall"
)

const batchesEndpoint = "batches"

// Client talks to one Livy server.
type Client struct {
	rest   *restcall.Client
	logger *slog.Logger
}

// NewClient creates a Livy client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		rest:   restcall.New("livy", baseURL, timeout),
		logger: logger.With("component", "livy"),
	}
}

// Submit creates a batch from a prebuilt JSON payload and returns the
// server-assigned batch id. The requestedBy value is sent as the
// X-Requested-By header, which Livy requires on mutating calls.
func (c *Client) Submit(ctx context.Context, payload []byte, requestedBy string) (int64, error) {
	c.logger.Info("Submitting batch", "payload", string(payload))

	headers := map[string]string{
		"Content-Type":   "application/json",
		"X-Requested-By": requestedBy,
	}
	resp, err := c.rest.Post(ctx, batchesEndpoint, payload, headers)
	if err != nil {
		return 0, apperrors.Transport("livy.submit", err)
	}

	id, err := jsonpath.Int64("livy.submit", resp.Body, resp.ContentType(), "id")
	if err != nil {
		return 0, err
	}
	return id, nil
}

// State returns the batch's current state string.
func (c *Client) State(ctx context.Context, batchID int64) (string, error) {
	resp, err := c.rest.Get(ctx, fmt.Sprintf("%s/%d", batchesEndpoint, batchID))
	if err != nil {
		return "", apperrors.Transport("livy.state", err)
	}
	return jsonpath.String("livy.state", resp.Body, resp.ContentType(), "state")
}

// AppID returns the application id the execution engine assigned to the
// batch. Fails with a response shape error while the engine has not
// populated it yet.
func (c *Client) AppID(ctx context.Context, batchID int64) (string, error) {
	c.logger.Info("Getting app id for batch", "batchId", batchID)

	resp, err := c.rest.Get(ctx, fmt.Sprintf("%s/%d", batchesEndpoint, batchID))
	if err != nil {
		return "", apperrors.Transport("livy.appid", err)
	}
	return jsonpath.String("livy.appid", resp.Body, resp.ContentType(), "appId")
}

// Close deletes the batch resource on the server.
func (c *Client) Close(ctx context.Context, batchID int64) error {
	c.logger.Info("Closing batch", "batchId", batchID)

	if _, err := c.rest.Delete(ctx, fmt.Sprintf("%s/%d", batchesEndpoint, batchID)); err != nil {
		return apperrors.Transport("livy.close", err)
	}

	c.logger.Info("Batch closed", "batchId", batchID)
	return nil
}
