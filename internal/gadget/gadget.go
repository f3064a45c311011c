// Package gadget finds the companion devices reachable from the current conversation.
package gadget

//go:generate mockgen -destination=mock/gadget.go -package=mock bitbucket.org/sotavant/dolly-skill/internal/gadget EndpointLister

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/dolly-skill/internal/logger"
	"bitbucket.org/sotavant/dolly-skill/internal/models"
)

const endpointsPath = "/v1/endpoints"

// DefaultTimeout bounds a single enumeration call.
const DefaultTimeout = 5 * time.Second

// EndpointLister enumerates the endpoints connected to the device the user is talking to.
type EndpointLister interface {
	ListEndpoints(ctx context.Context, apiEndpoint, accessToken string) ([]models.Endpoint, error)
}

// Client calls the platform's endpoint enumeration API.
type Client struct {
	http *resty.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// ListEndpoints fetches the endpoint list. The call is made once; any
// transport failure or non-2xx status is returned as an error.
func (c *Client) ListEndpoints(ctx context.Context, apiEndpoint, accessToken string) ([]models.Endpoint, error) {
	if apiEndpoint == "" {
		return nil, fmt.Errorf("list endpoints: empty api endpoint")
	}

	var result models.Endpoints
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&result).
		Get(strings.TrimRight(apiEndpoint, "/") + endpointsPath)
	if err != nil {
		return nil, fmt.Errorf("list endpoints: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list endpoints: unexpected status %d", resp.StatusCode())
	}

	logger.Log.Debug("endpoints listed", zap.Int("count", len(result.Endpoints)))

	return result.Endpoints, nil
}
