package smartmoving

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	leadsvc "quotewidget_backend/internal/leads/service"
	"quotewidget_backend/platform/apperr"
	"quotewidget_backend/platform/config"
	"quotewidget_backend/platform/logger"
)

// AdapterName identifies this forwarder in outcomes and logs.
const AdapterName = "smartmoving"

// Client forwards leads to the bearer-authenticated intake API.
type Client struct {
	cfg  config.SmartMovingConfig
	http *http.Client
	log  *logger.Logger
}

// NewClient creates the forwarder. Callers should only wire it when the
// integration is configured; see config.IsSmartMovingEnabled.
func NewClient(cfg config.SmartMovingConfig, log *logger.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log,
	}
}

// Name implements service.Forwarder.
func (c *Client) Name() string { return AdapterName }

// Forward flattens the captured data and posts it to the intake endpoint.
// The upstream acknowledges with a JSON object; anything else is a failure
// even under a 2xx status.
func (c *Client) Forward(ctx context.Context, input leadsvc.ForwardInput) (interface{}, error) {
	const op = "smartmoving.Forward"

	payload, err := json.Marshal(buildPayload(input.Data, input.Note))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "encode lead payload", err).WithOp(op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GetSmartMovingAPIURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "build request", err).WithOp(op)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.GetSmartMovingProviderKey())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "intake API unreachable", err).WithOp(op)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "read intake API response", err).WithOp(op)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.External(fmt.Sprintf("intake API returned %d", resp.StatusCode)).
			WithOp(op).WithDetails(string(body))
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "intake API returned a non-object body", err).
			WithOp(op).WithDetails(string(body))
	}

	return decoded, nil
}
