package gravityforms

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
const AdapterName = "gravity_forms"

// Client forwards leads to the signed form-field API.
type Client struct {
	cfg  config.GravityFormsConfig
	http *http.Client
	log  *logger.Logger
	now  func() time.Time
}

// NewClient creates the forwarder. Callers should only wire it when the
// integration is configured; see config.IsGravityFormsEnabled.
func NewClient(cfg config.GravityFormsConfig, log *logger.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log,
		now:  time.Now,
	}
}

// Name implements service.Forwarder.
func (c *Client) Name() string { return AdapterName }

// Forward maps the captured data to numbered form fields and posts it as a
// new form entry. An HTTP 2xx is not trusted on its own: the decoded body is
// inspected for field-level validation failure or an embedded error status.
func (c *Client) Forward(ctx context.Context, input leadsvc.ForwardInput) (interface{}, error) {
	const op = "gravityforms.Forward"

	entry := buildEntry(input.Data, c.now())
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "encode form entry", err).WithOp(op)
	}

	route := fmt.Sprintf("forms/%s/entries", c.cfg.GetGravityFormsFormID())
	endpoint := signedURL(c.cfg.GetGravityFormsBaseURL(), route, http.MethodPost,
		c.cfg.GetGravityFormsPublicKey(), c.cfg.GetGravityFormsPrivateKey(), c.now())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "build request", err).WithOp(op)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "form API unreachable", err).WithOp(op)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "read form API response", err).WithOp(op)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.External(fmt.Sprintf("form API returned %d", resp.StatusCode)).
			WithOp(op).WithDetails(string(body))
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "form API returned a non-JSON body", err).
			WithOp(op).WithDetails(string(body))
	}

	if reason := successShapedFailure(decoded); reason != "" {
		return nil, apperr.External(reason).WithOp(op).WithDetails(string(body))
	}

	return decoded, nil
}

// successShapedFailure inspects a 2xx body for an application-level failure:
// an embedded status of 400 or more, or the form engine flagging the entry
// invalid. Absence of is_valid counts as valid; only an explicit false fails.
func successShapedFailure(decoded map[string]interface{}) string {
	if status, ok := decoded["status"].(float64); ok && status >= 400 {
		return fmt.Sprintf("form API embedded status %d in a successful response", int(status))
	}
	response, ok := decoded["response"].(map[string]interface{})
	if !ok {
		return ""
	}
	if valid, present := response["is_valid"].(bool); present && !valid {
		return "form API rejected the entry as invalid"
	}
	return ""
}
