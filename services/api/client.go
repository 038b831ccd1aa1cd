package apisvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/educonnect/core"
)

const HeaderRequestID = "X-Request-ID"

// Client calls the EduConnect REST backend.
type Client struct {
	baseURL string
	http    *rest.Client
	logger  core.Logger
}

var _ core.APIClient = (*Client)(nil)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.API.BaseURL, "/"),
		http:    &rest.Client{HTTPClient: &http.Client{Timeout: conf.API.Timeout}},
		logger:  logger,
	}
}

// errorBody is what the backend sends along a non-2xx status.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Do sends one request and decodes a 2xx JSON answer into out (if not nil).
// Failures are a *core.NetworkError, *core.AuthError or *core.APIError.
func (c *Client) Do(ctx context.Context, cred core.Credential, ep core.Endpoint, body *core.Payload, out interface{}) error {
	reqID := uuid.New().String()
	req := rest.Request{
		Method:  rest.Method(ep.Method),
		BaseURL: c.baseURL + ep.Path,
		Headers: map[string]string{
			"Accept":        core.MIMEApplicationJSON,
			HeaderRequestID: reqID,
		},
	}
	if cred.Token != "" {
		req.Headers["Authorization"] = "Bearer " + cred.Token
	}
	if body != nil && !body.IsEmpty() {
		data, contentType, err := body.Encode()
		if err != nil {
			return errors.Wrapf(err, "encoding %s body", ep)
		}
		req.Body = data
		req.Headers["Content-Type"] = contentType
	}

	res, err := c.http.SendWithContext(ctx, req)
	if err != nil {
		c.logger.Debug(fmt.Sprintf("%s [%s]: %v", ep, reqID, err))
		return &core.NetworkError{Err: err}
	}
	c.logger.Debug(fmt.Sprintf("%s [%s]: %d", ep, reqID, res.StatusCode))

	if err = statusError(res); err != nil {
		return err
	}
	if out != nil && strings.TrimSpace(res.Body) != "" {
		if err = json.Unmarshal([]byte(res.Body), out); err != nil {
			return errors.Wrapf(err, "decoding %s response", ep)
		}
	}
	return nil
}

func statusError(res *rest.Response) error {
	code := res.StatusCode
	if code < http.StatusBadRequest {
		return nil
	}

	var eb errorBody
	_ = json.Unmarshal([]byte(res.Body), &eb)
	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &core.AuthError{StatusCode: code, Message: msg}
	case code >= http.StatusInternalServerError:
		return &core.NetworkError{StatusCode: code, Message: msg}
	default:
		return &core.APIError{StatusCode: code, Message: msg}
	}
}
