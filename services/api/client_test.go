package apisvc

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/tests"
)

type captured struct {
	method, path, auth, contentType, requestID string
	body                                       []byte
}

func newTestClient(t *testing.T, status int, resBody string) (*Client, *captured) {
	var got captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := ioutil.ReadAll(r.Body)
		require.NoError(t, err)
		got = captured{
			method:      r.Method,
			path:        r.URL.Path,
			auth:        r.Header.Get("Authorization"),
			contentType: r.Header.Get("Content-Type"),
			requestID:   r.Header.Get(HeaderRequestID),
			body:        body,
		}
		w.Header().Set("Content-Type", core.MIMEApplicationJSON)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resBody))
	}))
	t.Cleanup(srv.Close)

	conf := &core.Config{API: core.APIConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}}
	return NewClient(conf, new(testutil.Logger)), &got
}

func TestClient_Do(t *testing.T) {
	t.Run("json body and decoded answer", func(t *testing.T) {
		c, got := newTestClient(t, http.StatusCreated, `{"_id": "c1", "subject": "Math"}`)

		var body core.Payload
		body.Add("subject", "Math").Add("monthlyFee", 50.0)
		var out struct {
			ID      string `json:"_id"`
			Subject string `json:"subject"`
		}
		ep := core.Endpoint{Method: http.MethodPost, Path: "/api/classes/create"}
		require.NoError(t, c.Do(context.Background(), testutil.Cred, ep, &body, &out))

		assert.Equal(t, "c1", out.ID)
		assert.Equal(t, http.MethodPost, got.method)
		assert.Equal(t, "/api/classes/create", got.path)
		assert.Equal(t, "Bearer token", got.auth)
		assert.Equal(t, core.MIMEApplicationJSON, got.contentType)
		assert.NotEmpty(t, got.requestID)
		assert.JSONEq(t, `{"subject": "Math", "monthlyFee": 50}`, string(got.body))
	})

	t.Run("multipart body", func(t *testing.T) {
		c, got := newTestClient(t, http.StatusOK, `{}`)

		var body core.Payload
		body.Add("title", "Intro").Attach("file", core.NewAttachment("intro.pdf", "application/pdf", []byte("%PDF")))
		ep := core.Endpoint{Method: http.MethodPost, Path: "/api/teacher/classes/c1/materials"}
		require.NoError(t, c.Do(context.Background(), testutil.Cred, ep, &body, nil))

		assert.Contains(t, got.contentType, core.MIMEMultipartForm+"; boundary=")
		assert.Contains(t, string(got.body), "intro.pdf")
	})

	t.Run("no token no body", func(t *testing.T) {
		c, got := newTestClient(t, http.StatusOK, `[]`)

		var out []interface{}
		ep := core.Endpoint{Method: http.MethodGet, Path: "/api/teacher/classes"}
		require.NoError(t, c.Do(context.Background(), core.Credential{}, ep, nil, &out))

		assert.Empty(t, got.auth)
		assert.Empty(t, got.body)
		assert.Empty(t, out)
	})
}

func TestClient_Do_errors(t *testing.T) {
	ep := core.Endpoint{Method: http.MethodPut, Path: "/api/classes/c1"}

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "message", status: http.StatusBadRequest, body: `{"message": "Quota exceeded"}`, wantErr: &core.APIError{StatusCode: 400, Message: "Quota exceeded"}},
		{name: "error key", status: http.StatusNotFound, body: `{"error": "not found"}`, wantErr: &core.APIError{StatusCode: 404, Message: "not found"}},
		{name: "not json", status: http.StatusConflict, body: `oops`, wantErr: &core.APIError{StatusCode: 409}},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message": "missing or malformed jwt"}`, wantErr: &core.AuthError{StatusCode: 401, Message: "missing or malformed jwt"}},
		{name: "forbidden", status: http.StatusForbidden, body: ``, wantErr: &core.AuthError{StatusCode: 403}},
		{name: "server error", status: http.StatusBadGateway, body: `{"message": "upstream down"}`, wantErr: &core.NetworkError{StatusCode: 502, Message: "upstream down"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.status, tt.body)
			err := c.Do(context.Background(), testutil.Cred, ep, nil, nil)
			assert.Equal(t, tt.wantErr, err)
		})
	}

	t.Run("bad answer", func(t *testing.T) {
		c, _ := newTestClient(t, http.StatusOK, `{"_id": 1`)
		var out map[string]interface{}
		err := c.Do(context.Background(), testutil.Cred, ep, nil, &out)
		require.Error(t, err)
		var syntaxErr *json.SyntaxError
		assert.True(t, errors.As(err, &syntaxErr))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		conf := &core.Config{API: core.APIConfig{BaseURL: srv.URL, Timeout: time.Second}}

		err := NewClient(conf, new(testutil.Logger)).Do(context.Background(), testutil.Cred, ep, nil, nil)
		var netErr *core.NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Error(t, netErr.Err)
		assert.Equal(t, "fallback", core.Reason(err, "fallback"))
	})
}
