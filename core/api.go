package core

import (
	"context"
	"net/url"
	"strings"
)

type (
	// Endpoint describes one REST call: method and path relative to the API base URL.
	Endpoint struct {
		Method string
		Path   string
	}

	// Credential is the bearer token of the logged-in teacher, plus who they are.
	Credential struct {
		Token  string
		UserID string
		Name   string
		Email  string
	}

	// CredentialStore returns the current credential, or an *AuthError if there is none.
	CredentialStore interface {
		Credential() (Credential, error)
	}

	// APIClient performs REST calls against the backend.
	APIClient interface {
		// Do sends body (may be nil) to ep and decodes the 2xx answer into out (may be nil).
		// Failures are returned as *AuthError, *APIError or *NetworkError.
		Do(ctx context.Context, cred Credential, ep Endpoint, body *Payload, out interface{}) error
	}

	// Logger is any service that can log events.
	Logger interface {
		Debug(msg string, args ...interface{})
		Info(msg string, args ...interface{})
		Warn(msg string, args ...interface{})
		Error(msg string, args ...interface{})
		Fatal(msg string, args ...interface{})
	}
)

func (ep Endpoint) String() string { return ep.Method + " " + ep.Path }

// Expand substitutes each ":name" segment of the path with its escaped value.
func (ep Endpoint) Expand(params map[string]string) Endpoint {
	segs := strings.Split(ep.Path, "/")
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") {
			if v, ok := params[seg[1:]]; ok {
				segs[i] = url.PathEscape(v)
			}
		}
	}
	return Endpoint{Method: ep.Method, Path: strings.Join(segs, "/")}
}

func (c Credential) IsZero() bool { return c.Token == "" }
