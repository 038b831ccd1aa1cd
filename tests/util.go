package testutil

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/notify"
)

// Cred is a credential accepted by the fake client.
var Cred = core.Credential{Token: "token", UserID: "t1", Name: "Ada Teacher", Email: "ada@test.cd"}

// NewValidator returns a core.Validator initialised with the core rules and the given domain rules.
func NewValidator(inits ...func(*validator.Validate, ut.Translator)) *core.Validator {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	for _, init := range inits {
		init(validate, translator)
	}
	return core.NewValidator(validate, translator)
}

// Call is one request recorded by Client.
type Call struct {
	Cred     core.Credential
	Endpoint core.Endpoint
	Body     *core.Payload
}

// Client is a fake core.APIClient. Response is JSON decoded into out on success.
type Client struct {
	Response []byte
	Err      error
	Block    chan struct{} // when set, Do waits for it to be closed

	mu    sync.Mutex
	calls []Call
}

var _ core.APIClient = (*Client)(nil)

func (c *Client) Do(ctx context.Context, cred core.Credential, ep core.Endpoint, body *core.Payload, out interface{}) error {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Cred: cred, Endpoint: ep, Body: body})
	c.mu.Unlock()

	if c.Block != nil {
		select {
		case <-c.Block:
		case <-ctx.Done():
			return &core.NetworkError{Err: ctx.Err()}
		}
	}
	if c.Err != nil {
		return c.Err
	}
	if out != nil && len(c.Response) > 0 {
		return json.Unmarshal(c.Response, out)
	}
	return nil
}

func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Notifier records notifications.
type Notifier struct {
	mu    sync.Mutex
	shown []notify.Notification
}

func (n *Notifier) Show(msg string, kind notify.Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown = append(n.shown, notify.Notification{Message: msg, Kind: kind})
}

func (n *Notifier) Shown() []notify.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Notification(nil), n.shown...)
}

// Navigator records navigations.
type Navigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *Navigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *Navigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// Logger records log levels and messages.
type Logger struct {
	mu      sync.Mutex
	Entries []string // "LEVEL msg"
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, level+" "+msg)
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.log("DEBUG", msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.log("INFO", msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.log("WARN", msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.log("ERROR", msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.log("FATAL", msg) }

func (l *Logger) Levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	levels := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		levels = append(levels, strings.SplitN(e, " ", 2)[0])
	}
	return levels
}

// PayloadMap flattens the fields of a payload, for assertions.
func PayloadMap(p *core.Payload) map[string]interface{} {
	if p == nil {
		return nil
	}
	m := make(map[string]interface{}, len(p.Fields))
	for _, f := range p.Fields {
		m[f.Name] = f.Value
	}
	return m
}

func JSONBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}
