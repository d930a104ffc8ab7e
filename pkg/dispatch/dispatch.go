// Package dispatch sends operations to the Bot API and decodes their results.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"tgwire/pkg/config"
	"tgwire/pkg/decode"
	"tgwire/pkg/encode"
	"tgwire/pkg/method"
	"tgwire/pkg/schema"
	"tgwire/pkg/value"

	ta "github.com/mymmrac/telego/telegoapi"
)

const formContentType = "application/x-www-form-urlencoded"

// APIError is a response with ok=false.
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("telegram %s: %s", e.Method, e.Description)
	}
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

// Dispatcher encodes operations, sends them through a telegoapi.Caller, and
// decodes the result field against the operation's result type.
type Dispatcher struct {
	baseURL     string
	token       string
	caller      ta.Caller
	constructor ta.RequestConstructor
	enc         *encode.Encoder
	dec         *decode.Decoder
	log         *slog.Logger
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithCaller replaces the HTTP transport.
func WithCaller(caller ta.Caller) Option {
	return func(d *Dispatcher) { d.caller = caller }
}

// WithConstructor replaces the multipart body builder.
func WithConstructor(constructor ta.RequestConstructor) Option {
	return func(d *Dispatcher) { d.constructor = constructor }
}

// New validates Telegram configuration and constructs a dispatcher over table.
func New(cfg config.TelegramConfig, table *schema.Table, log *slog.Logger, opts ...Option) (*Dispatcher, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("telegram.token is required")
	}
	if table == nil {
		return nil, errors.New("schema table is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	if log == nil {
		log = slog.Default()
	}

	d := &Dispatcher{
		baseURL: baseURL,
		token:   token,
		caller: &ta.HTTPCaller{
			Client: &http.Client{Timeout: cfg.RequestTimeout()},
		},
		constructor: &ta.DefaultConstructor{},
		enc:         encode.New(table),
		dec:         decode.New(table),
		log:         log.With("component", "dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Do sends op and returns its decoded result as a value of op.ResultType().
// The operation's uploads are closed once the call returns, including when
// it fails before anything is sent.
func (d *Dispatcher) Do(ctx context.Context, op method.Operation) (any, error) {
	name := op.MethodName()
	defer func() {
		if err := op.Close(); err != nil {
			d.log.Warn("Failed to close attachments", "method", name, "error", err)
		}
	}()

	if verb := op.HTTPMethod(); verb != http.MethodPost {
		return nil, fmt.Errorf("%s: unsupported HTTP method %s", name, verb)
	}

	payload, err := op.Payload(d.enc)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}

	data, err := d.request(payload)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", name, err)
	}

	d.log.Debug("Calling method", "method", name, "shape", payload.Shape.String(), "keys", strings.Join(payload.Keys(), ","))

	resp, err := d.caller.Call(ctx, d.endpoint(name), data)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, d.redact(err))
	}
	if resp == nil {
		return nil, fmt.Errorf("call %s: empty response", name)
	}
	if !resp.Ok {
		apiErr := &APIError{Method: name}
		if resp.Error != nil {
			apiErr.Code = resp.Error.ErrorCode
			apiErr.Description = resp.Error.Description
		}
		d.log.Debug("Method failed", "method", name, "code", apiErr.Code, "description", apiErr.Description)
		return nil, apiErr
	}

	tree, err := decode.Parse(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("parse %s result: %w", name, err)
	}

	result, err := d.dec.Decode(tree, op.ResultType())
	if err != nil {
		return nil, fmt.Errorf("decode %s result: %w", name, err)
	}

	return result, nil
}

// Do is Dispatcher.Do with the result asserted to T. T must match the
// operation's result type.
func Do[T any](ctx context.Context, d *Dispatcher, op method.Operation) (T, error) {
	var zero T

	result, err := d.Do(ctx, op)
	if err != nil {
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s result is %T, not %T", op.MethodName(), result, zero)
	}

	return typed, nil
}

func (d *Dispatcher) endpoint(methodName string) string {
	return d.baseURL + "/bot" + d.token + "/" + methodName
}

func (d *Dispatcher) request(payload encode.Payload) (*ta.RequestData, error) {
	if payload.Shape == encode.ShapeMultipart {
		files := make(map[string]ta.NamedReader, len(payload.Files))
		for key, upload := range payload.Files {
			files[key] = upload
		}
		return d.constructor.MultipartRequest(payload.Fields, files)
	}

	form := url.Values{}
	for key, text := range payload.Fields {
		form.Set(key, text)
	}

	return &ta.RequestData{
		ContentType: formContentType,
		BodyRaw:     []byte(form.Encode()),
	}, nil
}

// redact strips the bot token from transport errors, which often quote the
// request URL.
func (d *Dispatcher) redact(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, d.token) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(msg, d.token, "<token>"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }

var _ ta.NamedReader = (*value.Upload)(nil)
