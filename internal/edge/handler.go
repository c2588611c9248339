package edge

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"sync"

	"github.com/isometry/cloudfront-edge-app/internal/helpers"
	"github.com/pkg/errors"
)

const (
	// ModeEnv is consulted when no mode is configured explicitly.
	ModeEnv = "APP_MODE"
	// DefaultMode is used when neither an option nor ModeEnv provide one.
	DefaultMode = "production"
	// DefaultMaxBodySize is the CloudFront limit for bodies generated by an origin-request function.
	DefaultMaxBodySize = 1 << 20
)

// Build is the server build the adapter serves. It produces the application handler for a mode.
type Build interface {
	Handler(mode string) http.Handler
}

// BuildFunc adapts an ordinary function to the Build interface.
type BuildFunc func(mode string) http.Handler

// Handler calls f(mode).
func (f BuildFunc) Handler(mode string) http.Handler {
	return f(mode)
}

// GetLoadContextFunc derives the load context handed to the application from the event.
type GetLoadContextFunc func(Event) any

// HandlerFunc is the signature the Lambda runtime invokes for each CloudFront event.
type HandlerFunc func(ctx context.Context, event Event) (*Response, error)

// Option configures the adapter built by New.
type Option func(*adapter)

type adapter struct {
	handler        http.Handler
	getLoadContext GetLoadContextFunc
	mode           string
	bodyEncoding   string
	maxBodySize    int
	logger         *slog.Logger
}

type loadContextKey struct{}

// LoadContext returns the load context attached to a request context, or nil.
func LoadContext(ctx context.Context) any {
	return ctx.Value(loadContextKey{})
}

// Install performs the process-wide initialisation the adapter relies on. It is safe to call any
// number of times from any goroutine.
var Install = sync.OnceFunc(func() {
	for ext, typ := range map[string]string{
		".js":          "text/javascript; charset=utf-8",
		".mjs":         "text/javascript; charset=utf-8",
		".map":         "application/json",
		".webmanifest": "application/manifest+json",
		".woff2":       "font/woff2",
		".ico":         "image/x-icon",
	} {
		_ = mime.AddExtensionType(ext, typ)
	}
})

// New returns the handler the edge runtime invokes. The application handler is obtained from build
// once, for the configured mode.
func New(build Build, opts ...Option) HandlerFunc {
	Install()

	_inst := &adapter{
		bodyEncoding: EncodingBase64,
		maxBodySize:  DefaultMaxBodySize,
		logger:       helpers.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.mode == "" {
		_inst.mode = os.Getenv(ModeEnv)
	}
	if _inst.mode == "" {
		_inst.mode = DefaultMode
	}
	_inst.handler = build.Handler(_inst.mode)

	return _inst.handle
}

func (a *adapter) handle(ctx context.Context, event Event) (*Response, error) {
	req, err := NewRequest(ctx, event)
	if err != nil {
		return nil, errors.Wrap(err, "failed to translate edge request")
	}
	if a.getLoadContext != nil {
		req = req.WithContext(context.WithValue(req.Context(), loadContextKey{}, a.getLoadContext(event)))
	}
	logger := a.logger.With(slog.String("method", req.Method), slog.String("uri", req.URL.RequestURI()))
	if body := event.Records[0].CF.Request.Body; body != nil && body.InputTruncated {
		logger.Warn("request body was truncated by CloudFront")
	}

	logger.Debug("handling request...")
	rw := newResponseWriter()
	a.handler.ServeHTTP(rw, req)

	if dropped := dropDisallowed(rw.header); len(dropped) > 0 {
		helpers.OnceAMinute.Do(func() {
			logger.Warn("dropped response headers rejected by CloudFront", slog.Any("headers", dropped))
		})
	}

	resp := rw.envelope(a.bodyEncoding)
	if len(resp.Body) > a.maxBodySize {
		return nil, errors.Wrapf(ErrBodyTooLarge, "%d bytes encoded, limit %d", len(resp.Body), a.maxBodySize)
	}
	logger.Debug("handled request", slog.String("status", resp.Status))
	return resp, nil
}
