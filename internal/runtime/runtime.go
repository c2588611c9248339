// Package runtime exposes the edge handler to the Lambda runtime and to the local HTTP emulator.
package runtime

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/isometry/cloudfront-edge-app/internal/edge"
	"github.com/isometry/cloudfront-edge-app/internal/helpers"
)

// Option is a functional option used to configure a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger instance for the runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// Runtime wraps an edge handler with logging.
type Runtime struct {
	handle edge.HandlerFunc
	logger *slog.Logger
}

// NewRuntime creates a new runtime instance
func NewRuntime(handle edge.HandlerFunc, opts ...Option) *Runtime {
	_inst := &Runtime{handle: handle}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// HandleEvent is the Lambda handler for the runtime
func (r *Runtime) HandleEvent(ctx context.Context, event edge.Event) (*edge.Response, error) {
	logger := r.logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With(slog.String("awsRequestId", lc.AwsRequestID))
	}
	if len(event.Records) > 0 {
		logger = logger.With(slog.String("cfRequestId", event.Records[0].CF.Config.RequestID))
	}
	logger.Info("received CloudFront event")

	resp, err := r.handle(ctx, event)
	if err != nil {
		logger.Error("failed to handle event", slog.Any("error", err))
		return nil, err
	}
	logger.Info("handled event", slog.String("status", resp.Status))
	return resp, nil
}

// ServeHTTP emulates CloudFront: the request is turned into an origin-request event, run through the
// handler and the generated response written back.
func (r *Runtime) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("method", req.Method), slog.Any("path", req.URL.Path))

	event, err := edge.EventFromHTTP(req)
	if err != nil {
		r.logger.Error("failed to read request", slog.Any("error", err))
		http.Error(w, "failed to read request", http.StatusBadRequest)
		return
	}

	resp, err := r.HandleEvent(req.Context(), event)
	if err != nil {
		// CloudFront answers failed invocations with a 502
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if err = edge.WriteResponse(w, resp); err != nil {
		r.logger.Error("failed to write response", slog.Any("error", err))
	}
}
