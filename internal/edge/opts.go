package edge

import "log/slog"

// WithLoadContext sets the function producing the application's load context from the event.
func WithLoadContext(fn GetLoadContextFunc) Option {
	return func(a *adapter) {
		a.getLoadContext = fn
	}
}

// WithMode sets the mode handed to the build. An empty mode keeps the environment default.
func WithMode(mode string) Option {
	return func(a *adapter) {
		a.mode = mode
	}
}

// WithBodyEncoding selects the encoding applied to every response body: EncodingBase64 or EncodingText.
// Unknown values are ignored.
func WithBodyEncoding(encoding string) Option {
	return func(a *adapter) {
		switch encoding {
		case EncodingBase64, EncodingText:
			a.bodyEncoding = encoding
		}
	}
}

// WithMaxBodySize sets the largest encoded response body the adapter returns.
func WithMaxBodySize(n int) Option {
	return func(a *adapter) {
		if n > 0 {
			a.maxBodySize = n
		}
	}
}

// WithLogger sets the logger instance for the adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(a *adapter) {
		a.logger = logger
	}
}
