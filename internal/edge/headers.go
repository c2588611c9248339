package edge

import (
	"net/http"
	"slices"
	"strings"
)

// HeadersIn converts CloudFront headers into an http.Header. Every value is appended under its name
// in the order given; empty values are skipped.
func HeadersIn(in Headers) http.Header {
	out := make(http.Header, len(in))
	for name, values := range in {
		for _, h := range values {
			if h.Value == "" {
				continue
			}
			out.Add(name, h.Value)
		}
	}
	return out
}

// HeadersOut converts an http.Header into CloudFront headers. Names are lower-cased and visited in
// sorted order; the values of each name keep their order.
func HeadersOut(in http.Header) Headers {
	out := make(Headers, len(in))
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		key := strings.ToLower(name)
		for _, v := range in[name] {
			out[key] = append(out[key], Header{Key: key, Value: v})
		}
	}
	return out
}

// first returns the first non-empty value stored under name.
func (h Headers) first(name string) string {
	for _, v := range h[name] {
		if v.Value != "" {
			return v.Value
		}
	}
	return ""
}
