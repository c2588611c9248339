package edge

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// responseWriter materialises the application's response in memory.
type responseWriter struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: make(http.Header)}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(p)
}

func (w *responseWriter) statusCode() int {
	if !w.wroteHeader {
		return http.StatusOK
	}
	return w.status
}

// disallowedHeaders are rejected by CloudFront in responses generated by a function.
var disallowedHeaders = []string{
	"connection",
	"expect",
	"keep-alive",
	"proxy-authenticate",
	"proxy-authorization",
	"proxy-connection",
	"trailer",
	"transfer-encoding",
	"upgrade",
	"via",
	"x-cache",
	"x-forwarded-proto",
	"x-real-ip",
}

var disallowedHeaderPrefixes = []string{
	"x-accel-",
	"x-amz-cf-",
	"x-edge-",
}

func isDisallowed(name string) bool {
	name = strings.ToLower(name)
	if slices.Contains(disallowedHeaders, name) {
		return true
	}
	for _, p := range disallowedHeaderPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// dropDisallowed removes the headers CloudFront would reject and returns their names.
func dropDisallowed(h http.Header) []string {
	var dropped []string
	for name := range h {
		if isDisallowed(name) {
			dropped = append(dropped, name)
			h.Del(name)
		}
	}
	return dropped
}

func encodeBody(body []byte, encoding string) string {
	if encoding == EncodingBase64 {
		return base64.StdEncoding.EncodeToString(body)
	}
	return string(body)
}

func (w *responseWriter) envelope(encoding string) *Response {
	return &Response{
		Status:       strconv.Itoa(w.statusCode()),
		Headers:      HeadersOut(w.header),
		BodyEncoding: encoding,
		Body:         encodeBody(w.body.Bytes(), encoding),
	}
}
