package edge

import (
	"encoding/base64"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// EventTypeOriginRequest is the trigger the application is deployed on.
const EventTypeOriginRequest = "origin-request"

// EventFromHTTP builds the origin-request event CloudFront would send for r. The body, if any, is
// included base64 encoded.
func EventFromHTTP(r *http.Request) (Event, error) {
	headers := make(Headers, len(r.Header)+1)
	for name, values := range r.Header {
		key := strings.ToLower(name)
		for _, v := range values {
			headers[key] = append(headers[key], Header{Key: name, Value: v})
		}
	}
	if _, found := headers["host"]; !found && r.Host != "" {
		headers["host"] = []Header{{Key: "Host", Value: r.Host}}
	}

	cf := Request{
		ClientIP:    clientIP(r.RemoteAddr),
		Method:      r.Method,
		URI:         r.URL.EscapedPath(),
		QueryString: r.URL.RawQuery,
		Headers:     headers,
	}
	if r.Body != nil {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return Event{}, errors.Wrap(err, "failed to read request body")
		}
		if len(data) > 0 {
			cf.Body = &Body{
				Action:   "read-only",
				Data:     base64.StdEncoding.EncodeToString(data),
				Encoding: EncodingBase64,
			}
		}
	}

	return Event{Records: []Record{{CF: CloudFront{
		Config: Config{
			DistributionDomainName: r.Host,
			DistributionID:         "LOCAL",
			EventType:              EventTypeOriginRequest,
			RequestID:              uuid.NewString(),
		},
		Request: cf,
	}}}}, nil
}

// WriteResponse writes a generated response envelope to w.
func WriteResponse(w http.ResponseWriter, resp *Response) error {
	status, err := strconv.Atoi(resp.Status)
	if err != nil {
		return errors.Wrapf(err, "invalid response status %q", resp.Status)
	}
	var body []byte
	switch resp.BodyEncoding {
	case EncodingBase64:
		if body, err = base64.StdEncoding.DecodeString(resp.Body); err != nil {
			return errors.Wrap(err, "failed to decode response body")
		}
	default:
		body = []byte(resp.Body)
	}

	for _, values := range resp.Headers {
		for _, h := range values {
			w.Header().Add(h.Key, h.Value)
		}
	}
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
