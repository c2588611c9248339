package edge

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// NewRequest builds the http.Request described by the first record of the event.
func NewRequest(ctx context.Context, event Event) (*http.Request, error) {
	if len(event.Records) == 0 {
		return nil, ErrNoRecords
	}
	cf := event.Records[0].CF.Request

	host := cf.Headers.first("host")
	if host == "" {
		return nil, ErrMissingHost
	}
	u := requestURL(host, cf.URI, cf.QueryString)

	var body io.Reader
	if cf.Body != nil && cf.Body.Data != "" {
		data, err := decodeBody(cf.Body)
		if err != nil {
			return nil, err
		}
		body = strings.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cf.Method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	if body == nil {
		req.Body = http.NoBody
	}
	req.URL = u
	req.Header = HeadersIn(cf.Headers)
	req.Host = host
	req.RemoteAddr = cf.ClientIP
	req.RequestURI = u.RequestURI()
	return req, nil
}

// requestURL assembles https://host<uri>?<querystring> from its parts. The uri is always a path, even
// when it starts with "//", and it is kept verbatim when it is not a valid escaped path.
func requestURL(host, uri, query string) *url.URL {
	if !strings.HasPrefix(uri, "/") {
		uri = "/" + uri
	}
	u := &url.URL{Scheme: "https", Host: host, Path: uri, RawQuery: query}
	if p, err := url.PathUnescape(uri); err == nil {
		u.Path = p
		u.RawPath = uri
	}
	return u
}

func decodeBody(b *Body) (string, error) {
	if b.Encoding != EncodingBase64 {
		return b.Data, nil
	}
	raw, err := base64.StdEncoding.DecodeString(b.Data)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode base64 request body")
	}
	return string(raw), nil
}
