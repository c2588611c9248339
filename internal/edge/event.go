// Package edge translates CloudFront Lambda@Edge request events into net/http requests and the
// application's responses back into the envelope CloudFront expects.
package edge

const (
	// EncodingText marks a body carried verbatim.
	EncodingText = "text"
	// EncodingBase64 marks a body carried as standard base64.
	EncodingBase64 = "base64"
)

// Event is the envelope the edge runtime hands to the function. Only the first record is consulted.
type Event struct {
	Records []Record `json:"Records"`
}

// Record wraps a single CloudFront payload.
type Record struct {
	CF CloudFront `json:"cf"`
}

// CloudFront holds the distribution metadata and the viewer or origin request.
type CloudFront struct {
	Config  Config  `json:"config"`
	Request Request `json:"request"`
}

// Config describes the distribution and the trigger that invoked the function.
type Config struct {
	DistributionDomainName string `json:"distributionDomainName,omitempty"`
	DistributionID         string `json:"distributionId,omitempty"`
	EventType              string `json:"eventType,omitempty"`
	RequestID              string `json:"requestId,omitempty"`
}

// Request is the CloudFront request descriptor.
type Request struct {
	ClientIP    string  `json:"clientIp,omitempty"`
	Method      string  `json:"method"`
	URI         string  `json:"uri"`
	QueryString string  `json:"querystring"`
	Headers     Headers `json:"headers"`
	Body        *Body   `json:"body,omitempty"`
}

// Body is the request body as forwarded when the trigger includes it.
type Body struct {
	Action         string `json:"action,omitempty"`
	Data           string `json:"data"`
	Encoding       string `json:"encoding"`
	InputTruncated bool   `json:"inputTruncated,omitempty"`
}

// Headers maps lower-cased header names to their values in CloudFront's list-of-objects shape.
type Headers map[string][]Header

// Header is a single header value along with its original-case name.
type Header struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

// Response is the generated response returned to CloudFront.
type Response struct {
	Status       string  `json:"status"`
	Headers      Headers `json:"headers,omitempty"`
	BodyEncoding string  `json:"bodyEncoding,omitempty"`
	Body         string  `json:"body,omitempty"`
}
