package app

import (
	"context"
	"net/http"

	"github.com/isometry/cloudfront-edge-app/internal/edge"
)

// RequestIDHeader carries the CloudFront request id back to the viewer.
const RequestIDHeader = "X-Request-Id"

// LoadContext is the per-request data the application receives from the edge adapter.
type LoadContext struct {
	RequestID          string
	DistributionDomain string
	EventType          string
	ClientIP           string
}

// GetLoadContext derives the LoadContext from a CloudFront event.
func GetLoadContext(event edge.Event) any {
	if len(event.Records) == 0 {
		return nil
	}
	cf := event.Records[0].CF
	return &LoadContext{
		RequestID:          cf.Config.RequestID,
		DistributionDomain: cf.Config.DistributionDomainName,
		EventType:          cf.Config.EventType,
		ClientIP:           cf.Request.ClientIP,
	}
}

func loadContext(ctx context.Context) *LoadContext {
	lc, _ := edge.LoadContext(ctx).(*LoadContext)
	return lc
}

func (a *application) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lc := loadContext(r.Context()); lc != nil && lc.RequestID != "" {
			w.Header().Set(RequestIDHeader, lc.RequestID)
		}
		next.ServeHTTP(w, r)
	})
}
