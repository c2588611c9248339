package app_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/isometry/cloudfront-edge-app/internal/app"
	"github.com/isometry/cloudfront-edge-app/internal/edge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	Name             string
	Method           string
	Target           string
	Form             url.Values
	ExpectedStatus   int
	ExpectedContains string
	ExpectedHeaders  map[string]string
}

func TestHandler(t *testing.T) {
	testCases := []testCase{
		{
			Name:             "index",
			Method:           http.MethodGet,
			Target:           "/",
			ExpectedStatus:   http.StatusOK,
			ExpectedContains: "Welcome to the edge!",
			ExpectedHeaders:  map[string]string{"Content-Type": "text/html; charset=utf-8"},
		},
		{
			Name:             "actions_page",
			Method:           http.MethodGet,
			Target:           "/demos/actions",
			ExpectedStatus:   http.StatusOK,
			ExpectedContains: "What is more useful when it is broken?",
		},
		{
			Name:             "correct_page",
			Method:           http.MethodGet,
			Target:           "/demos/correct",
			ExpectedStatus:   http.StatusOK,
			ExpectedContains: "You got it right!",
		},
		{
			Name:             "missing_answer",
			Method:           http.MethodPost,
			Target:           "/demos/actions",
			Form:             url.Values{},
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedContains: "Come on, at least try!",
		},
		{
			Name:             "wrong_answer",
			Method:           http.MethodPost,
			Target:           "/demos/actions",
			Form:             url.Values{"answer": {"nope"}},
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedContains: "Sorry, nope is not right.",
		},
		{
			Name:             "wrong_answer_is_escaped",
			Method:           http.MethodPost,
			Target:           "/demos/actions",
			Form:             url.Values{"answer": {"<script>"}},
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedContains: "Sorry, &lt;script&gt; is not right.",
		},
		{
			Name:            "right_answer",
			Method:          http.MethodPost,
			Target:          "/demos/actions",
			Form:            url.Values{"answer": {"egg"}},
			ExpectedStatus:  http.StatusFound,
			ExpectedHeaders: map[string]string{"Location": "/demos/correct"},
		},
		{
			Name:             "wrong_answer_data_request",
			Method:           http.MethodPost,
			Target:           "/demos/actions?_data=routes/demos/actions",
			Form:             url.Values{"answer": {"nope"}},
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedContains: `"Sorry, nope is not right."`,
			ExpectedHeaders:  map[string]string{"Content-Type": "application/json; charset=utf-8"},
		},
		{
			Name:            "right_answer_data_request",
			Method:          http.MethodPost,
			Target:          "/demos/actions?_data=routes/demos/actions",
			Form:            url.Values{"answer": {"egg"}},
			ExpectedStatus:  http.StatusNoContent,
			ExpectedHeaders: map[string]string{app.RedirectHeader: "/demos/correct"},
		},
		{
			Name:             "not_found",
			Method:           http.MethodGet,
			Target:           "/nowhere",
			ExpectedStatus:   http.StatusNotFound,
			ExpectedContains: "There is nothing at this address.",
		},
		{
			Name:           "method_not_allowed",
			Method:         http.MethodDelete,
			Target:         "/demos/actions",
			ExpectedStatus: http.StatusMethodNotAllowed,
		},
	}

	h := app.NewBuild(app.WithAnswers([]string{app.Hash("egg")})).Handler(edge.DefaultMode)
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var req *http.Request
			if tc.Form != nil {
				req = httptest.NewRequest(tc.Method, tc.Target, strings.NewReader(tc.Form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			} else {
				req = httptest.NewRequest(tc.Method, tc.Target, nil)
			}

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tc.ExpectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.ExpectedContains)
			for k, v := range tc.ExpectedHeaders {
				assert.Equal(t, v, rr.Header().Get(k))
			}
		})
	}
}

func TestHandler_MultipartForm(t *testing.T) {
	body := "--b\r\nContent-Disposition: form-data; name=\"answer\"\r\n\r\negg\r\n--b--\r\n"
	req := httptest.NewRequest(http.MethodPost, "/demos/actions", strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")

	rr := httptest.NewRecorder()
	app.NewBuild(app.WithAnswers([]string{app.Hash("egg")})).Handler(edge.DefaultMode).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusFound, rr.Code)
}

func TestHandler_DefaultAnswersRejectGuess(t *testing.T) {
	form := url.Values{"answer": {"definitely not"}}
	req := httptest.NewRequest(http.MethodPost, "/demos/actions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	app.NewBuild(app.WithAnswers(nil)).Handler(edge.DefaultMode).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHash(t *testing.T) {
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", app.Hash("abc"))
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", app.Hash(""))
}

func TestGetLoadContext(t *testing.T) {
	assert.Nil(t, app.GetLoadContext(edge.Event{}))

	lc := app.GetLoadContext(edge.Event{Records: []edge.Record{{CF: edge.CloudFront{
		Config:  edge.Config{RequestID: "r-1", DistributionDomainName: "d111.cloudfront.net", EventType: "origin-request"},
		Request: edge.Request{ClientIP: "203.0.113.7"},
	}}}})
	assert.Equal(t, &app.LoadContext{
		RequestID:          "r-1",
		DistributionDomain: "d111.cloudfront.net",
		EventType:          "origin-request",
		ClientIP:           "203.0.113.7",
	}, lc)
}

func TestEdgeIntegration(t *testing.T) {
	handle := edge.New(app.NewBuild(app.WithAnswers([]string{app.Hash("egg")})),
		edge.WithLoadContext(app.GetLoadContext),
		edge.WithBodyEncoding(edge.EncodingText))

	event := edge.Event{Records: []edge.Record{{CF: edge.CloudFront{
		Config: edge.Config{RequestID: "req-42", DistributionDomainName: "d111.cloudfront.net", EventType: "origin-request"},
		Request: edge.Request{
			Method: http.MethodPost,
			URI:    "/demos/actions",
			Headers: edge.Headers{
				"host":         {{Key: "Host", Value: "d111.cloudfront.net"}},
				"content-type": {{Key: "Content-Type", Value: "application/x-www-form-urlencoded"}},
			},
			Body: &edge.Body{Data: base64.StdEncoding.EncodeToString([]byte("answer=nope")), Encoding: edge.EncodingBase64},
		},
	}}}}

	resp, err := handle(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, "400", resp.Status)
	assert.Equal(t, []edge.Header{{Key: "x-request-id", Value: "req-42"}}, resp.Headers["x-request-id"])
	assert.Contains(t, resp.Body, "Sorry, nope is not right.")
	assert.Contains(t, resp.Body, "request req-42")

	event.Records[0].CF.Request.Body.Data = base64.StdEncoding.EncodeToString([]byte("answer=egg"))
	resp, err = handle(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, "302", resp.Status)
	assert.Equal(t, "/demos/correct", resp.Headers["location"][0].Value)
}
