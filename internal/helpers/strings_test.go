package helpers_test

import (
	"testing"

	"github.com/isometry/cloudfront-edge-app/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    *string
		Expected string
	}{
		{
			Name:     "nil_string",
			Input:    nil,
			Expected: "",
		},
		{
			Name:     "empty_string",
			Input:    new(string),
			Expected: "",
		},
		{
			Name:     "value",
			Input:    helpers.Ptr("a,b"),
			Expected: "a,b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, helpers.String(tc.Input))
		})
	}
}

func TestTruncate(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Length   int
		Expected string
	}{
		{
			Name:     "short",
			Input:    "egg",
			Length:   8,
			Expected: "egg",
		},
		{
			Name:     "exact",
			Input:    "omelette",
			Length:   8,
			Expected: "omelette",
		},
		{
			Name:     "long",
			Input:    "scrambled egg",
			Length:   8,
			Expected: "scram...",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, helpers.Truncate(tc.Input, tc.Length))
		})
	}
}
