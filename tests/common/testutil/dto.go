//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// DtoMap renders a request DTO as the raw JSON map a client would send,
// applying the given mutations. Used to probe binding validation with
// requests a typed DTO could not express.
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err, "Failed to encode DTO to JSON")

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m), "Failed to decode DTO JSON into map")

	for _, f := range muts {
		f(m)
	}
	return m
}
