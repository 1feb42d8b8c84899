//go:build unit || e2e

// Package testutil turns request DTOs into JSON maps that tests can bend into invalid payloads.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request payload before it is sent.
type Mutation func(m map[string]any)

// DtoMap round-trips v through JSON, so the map carries the wire field names, and applies muts in order.
func DtoMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	m := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, mut := range muts {
		if mut != nil {
			mut(m)
		}
	}
	return m
}

// Field overwrites key. A nil value is sent as JSON null, which is not the same as Omit.
func Field(key string, value any) Mutation {
	return func(m map[string]any) { m[key] = value }
}

// Omit removes key from the payload entirely.
func Omit(key string) Mutation {
	return func(m map[string]any) { delete(m, key) }
}
