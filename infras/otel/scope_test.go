package otel

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestKeyValue(t *testing.T) {
	id := uuid.MustParse("7d3c1a3e-7a2b-4d55-9d1f-3f1f0b6a8c11")

	tests := []struct {
		value any
		want  attribute.Value
	}{
		{value: "table-4", want: attribute.StringValue("table-4")},
		{value: true, want: attribute.BoolValue(true)},
		{value: 12, want: attribute.IntValue(12)},
		{value: int64(1500), want: attribute.Int64Value(1500)},
		{value: 2.5, want: attribute.Float64Value(2.5)},
		{value: []string{"a", "b"}, want: attribute.StringSliceValue([]string{"a", "b"})},
		{value: id, want: attribute.StringValue(id.String())},
		{value: 90 * time.Minute, want: attribute.StringValue("1h30m0s")},
		{value: uint8(3), want: attribute.StringValue("3")},
	}

	for _, tt := range tests {
		kv := keyValue("k", tt.value)

		assert.Equal(t, attribute.Key("k"), kv.Key)
		assert.Equal(t, tt.want, kv.Value)
	}
}

func TestNoop(t *testing.T) {
	ctx, scope := Noop().NewScope(t.Context(), "repository", "repository.table.Get")

	assert.NotNil(t, ctx)
	assert.NotPanics(t, func() {
		scope.SetAttributes(map[string]any{"rows": 3})
		scope.TraceIfError(nil)
		scope.TraceError(errors.New("boom"))
		scope.End()
	})
}
