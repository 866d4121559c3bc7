package kafka

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	records, err := encode("bistro.events", []Message{
		{Key: "order-1", Value: map[string]any{"type": "order.paid", "total": 1250}},
		{Key: "order-1", Value: "plain"},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "bistro.events", records[0].Topic)
	assert.Equal(t, []byte("order-1"), records[0].Key)
	assert.JSONEq(t, `{"type":"order.paid","total":1250}`, string(records[0].Value))
	assert.Equal(t, `"plain"`, string(records[1].Value))
}

func TestEncode_Unmarshalable(t *testing.T) {
	_, err := encode("bistro.events", []Message{{Key: "bad", Value: math.Inf(1)}})

	assert.ErrorContains(t, err, `encode message "bad"`)
}
