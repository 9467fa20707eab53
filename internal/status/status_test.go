package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpError_Error(t *testing.T) {
	withCause := NewOpError("getQueueAnalyticsSummary", "shop id is required",
		map[string]any{"shop_id": ""}, ErrShopIDRequired)
	assert.Equal(t, "getQueueAnalyticsSummary: shop id is required: analytics: shop id is required", withCause.Error())

	bare := NewOpError("optimizeQueueFlow", "nothing to optimize", nil, nil)
	assert.Equal(t, "optimizeQueueFlow: nothing to optimize", bare.Error())
}

func TestOpError_Unwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := NewOpError("op", "message", nil, cause)

	assert.ErrorIs(t, err, cause)

	var opErr *OpError
	require.ErrorAs(t, error(err), &opErr)
	assert.Equal(t, "op", opErr.Op)
	assert.Equal(t, "message", opErr.Message)
}

func TestSentinelErrors(t *testing.T) {
	wrapped := NewOpError("op", "message", nil, ErrShopIDRequired)
	assert.ErrorIs(t, wrapped, ErrShopIDRequired)
	assert.NotErrorIs(t, wrapped, ErrCacheMiss)
}
