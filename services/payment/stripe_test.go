package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(60000), toMinorUnits(600.0))
	assert.Equal(t, int64(66666), toMinorUnits(666.66))
	assert.Equal(t, int64(10), toMinorUnits(0.1))
	assert.Equal(t, int64(0), toMinorUnits(0))
}

func TestRefundIdempotencyKeyStablePerIntent(t *testing.T) {
	assert.Equal(t, refundIdempotencyKey("pi_abc"), refundIdempotencyKey("pi_abc"))
	assert.NotEqual(t, refundIdempotencyKey("pi_abc"), refundIdempotencyKey("pi_def"))
}
