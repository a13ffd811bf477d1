package cu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMeter_Consume(t *testing.T) {
	meter := NewComputeMeter(5000)

	err := meter.Consume(3000)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3000), meter.Used())
	assert.Equal(t, uint64(2000), meter.Remaining())
	assert.False(t, meter.Exceeded())

	err = meter.Consume(3000)
	assert.Equal(t, ErrComputeExceeded, err)
	assert.True(t, meter.Exceeded())
	assert.Equal(t, uint64(0), meter.Remaining())
}
