package settle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShare(t *testing.T) {
	assert.Equal(t, uint64(250), Share(10000, 250))
	assert.Equal(t, uint64(1000), Share(10000, 1000))
	assert.Equal(t, uint64(100), Share(2000, 500))
	assert.Equal(t, uint64(0), Share(0, 10000))
	assert.Equal(t, uint64(0), Share(10000, 0))
	assert.Equal(t, uint64(10000), Share(10000, 10000))
}

func TestShareFloors(t *testing.T) {
	// 33 * 150 / 10000 = 0.495
	assert.Equal(t, uint64(0), Share(33, 150))
	// 999 * 250 / 10000 = 24.975
	assert.Equal(t, uint64(24), Share(999, 250))
}

func TestShareDoesNotOverflow(t *testing.T) {
	assert.Equal(t, uint64(math.MaxUint64), Share(math.MaxUint64, 10000))
	assert.Equal(t, uint64(math.MaxUint64/2), Share(math.MaxUint64, 5000))
}

func TestValidBps(t *testing.T) {
	assert.True(t, ValidBps(0))
	assert.True(t, ValidBps(10000))
	assert.False(t, ValidBps(10001))
}
