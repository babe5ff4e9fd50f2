package ordmap

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKey(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		growth   Growth
		capacity int
	}{
		{"empty", "", FixedGrowth(10), 10},
		{"fits initial buffer", "123456789", FixedGrowth(10), 10},
		{"fixed growth once", "1234567890", FixedGrowth(10), 20},
		{"fixed growth twice", strings.Repeat("x", 25), FixedGrowth(10), 30},
		{"doubling once", "1234567890", DoublingGrowth(), 20},
		{"doubling twice", strings.Repeat("x", 25), DoublingGrowth(), 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := Unlimited()
			key, size, err := BuildKey(tt.source, alloc, tt.growth)
			require.NoError(t, err)
			assert.Equal(t, tt.source, key)
			assert.Equal(t, tt.capacity, size)
			assert.Equal(t, tt.capacity, alloc.InUse())
		})
	}
}

func TestKeyBufferKeepsTerminatorSlot(t *testing.T) {
	b, err := NewKeyBuffer(nil, FixedGrowth(10))
	require.NoError(t, err)
	assert.Equal(t, InitialKeyCapacity, b.Cap())

	for i := 0; i < 57; i++ {
		require.NoError(t, b.AppendByte(byte('a'+i%26)))
		assert.Less(t, b.Len(), b.Cap())
		assert.Zero(t, b.buf[b.Len()])
	}
	assert.Equal(t, 57, b.Len())
	assert.Equal(t, 60, b.Cap())
}

func TestBuildKeyCopiesSource(t *testing.T) {
	src := []byte("mutable")
	key, _, err := BuildKey(string(src), nil, nil)
	require.NoError(t, err)
	src[0] = 'M'
	assert.Equal(t, "mutable", key)
}

func TestBuildKeyAllocationFailure(t *testing.T) {
	t.Run("initial buffer", func(t *testing.T) {
		budget := NewBudget(InitialKeyCapacity - 1)
		_, _, err := BuildKey("a", budget, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrAllocation))
		assert.Zero(t, budget.InUse())
	})

	t.Run("growth releases partial buffer", func(t *testing.T) {
		budget := NewBudget(15)
		key, size, err := BuildKey("twelve bytes", budget, FixedGrowth(10))
		require.Error(t, err)

		var allocErr *AllocationError
		require.True(t, errors.As(err, &allocErr))
		assert.Equal(t, "grow key buffer", allocErr.Op)
		assert.Equal(t, 10, allocErr.Requested)
		assert.Equal(t, 15, allocErr.Limit)
		assert.Empty(t, key)
		assert.Zero(t, size)
		assert.Zero(t, budget.InUse())
	})
}

func TestKeyBufferRelease(t *testing.T) {
	budget := NewBudget(100)
	b, err := NewKeyBuffer(budget, DoublingGrowth())
	require.NoError(t, err)
	for _, c := range []byte("hello world") {
		require.NoError(t, b.AppendByte(c))
	}
	assert.Equal(t, "hello world", b.String())
	assert.Equal(t, 20, budget.InUse())

	b.Release()
	assert.Zero(t, budget.InUse())
	b.Release()
	assert.Zero(t, budget.InUse())

	assert.ErrorIs(t, b.AppendByte('x'), ErrBufferReleased)
	assert.Zero(t, budget.InUse())
}

func TestKeyBufferAppendAfterReleaseAtCapacity(t *testing.T) {
	b, err := NewKeyBuffer(nil, FixedGrowth(10))
	require.NoError(t, err)
	for _, c := range []byte("123456789") {
		require.NoError(t, b.AppendByte(c))
	}
	b.Release()
	assert.ErrorIs(t, b.AppendByte('0'), ErrBufferReleased)
	assert.Empty(t, b.String())
}

func TestFixedGrowthMinimum(t *testing.T) {
	assert.Equal(t, 11, FixedGrowth(0)(10))
	assert.Equal(t, InitialKeyCapacity, DoublingGrowth()(0))
}
