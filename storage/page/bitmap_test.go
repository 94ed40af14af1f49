package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmapSetResetIsSet(t *testing.T) {
	bm := make([]byte, BitmapBytes(20))
	assert.False(t, BitmapIsSet(bm, 5))

	BitmapSet(bm, 5)
	assert.True(t, BitmapIsSet(bm, 5))
	assert.False(t, BitmapIsSet(bm, 4))
	assert.False(t, BitmapIsSet(bm, 6))

	BitmapReset(bm, 5)
	assert.False(t, BitmapIsSet(bm, 5))
}

func TestBitmapIsLSBFirst(t *testing.T) {
	bm := make([]byte, 1)
	BitmapSet(bm, 0)
	assert.Equal(t, byte(0x01), bm[0])

	bm = make([]byte, 1)
	BitmapSet(bm, 7)
	assert.Equal(t, byte(0x80), bm[0])
}

func TestBitmapFirstBit(t *testing.T) {
	n := 10
	bm := make([]byte, BitmapBytes(n))

	assert.Equal(t, 0, BitmapFirstBit(false, bm, n))
	assert.Equal(t, n, BitmapFirstBit(true, bm, n))

	BitmapSet(bm, 0)
	BitmapSet(bm, 1)
	BitmapSet(bm, 3)
	assert.Equal(t, 2, BitmapFirstBit(false, bm, n))
	assert.Equal(t, 0, BitmapFirstBit(true, bm, n))
}

func TestBitmapNextBit(t *testing.T) {
	n := 10
	bm := make([]byte, BitmapBytes(n))
	BitmapSet(bm, 0)
	BitmapSet(bm, 3)
	BitmapSet(bm, 4)

	assert.Equal(t, 3, BitmapNextBit(true, bm, n, 0))
	assert.Equal(t, 4, BitmapNextBit(true, bm, n, 3))
	assert.Equal(t, n, BitmapNextBit(true, bm, n, 4))
}
