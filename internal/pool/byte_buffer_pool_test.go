package pool_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ls-go/lsf/internal/pool"
)

func TestByteBufferGrowAndWrite(t *testing.T) {
	bb := pool.NewByteBuffer(4)
	bb.MustWrite([]byte("hello"))
	require.Equal(t, []byte("hello"), bb.Bytes())

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap(), 1024+bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
}

func TestByteBufferPoolRoundTrip(t *testing.T) {
	p := pool.NewByteBufferPool(16, 128)

	bb := p.Get()
	bb.MustWrite([]byte("payload"))
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len())
}
