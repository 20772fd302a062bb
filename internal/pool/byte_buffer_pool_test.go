package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferBasics(t *testing.T) {
	bb := NewByteBuffer(64)
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 64)

	n, err := bb.Write([]byte("sector"))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, []byte("sector"), bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 64, "Reset must retain capacity")
}

func TestByteBufferExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.Write([]byte{1, 2, 3})

	bb.ExtendOrGrow(4096)
	require.Equal(t, 3+4096, bb.Len())
	require.Equal(t, []byte{1, 2, 3}, bb.B[:3], "existing content must survive growth")
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.Write(bytes.Repeat([]byte{0xAA}, 10))

	bb.Grow(ChunkBufferDefaultSize * 2)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), ChunkBufferDefaultSize*2)
	require.Equal(t, bytes.Repeat([]byte{0xAA}, 10), bb.Bytes())
}

func TestByteBufferWriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.Write([]byte("chunk payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(13), n)
	require.Equal(t, "chunk payload", out.String())
}

func TestByteBufferPoolReuse(t *testing.T) {
	p := NewByteBufferPool(32, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.Write([]byte("stale"))
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len(), "pooled buffers must come back reset")
	p.Put(bb2)
}

func TestByteBufferPoolDiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	bb.ExtendOrGrow(4096)
	p.Put(bb) // over threshold, should be dropped rather than pooled

	bb2 := p.Get()
	require.LessOrEqual(t, bb2.Cap(), 4096)
	p.Put(bb2)
}

func TestByteBufferPoolPutNil(t *testing.T) {
	p := NewByteBufferPool(32, 64)
	require.NotPanics(t, func() { p.Put(nil) })
}

func TestDefaultPools(t *testing.T) {
	cb := GetChunkBuffer()
	require.NotNil(t, cb)
	require.GreaterOrEqual(t, cb.Cap(), ChunkBufferDefaultSize)
	PutChunkBuffer(cb)

	tb := GetTableBuffer()
	require.NotNil(t, tb)
	require.GreaterOrEqual(t, tb.Cap(), TableBufferDefaultSize)
	PutTableBuffer(tb)
}
