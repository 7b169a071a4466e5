package kprng

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSameKeySameStream(t *testing.T) {
	key := []byte("a 32 byte long deterministic key")

	a, err := New(key)
	require.NoError(t, err)
	b, err := New(key)
	require.NoError(t, err)

	bufA := make([]byte, 256)
	bufB := make([]byte, 256)
	_, err = a.Read(bufA)
	require.NoError(t, err)
	_, err = b.Read(bufB)
	require.NoError(t, err)
	require.True(t, bytes.Equal(bufA, bufB))
}

func TestResetRewinds(t *testing.T) {
	key := []byte("another deterministic key value")
	p, err := New(key)
	require.NoError(t, err)

	first := make([]byte, 64)
	_, err = p.Read(first)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		p.Read(make([]byte, 32))
	}
	p.Reset()

	second := make([]byte, 64)
	_, err = p.Read(second)
	require.NoError(t, err)
	require.True(t, bytes.Equal(first, second))
}

func TestDifferentKeysDiffer(t *testing.T) {
	a, err := New([]byte("key one is thirty two bytes long"))
	require.NoError(t, err)
	b, err := New([]byte("key two is also thirty two bytes"))
	require.NoError(t, err)

	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	a.Read(bufA)
	b.Read(bufB)
	require.False(t, bytes.Equal(bufA, bufB))
}

func TestEmptyKeyRejected(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestFastHash64Deterministic(t *testing.T) {
	require.Equal(t, FastHash64([]byte("x")), FastHash64([]byte("x")))
	require.NotEqual(t, FastHash64([]byte("x")), FastHash64([]byte("y")))
}
