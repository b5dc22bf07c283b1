package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPool_GetPut(t *testing.T) {
	t.Parallel()

	buf := GetBuffer()
	assert.NotNil(t, buf)
	assert.Equal(t, 0, buf.Len())

	buf.WriteString("test data")
	assert.Equal(t, 9, buf.Len())

	PutBuffer(buf)

	buf2 := GetBuffer()
	assert.NotNil(t, buf2)
	assert.Equal(t, 0, buf2.Len())
}

func TestBufferPool_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutBuffer(nil)
	})
}

func TestScratch(t *testing.T) {
	t.Parallel()

	b, release := scratch(32)
	assert.Empty(t, b)
	assert.GreaterOrEqual(t, cap(b), 32)
	release()
}

func TestBufferPool_Concurrency(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			buf := GetBuffer()
			buf.WriteString("concurrent")
			PutBuffer(buf)
		})
	}
	wg.Wait()
}
