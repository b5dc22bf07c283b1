package codec

import (
	"bytes"
	"sync"
)

// bufferPool 编码嵌套消息时复用的缓冲区
var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves a bytes.Buffer from the pool
func GetBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// PutBuffer returns a bytes.Buffer to the pool
// The buffer is reset but capacity is preserved
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// scratch 从池中取一块至少 n 字节容量的空切片，用完调用 release
func scratch(n int) (b []byte, release func()) {
	buf := GetBuffer()
	buf.Grow(n)
	return buf.AvailableBuffer(), func() { PutBuffer(buf) }
}
