package handler

import (
	"bytes"
	"sync"
)

// responseBufferSize covers typical response bodies (snapshots, results)
// without growing.
const responseBufferSize = 512

// bufferPool recycles the bytes.Buffer used by respondJSON.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer resets the buffer before returning it to the pool.
func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
