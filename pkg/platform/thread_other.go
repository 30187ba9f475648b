//go:build !linux

package platform

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentThreadID returns the id of the calling goroutine. Without a portable
// OS thread id, the goroutine that owns the locked thread stands in for it.
func currentThreadID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(s, ' '); i > 0 {
		if id, err := strconv.ParseInt(string(s[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}
