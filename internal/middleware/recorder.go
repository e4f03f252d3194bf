package middleware

import (
	"bytes"
	"sync"

	"github.com/gin-gonic/gin"
)

// responseRecorder 將寫出的回應同時複製到有上限的 buffer
type responseRecorder struct {
	gin.ResponseWriter
	body      bytes.Buffer
	limit     int
	truncated bool
	once      sync.Once
	callbacks []func(*responseRecorder)
}

func newResponseRecorder(w gin.ResponseWriter, limit int) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, limit: limit}
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.capture(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteString(s string) (int, error) {
	r.capture([]byte(s))
	return r.ResponseWriter.WriteString(s)
}

func (r *responseRecorder) capture(b []byte) {
	remaining := r.limit - r.body.Len()
	if remaining <= 0 {
		if len(b) > 0 {
			r.truncated = true
		}
		return
	}
	if len(b) > remaining {
		b = b[:remaining]
		r.truncated = true
	}
	r.body.Write(b)
}

// OnComplete 註冊完成時的回呼
func (r *responseRecorder) OnComplete(fn func(*responseRecorder)) {
	r.callbacks = append(r.callbacks, fn)
}

// complete 只會觸發一次
func (r *responseRecorder) complete() {
	r.once.Do(func() {
		r.ResponseWriter.WriteHeaderNow()
		for _, fn := range r.callbacks {
			fn(r)
		}
	})
}

func (r *responseRecorder) Body() string {
	return r.body.String()
}

func (r *responseRecorder) Truncated() bool {
	return r.truncated
}
