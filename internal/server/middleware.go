package server

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "req_id"
)

// requestID reuses the caller's X-Request-ID or assigns a fresh one, and
// echoes it back on the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()[:8]
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func reqID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// accessLog logs one key=value line per request.
func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
			reqID(c), c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), c.Writer.Size(),
			time.Since(start).Milliseconds())
	}
}

// timeOp starts timing a named operation; the returned func logs it with the
// outcome of the run.
func timeOp(id, name string) func(items, placed int, err error) {
	start := time.Now()
	return func(items, placed int, err error) {
		dur := time.Since(start).Milliseconds()
		if err != nil {
			log.Printf("req_id=%s op=%s items=%d dur=%dms err=%v", id, name, items, dur, err)
			return
		}
		log.Printf("req_id=%s op=%s items=%d placed=%d dur=%dms", id, name, items, placed, dur)
	}
}
