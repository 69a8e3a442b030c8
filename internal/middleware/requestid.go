package middleware

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderRequestID carries the correlation ID in and out.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is where handlers and log helpers find the ID.
	ContextKeyRequestID = "request_id"

	// Inbound IDs longer than this are replaced, not echoed.
	maxInboundIDLen = 128
)

// RequestID propagates the caller's correlation ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" || len(rid) > maxInboundIDLen {
			rid = newRequestID()
		}
		c.Set(ContextKeyRequestID, rid)
		c.Writer.Header().Set(HeaderRequestID, rid)
		c.Next()
	}
}

func newRequestID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
