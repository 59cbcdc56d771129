package middleware

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"

	"testinsight-backend/utilities"
)

// maxDumpedBody caps how much of a request body is written to the log.
const maxDumpedBody = 4096

// RequestDumpMiddleware logs each request at DEBUG. The Authorization header
// is redacted.
func RequestDumpMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		headers := c.Request.Header.Clone()
		if headers.Get("Authorization") != "" {
			headers.Set("Authorization", "[redacted]")
		}
		body := bodyBytes
		if len(body) > maxDumpedBody {
			body = body[:maxDumpedBody]
		}

		utilities.Debug(
			"[Request]\n"+
				"\tMethod: %s\n"+
				"\tURL: %s\n"+
				"\tHeaders: %v\n"+
				"\tParams: %v\n"+
				"\tBody: %s",
			c.Request.Method,
			c.Request.URL.String(),
			headers,
			c.Params,
			string(body),
		)

		c.Next()
	}
}
