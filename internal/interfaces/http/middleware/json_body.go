// internal/interfaces/http/middleware/json_body.go
package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// JSONBodyKey is the gin context key holding the decoded request body
const JSONBodyKey = "json_body"

// JSONBody decodes JSON request bodies of at most limit bytes. Only objects
// and arrays are accepted at the top level. The decoded value is stored under
// JSONBodyKey and the raw body stays readable for later handlers. Requests
// that are not JSON, or carry no body, pass through.
func JSONBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 || !isJSON(c.ContentType()) {
			c.Next()
			return
		}

		raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
					"error": "Request body too large",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Failed to read request body",
			})
			return
		}

		if len(raw) == 0 {
			c.Next()
			return
		}

		var body any
		if !isObjectOrArray(raw) || json.Unmarshal(raw, &body) != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid JSON body",
			})
			return
		}

		c.Set(JSONBodyKey, body)
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		c.Next()
	}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func isObjectOrArray(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
