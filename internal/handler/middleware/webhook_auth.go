package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"order-engine/internal/handler/httperr"
	"order-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errInvalidSignature = errs.New("invalid webhook signature")

// WebhookSignature verifies the gateway's HMAC-SHA256 over the raw body. The
// body is restored for the handler's binding.
func WebhookSignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader("X-Webhook-Signature")
		if signature == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errInvalidSignature, "Missing webhook signature", nil)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read request body", nil)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(expected), []byte(signature)) {
			httperr.AbortWithError(c, http.StatusUnauthorized, errInvalidSignature, "Invalid webhook signature", nil)
			return
		}

		c.Next()
	}
}
