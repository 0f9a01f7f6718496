package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadHandler issues ImageKit client-upload authentication parameters.
// Uploads go straight from the browser to the CDN; the server only signs.
type UploadHandler struct {
	publicKey  string
	privateKey string
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(publicKey, privateKey string) *UploadHandler {
	return &UploadHandler{publicKey: publicKey, privateKey: privateKey}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(e *echo.Echo) {
	e.GET("/get-upload-url", h.GetUploadURL)
}

// GetUploadURL returns a one-time token, expiry and HMAC-SHA1 signature per
// the ImageKit client-upload contract.
func (h *UploadHandler) GetUploadURL(c echo.Context) error {
	if h.privateKey == "" {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate authentication parameters")
	}

	token := uuid.NewString()
	expire := time.Now().Add(30 * time.Minute).Unix()

	mac := hmac.New(sha1.New, []byte(h.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	signature := hex.EncodeToString(mac.Sum(nil))

	return c.JSON(http.StatusOK, echo.Map{
		"token":     token,
		"expire":    expire,
		"signature": signature,
		"publicKey": h.publicKey,
	})
}
