package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userIDFromContext returns the authenticated user's ObjectID, set by the JWT
// middleware as a hex string.
func userIDFromContext(c echo.Context) (primitive.ObjectID, error) {
	raw, _ := c.Get("userID").(string)
	if raw == "" {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Invalid user id in token")
	}
	return id, nil
}
