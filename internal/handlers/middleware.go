package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ctxUserID = "userId"

var (
	errNoAuthHeader  = errors.New("missing Authorization header")
	errBadAuthHeader = errors.New("invalid Authorization header format")
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
// Browsers cannot set headers on a WebSocket handshake, so /ws also accepts ?access_token=.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if tok := c.Query("access_token"); tok != "" && c.FullPath() == "/ws" {
			return tok, nil
		}
		return "", errNoAuthHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errBadAuthHeader
	}
	return parts[1], nil
}

func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, err := bearerToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserID, userId)
	c.Next()
}
