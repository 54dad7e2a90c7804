package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/breakshot/backend/internal/config"
	"github.com/breakshot/backend/internal/game"
	"github.com/breakshot/backend/internal/ws"
)

// HandleSessionWebSocket authenticates the upgrade request and hands the
// connection to the WebSocket layer. The JWT issued at session creation must
// name this exact session.
func HandleSessionWebSocket(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		auth := c.Query("auth")
		if token == "" || auth == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token and auth required"})
			return
		}

		claims, err := ParseSessionJWT(cfg, auth)
		if err != nil || claims.SessionToken != token {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid credentials"})
			return
		}

		runner, err := game.Manager.GetRunner(token)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}

		ws.ServeSession(c, runner)
	}
}
