package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/breakshot/backend/internal/config"
	"github.com/breakshot/backend/internal/game"
)

// CreateSession racks a new table and returns the session token plus the
// credentials needed to attach over WebSocket.
func CreateSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			DisplayName string `json:"display_name"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_name required"})
			return
		}
		name := strings.TrimSpace(req.DisplayName)
		if name == "" || len(name) > 32 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_name must be 1-32 characters"})
			return
		}

		session, err := game.Manager.CreateSession(name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		auth, err := IssueSessionJWT(cfg, session.Token, name)
		if err != nil {
			log.Printf("[API] Failed to sign session JWT for %s: %v", session.Token, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue credentials"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session_token": session.Token,
			"auth":          auth,
			"ws_url":        fmt.Sprintf("/api/v1/session/%s/ws?auth=%s", session.Token, auth),
			"table": gin.H{
				"width":         game.TableWidth,
				"height":        game.TableHeight,
				"ball_radius":   game.BallRadius,
				"pocket_radius": game.PocketRadius,
				"min_power":     game.MinPower,
				"max_power":     game.MaxPower,
				"tick_rate":     cfg.TickRate,
			},
		})
	}
}

// GetSessionState returns the public summary of a session (live or from the
// Redis snapshot for recently finished ones).
func GetSessionState(c *gin.Context) {
	token := c.Param("token")
	state, err := game.Manager.GetSessionState(token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetLeaderboard returns the top scores.
func GetLeaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := game.Manager.Leaderboard(limit)
	if err != nil {
		log.Printf("[API] Leaderboard query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
