package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/breakshot/backend/internal/admin"
	"github.com/breakshot/backend/internal/game"
)

// AdminAuth verifies the admin phone/token headers against the stored bcrypt
// hash before allowing the request through.
func AdminAuth(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin endpoints require a database"})
			c.Abort()
			return
		}

		phone := c.GetHeader("X-Admin-Phone")
		token := c.GetHeader("X-Admin-Token")
		if phone == "" || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin credentials required"})
			c.Abort()
			return
		}

		account, err := admin.GetAdminAccount(db, phone)
		if err != nil || !admin.VerifyAdminToken(account.TokenHash, token) {
			admin.LogAdminAction(db, phone, c.ClientIP(), c.FullPath(), "auth", nil, false)
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid admin credentials"})
			c.Abort()
			return
		}

		c.Set("admin_phone", phone)
		c.Next()
	}
}

// AdminListSessions returns the state of every live session.
func AdminListSessions(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions := game.Manager.ActiveSessions()
		admin.LogAdminAction(db, c.GetString("admin_phone"), c.ClientIP(), c.FullPath(), "list_sessions",
			map[string]interface{}{"count": len(sessions)}, true)
		c.JSON(http.StatusOK, gin.H{
			"count":    len(sessions),
			"sessions": sessions,
		})
	}
}

// AdminResetLeaderboard wipes the Redis leaderboard.
func AdminResetLeaderboard(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := game.Manager.ResetLeaderboard()
		admin.LogAdminAction(db, c.GetString("admin_phone"), c.ClientIP(), c.FullPath(), "reset_leaderboard",
			nil, err == nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reset": true})
	}
}
