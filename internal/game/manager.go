package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/breakshot/backend/internal/config"
	"github.com/breakshot/backend/internal/models"
)

const (
	redisSessionPrefix = "session:"
	redisLeaderboard   = "leaderboard"
	snapshotTTL        = time.Hour
)

// SessionManager owns all live sessions and their runners. Redis holds live
// snapshots and the leaderboard ZSET; Postgres holds the durable record of
// finished sessions. Both are optional: with neither configured the
// simulation still runs, it just forgets everything on restart.
type SessionManager struct {
	sessions map[string]*Runner // keyed by session token
	rdb      *redis.Client
	db       *sqlx.DB
	config   *config.Config
	mu       sync.RWMutex
}

// Manager is the global session manager instance.
var Manager *SessionManager

// InitializeManager initializes the global session manager and starts the
// expiry sweeper.
func InitializeManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	Manager = NewSessionManager(db, rdb, cfg)
	go Manager.StartExpiryChecker()
}

// NewSessionManager creates a session manager.
func NewSessionManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Runner),
		rdb:      rdb,
		db:       db,
		config:   cfg,
	}
}

// generateToken generates a secure random token.
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// CreateSession racks a new table, starts its tick loop, and registers it.
func (sm *SessionManager) CreateSession(displayName string) (*Session, error) {
	if displayName == "" {
		return nil, errors.New("display name required")
	}

	token := generateToken(16)
	session := NewSession(token, displayName)

	tickRate := DefaultTickRate
	broadcastEvery := 1
	if sm.config != nil {
		tickRate = sm.config.TickRate
		broadcastEvery = sm.config.BroadcastEvery
	}
	runner := StartRunner(session, tickRate, broadcastEvery)

	sm.mu.Lock()
	sm.sessions[token] = runner
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s for %q", token, displayName)
	sm.saveSnapshot(session)

	if sm.db != nil {
		_, err := sm.db.Exec(`INSERT INTO game_sessions (session_token, display_name, status, created_at) VALUES ($1, $2, $3, NOW())`,
			token, displayName, string(StatusActive))
		if err != nil {
			log.Printf("[DB] Failed to insert game_session %s: %v", token, err)
		}
	}

	return session, nil
}

// GetRunner retrieves a live session's runner by token.
func (sm *SessionManager) GetRunner(token string) (*Runner, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	runner, ok := sm.sessions[token]
	if !ok {
		return nil, errors.New("session not found")
	}
	return runner, nil
}

// GetSessionState returns the public state of a session: from memory if
// live, otherwise from the Redis snapshot.
func (sm *SessionManager) GetSessionState(token string) (*PublicState, error) {
	sm.mu.RLock()
	runner, ok := sm.sessions[token]
	sm.mu.RUnlock()
	if ok {
		st := runner.Session().State()
		return &st, nil
	}

	if sm.rdb == nil {
		return nil, errors.New("session not found")
	}
	data, err := sm.rdb.Get(context.Background(), redisSessionPrefix+token).Result()
	if err != nil {
		return nil, errors.New("session not found")
	}
	var st PublicState
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// ActiveSessions returns the public state of every live session.
func (sm *SessionManager) ActiveSessions() []PublicState {
	sm.mu.RLock()
	runners := make([]*Runner, 0, len(sm.sessions))
	for _, r := range sm.sessions {
		runners = append(runners, r)
	}
	sm.mu.RUnlock()

	states := make([]PublicState, 0, len(runners))
	for _, r := range runners {
		states = append(states, r.Session().State())
	}
	return states
}

// ActiveSessionCount returns the number of live sessions.
func (sm *SessionManager) ActiveSessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// SessionFinished is called by a runner whose session left the ACTIVE state.
// It deregisters the session and persists the final record.
func (sm *SessionManager) SessionFinished(s *Session) {
	sm.mu.Lock()
	delete(sm.sessions, s.Token)
	sm.mu.Unlock()

	sm.saveSnapshot(s)
	sm.persistFinal(s)
}

// saveSnapshot writes the session's public state to Redis with a TTL.
func (sm *SessionManager) saveSnapshot(s *Session) {
	if sm.rdb == nil {
		return
	}

	st := s.State()
	data, err := json.Marshal(st)
	if err != nil {
		log.Printf("[REDIS] Failed to marshal snapshot for %s: %v", s.Token, err)
		return
	}
	if err := sm.rdb.SetEx(context.Background(), redisSessionPrefix+s.Token, data, snapshotTTL).Err(); err != nil {
		log.Printf("[REDIS] Failed to save snapshot for %s: %v", s.Token, err)
	}
}

// persistFinal records a finished session in Postgres and pushes the score
// onto the Redis leaderboard. Best-effort: failures are logged, never fatal.
func (sm *SessionManager) persistFinal(s *Session) {
	st := s.State()
	log.Printf("[SESSION] %s finished: status=%s score=%d pocketed=%d scratches=%d racks=%d",
		st.Token, st.Status, st.Score, st.BallsPocketed, st.Scratches, st.RacksCleared)

	if sm.db != nil {
		_, err := sm.db.Exec(`UPDATE game_sessions
			SET status=$1, score=$2, balls_pocketed=$3, scratches=$4, racks_cleared=$5, completed_at=NOW()
			WHERE session_token=$6`,
			string(st.Status), st.Score, st.BallsPocketed, st.Scratches, st.RacksCleared, st.Token)
		if err != nil {
			log.Printf("[DB] Failed to update game_session %s: %v", st.Token, err)
		}

		_, err = sm.db.Exec(`INSERT INTO players (display_name, games_played, best_score, total_balls_pocketed, last_played)
			VALUES ($1, 1, $2, $3, NOW())
			ON CONFLICT (display_name) DO UPDATE SET
				games_played = players.games_played + 1,
				best_score = GREATEST(players.best_score, EXCLUDED.best_score),
				total_balls_pocketed = players.total_balls_pocketed + EXCLUDED.total_balls_pocketed,
				last_played = NOW()`,
			st.DisplayName, st.Score, st.BallsPocketed)
		if err != nil {
			log.Printf("[DB] Failed to upsert player %q: %v", st.DisplayName, err)
		}
	}

	// Completed sessions count for the leaderboard; expired ones do not.
	if sm.rdb != nil && st.Status == StatusCompleted {
		err := sm.rdb.ZAdd(context.Background(), redisLeaderboard, redis.Z{
			Score:  float64(st.Score),
			Member: st.DisplayName,
		}).Err()
		if err != nil {
			log.Printf("[REDIS] Failed to update leaderboard for %q: %v", st.DisplayName, err)
		}
	}
}

// Leaderboard returns the top scores, preferring the Redis ZSET and falling
// back to Postgres when Redis is unavailable.
func (sm *SessionManager) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if sm.config != nil && limit > sm.config.LeaderboardSize {
		limit = sm.config.LeaderboardSize
	}

	if sm.rdb != nil {
		zs, err := sm.rdb.ZRevRangeWithScores(context.Background(), redisLeaderboard, 0, int64(limit-1)).Result()
		if err == nil {
			entries := make([]models.LeaderboardEntry, 0, len(zs))
			for i, z := range zs {
				name, _ := z.Member.(string)
				entries = append(entries, models.LeaderboardEntry{
					Rank:        i + 1,
					DisplayName: name,
					Score:       int(z.Score),
				})
			}
			return entries, nil
		}
		log.Printf("[REDIS] Leaderboard read failed, falling back to DB: %v", err)
	}

	if sm.db == nil {
		return []models.LeaderboardEntry{}, nil
	}

	var rows []struct {
		DisplayName string `db:"display_name"`
		BestScore   int    `db:"best_score"`
	}
	err := sm.db.Select(&rows, `SELECT display_name, best_score FROM players ORDER BY best_score DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		entries = append(entries, models.LeaderboardEntry{Rank: i + 1, DisplayName: r.DisplayName, Score: r.BestScore})
	}
	return entries, nil
}

// ResetLeaderboard wipes the Redis leaderboard ZSET.
func (sm *SessionManager) ResetLeaderboard() error {
	if sm.rdb == nil {
		return errors.New("redis not configured")
	}
	return sm.rdb.Del(context.Background(), redisLeaderboard).Err()
}

// StartExpiryChecker runs a background job that expires abandoned sessions.
func (sm *SessionManager) StartExpiryChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		sm.checkExpiredSessions()
	}
}

// checkExpiredSessions stops sessions with no player input for longer than
// the configured expiry window. The runner observes the status change on its
// next tick and deregisters through SessionFinished.
func (sm *SessionManager) checkExpiredSessions() {
	expiry := 10 * time.Minute
	if sm.config != nil {
		expiry = time.Duration(sm.config.SessionExpiryMinutes) * time.Minute
	}

	sm.mu.RLock()
	var idle []*Runner
	cutoff := time.Now().Add(-expiry)
	for _, r := range sm.sessions {
		if r.Session().LastActivity().Before(cutoff) {
			idle = append(idle, r)
		}
	}
	sm.mu.RUnlock()

	for _, r := range idle {
		log.Printf("[EXPIRY] Session %s idle past %s, expiring", r.Session().Token, expiry)
		r.Session().Expire()
	}
}
