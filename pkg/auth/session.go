package auth

import (
	"context"
	"sync"
	"time"

	"github.com/oarkflow/paseto/token"
	"github.com/oarkflow/xid/wuid"
)

// Session is the client-held proof of a successful login.
type Session struct {
	Username        string
	IsAuthenticated bool
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

// Store issues and resolves sessions. The browser carries a paseto-encrypted
// token in a single cookie; the token's sid claim points at the server-side
// record, so logout and expiry sweeps take effect immediately.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session

	secret []byte
	ttl    time.Duration

	now func() time.Time
}

func NewStore(secret []byte, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]Session),
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a session for username and returns the encrypted cookie
// value alongside the record.
func (s *Store) Create(username string) (string, Session, error) {
	sid := wuid.New().String()
	now := s.now()
	sess := Session{
		Username:        username,
		IsAuthenticated: true,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.ttl),
	}

	t := token.CreateToken(s.ttl, token.AlgEncrypt)
	_ = token.RegisterClaims(t, map[string]any{
		"sid":           sid,
		"sub":           username,
		"authenticated": true,
		"iat":           now.Unix(),
		"exp":           sess.ExpiresAt.Unix(),
	})
	tokenStr, err := token.EncryptToken(t, s.secret)
	if err != nil {
		return "", Session{}, err
	}

	s.mu.Lock()
	s.sessions[sid] = sess
	s.mu.Unlock()
	return tokenStr, sess, nil
}

// Read resolves a cookie value to its session. Absent, corrupt, foreign, or
// unknown tokens all read as nil; a bad cookie is never an error.
func (s *Store) Read(tokenStr string) *Session {
	if tokenStr == "" {
		return nil
	}
	decTok, err := token.DecryptToken(tokenStr, s.secret)
	if err != nil {
		return nil
	}
	sid, _ := decTok.Claims["sid"].(string)
	if sid == "" {
		return nil
	}
	s.mu.RLock()
	sess, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return &sess
}

// Valid reports whether sess grants access right now.
func (s *Store) Valid(sess *Session) bool {
	return sess != nil && sess.IsAuthenticated && s.now().Before(sess.ExpiresAt)
}

// Destroy removes the session a cookie value points at. Unknown and corrupt
// tokens are ignored, so the call is idempotent.
func (s *Store) Destroy(tokenStr string) {
	if tokenStr == "" {
		return
	}
	decTok, err := token.DecryptToken(tokenStr, s.secret)
	if err != nil {
		return
	}
	sid, _ := decTok.Claims["sid"].(string)
	if sid == "" {
		return
	}
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
}

// Sweep re-validates every registered session on a fixed interval and evicts
// the expired ones. It runs until ctx is cancelled so shutdown never leaks
// the ticker.
func (s *Store) Sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for sid, sess := range s.sessions {
				if !sess.IsAuthenticated || !now.Before(sess.ExpiresAt) {
					delete(s.sessions, sid)
				}
			}
			s.mu.Unlock()
		}
	}
}
