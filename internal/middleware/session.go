package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionConfig for the Redis-backed session written by the Express/connect-redis login service.
type SessionConfig struct {
	Secret string
}

const (
	SessionCookieName  = "connect.sid"
	SessionRedisPrefix = "sess:"
	sessionUserLocal   = "session_user"
)

// SessionUser is the signed-in staff member, when the session carries one.
type SessionUser struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// sessionData accepts the shapes connect-redis stores: a flat userId, a user object, or passport.user.
type sessionData struct {
	UserID string `json:"userId"`
	User   *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Passport *struct {
		User string `json:"user"`
	} `json:"passport"`
}

// Session reads the session referenced by the signed connect.sid cookie and exposes the user to handlers.
// It never writes: sessions are created and destroyed by the login service. A nil rdb disables it.
func Session(cfg SessionConfig, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.Next()
		}
		sid, ok := unsignCookie(c.Cookies(SessionCookieName), cfg.Secret)
		if !ok {
			return c.Next()
		}
		b, err := rdb.Get(c.UserContext(), SessionRedisPrefix+sid).Bytes()
		if err != nil {
			if err != redis.Nil {
				log.Warn().Err(err).Str("trace_id", GetTraceID(c)).Msg("session lookup failed")
			}
			return c.Next()
		}
		if u, ok := parseSession(b); ok {
			c.Locals(sessionUserLocal, u)
		}
		return c.Next()
	}
}

// unsignCookie verifies an Express signed cookie "s:<sid>.<base64 hmac-sha256>" and returns sid.
func unsignCookie(raw, secret string) (string, bool) {
	if raw == "" || secret == "" {
		return "", false
	}
	if v, err := url.QueryUnescape(raw); err == nil {
		raw = v
	}
	if !strings.HasPrefix(raw, "s:") {
		return "", false
	}
	raw = raw[2:]
	dot := strings.LastIndex(raw, ".")
	if dot < 1 {
		return "", false
	}
	sid, sig := raw[:dot], raw[dot+1:]
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sid))
	want := base64.RawStdEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", false
	}
	return sid, true
}

// SignSessionID produces the cookie value the login service would set for sid.
func SignSessionID(sid, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sid))
	return "s:" + sid + "." + base64.RawStdEncoding.EncodeToString(mac.Sum(nil))
}

func parseSession(b []byte) (*SessionUser, bool) {
	var d sessionData
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, false
	}
	u := &SessionUser{}
	raw := d.UserID
	if d.User != nil {
		if raw == "" {
			raw = d.User.ID
		}
		u.Email = d.User.Email
		u.Role = d.User.Role
	}
	if raw == "" && d.Passport != nil {
		raw = d.Passport.User
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	u.ID = id
	return u, true
}

// GetUser returns the session user, or nil when the request is anonymous.
func GetUser(c *fiber.Ctx) *SessionUser {
	u, _ := c.Locals(sessionUserLocal).(*SessionUser)
	return u
}

// GetUserID returns the session user's id.
func GetUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	if u := GetUser(c); u != nil {
		return u.ID, true
	}
	return uuid.Nil, false
}

// SetUser stores u on the request. Used by tests and internal callers that authenticate out of band.
func SetUser(c *fiber.Ctx, u *SessionUser) {
	c.Locals(sessionUserLocal, u)
}

