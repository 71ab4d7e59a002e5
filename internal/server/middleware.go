package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meridiancrm/meridian/internal/actorctx"
)

// RequireAuth gates a route on a valid auth cookie. Each authenticated
// request slides the session: a fresh token with a new expiry replaces the
// cookie on the way out.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := s.issuer.Parse(raw)
		if err != nil {
			s.sessions.Clear(c)
			AbortWithError(c, err)
			return
		}

		ctx := actorctx.WithActor(c.Request.Context(), actorctx.Actor{
			UserID:   claims.Subject,
			Username: claims.Username,
		})
		c.Request = c.Request.WithContext(ctx)

		refreshed, expiresAt, err := s.issuer.Issue(claims.Subject, claims.Username, time.Now())
		if err == nil {
			s.sessions.Set(c, refreshed, expiresAt)
		}

		c.Next()
	}
}
