package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/soumaysikchi/portfolio/internal/store"
)

// untracked paths never count as visits.
var untracked = []string{"/static/", "/admin", "/ws/", "/health", "/favicon"}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := zerolog.DebugLevel
		switch {
		case status >= http.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case status >= http.StatusBadRequest:
			level = zerolog.WarnLevel
		case !strings.HasPrefix(c.Request.URL.Path, "/static/"):
			level = zerolog.InfoLevel
		}
		log.WithLevel(level).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// originGuard rejects cross-origin browser requests from unknown origins.
// Requests without an Origin header pass.
func originGuard(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || slices.Contains(allowed, origin) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden-origin"})
	}
}

// trackVisits records page views with a salted hash of the client address.
// Do Not Track is honoured and the insert happens off the request path.
func (s *Server) trackVisits() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" || isUntracked(path) {
			c.Next()
			return
		}

		v := store.Visit{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.Request.UserAgent(),
			Path:      path,
			VisitedAt: s.clk.Now(),
		}
		s.tracking.Add(1)
		go func() {
			defer s.tracking.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordVisit(ctx, v); err != nil {
				log.Warn().Err(err).Msg("record visit")
			}
		}()
		c.Next()
	}
}

func isUntracked(path string) bool {
	for _, prefix := range untracked {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// hashIP is stable per address for a given salt and truncated to 16 hex
// characters. The raw address is never stored.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.opts.HashSalt))
	return hex.EncodeToString(sum[:])[:16]
}
