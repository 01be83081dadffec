package web

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/soumaysikchi/portfolio/internal/clock"
)

const adminCookie = "admin_token"

// Login attempts per client: one a second, bursts of five.
const (
	loginEvery     = time.Second
	loginBurst     = 5
	maxLoginClient = 4096
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid admin token")
	errLoginDisabled      = errors.New("admin login is not configured")
)

// adminAuth checks the single admin account and issues signed session
// tokens for it.
type adminAuth struct {
	username string
	password string
	hash     string
	key      []byte
	ttl      time.Duration
	clk      clock.Clock
	attempts *loginLimiter
}

func newAdminAuth(opts AdminOptions, clk clock.Clock) *adminAuth {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if opts.Password == "" && opts.PasswordHash == "" {
		log.Warn().Msg("admin login disabled: set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}
	return &adminAuth{
		username: opts.Username,
		password: opts.Password,
		hash:     opts.PasswordHash,
		key:      []byte(opts.JWTKey),
		ttl:      ttl,
		clk:      clk,
		attempts: &loginLimiter{clients: make(map[string]*rate.Limiter)},
	}
}

// loginLimiter keeps one token bucket per client so a noisy client cannot
// lock everyone else out of the login form.
type loginLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

func (l *loginLimiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= maxLoginClient {
			l.prune()
		}
		lim = rate.NewLimiter(rate.Every(loginEvery), loginBurst)
		l.clients[client] = lim
	}
	return lim.Allow()
}

// prune forgets clients whose bucket has refilled. If every tracked client
// is still throttled the table is reset.
func (l *loginLimiter) prune() {
	for k, lim := range l.clients {
		if lim.Tokens() >= loginBurst {
			delete(l.clients, k)
		}
	}
	if len(l.clients) >= maxLoginClient {
		clear(l.clients)
	}
}

// verify prefers the argon2id hash when both a hash and a plain password
// are configured.
func (a *adminAuth) verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	switch {
	case a.hash != "":
		match, err := argon2id.ComparePasswordAndHash(password, a.hash)
		if err != nil {
			return fmt.Errorf("compare admin password: %w", err)
		}
		if !match || !userOK {
			return ErrInvalidCredentials
		}
	case a.password != "":
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
		if !passOK || !userOK {
			return ErrInvalidCredentials
		}
	default:
		return errLoginDisabled
	}
	return nil
}

func (a *adminAuth) issue() (string, error) {
	now := a.clk.Now()
	claims := jwt.RegisteredClaims{
		Subject:   a.username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

func (a *adminAuth) check(token string) error {
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return a.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(a.username),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.clk.Now),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return nil
}

func (s *Server) requireAdmin(c *gin.Context) {
	token, err := c.Cookie(adminCookie)
	if err == nil {
		err = s.admin.check(token)
	}
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) adminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})
	r.POST("/admin/login", s.adminLogin)
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.requireAdmin)
	admin.GET("/dashboard", s.adminDashboard)
	admin.GET("/api/stats", s.adminStats)
	admin.GET("/export/stats", s.adminExport)
	admin.POST("/privacy/cleanup", s.adminCleanup)
}

func (s *Server) adminLogin(c *gin.Context) {
	client := s.hashIP(c.ClientIP())
	if !s.admin.attempts.allow(client) {
		c.HTML(http.StatusTooManyRequests, "admin-login.html", gin.H{"error": "Too many attempts, try again shortly"})
		return
	}

	err := s.admin.verify(c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		log.Warn().Err(err).Str("client", client).Msg("admin login failed")
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := s.admin.issue()
	if err != nil {
		log.Error().Err(err).Msg("issue admin token")
		c.HTML(http.StatusInternalServerError, "admin-login.html", gin.H{"error": "Login failed"})
		return
	}
	c.SetCookie(adminCookie, token, int(s.admin.ttl/time.Second), "/admin", "", c.Request.TLS != nil, true)
	log.Info().Str("client", client).Msg("admin login")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) adminDashboard(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context(), s.clk.Now())
	if err != nil {
		log.Error().Err(err).Msg("load admin stats")
		c.HTML(http.StatusInternalServerError, "admin-dashboard.html", gin.H{"error": "Failed to load statistics"})
		return
	}
	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
}

func (s *Server) adminStats(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context(), s.clk.Now())
	if err != nil {
		log.Error().Err(err).Msg("load admin stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats-unavailable"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) adminExport(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context(), s.clk.Now())
	if err != nil {
		log.Error().Err(err).Msg("export admin stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats-unavailable"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	c.JSON(http.StatusOK, stats)
}

func (s *Server) adminCleanup(c *gin.Context) {
	removed, err := s.CleanupVisitors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup-failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
