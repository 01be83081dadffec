// Package web serves the portfolio page, its JSON API, the websocket
// sessions that drive the page lifecycle and the mini-games, and the
// admin dashboard.
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/soumaysikchi/portfolio/internal/clock"
	"github.com/soumaysikchi/portfolio/internal/content"
	"github.com/soumaysikchi/portfolio/internal/game"
	"github.com/soumaysikchi/portfolio/internal/lifecycle"
	"github.com/soumaysikchi/portfolio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// Store is the persistence the server needs.
type Store interface {
	game.HighScoreStore
	game.ResultRecorder
	RecordTrials(ctx context.Context, runID string, total int, endedAt time.Time) error
	RecordVisit(ctx context.Context, v store.Visit) error
	CleanupVisitors(ctx context.Context, before time.Time) (int64, error)
	Stats(ctx context.Context, now time.Time) (*store.Stats, error)
}

type AdminOptions struct {
	Username     string
	Password     string
	PasswordHash string
	TokenTTL     time.Duration
	JWTKey       string
}

type Options struct {
	Lifecycle lifecycle.Config
	Rules     game.Rules
	Clock     clock.Clock

	BasePath string
	// Static is the asset tree served under /static. It may be nil.
	Static         fs.FS
	AllowedOrigins []string

	Admin            AdminOptions
	HashSalt         string
	VisitorRetention time.Duration

	CommandRate  rate.Limit
	CommandBurst int
}

type Server struct {
	opts     Options
	store    Store
	clk      clock.Clock
	bundle   content.Bundle
	admin    *adminAuth
	upgrader websocket.Upgrader
	tracking sync.WaitGroup
}

func NewServer(st Store, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.CommandRate <= 0 {
		opts.CommandRate = 30
	}
	if opts.CommandBurst <= 0 {
		opts.CommandBurst = 10
	}

	static := overlayFS{primary: opts.Static, fallback: mustSub(assetFS, "assets")}
	resolver := content.NewResolver(joinURL(opts.BasePath, "static"), static)
	opts.Static = static

	s := &Server{
		opts:   opts,
		store:  st,
		clk:    opts.Clock,
		bundle: content.NewBundle(resolver),
		admin:  newAdminAuth(opts.Admin, opts.Clock),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "healthy") })

	if len(s.opts.AllowedOrigins) > 0 {
		r.Use(originGuard(s.opts.AllowedOrigins))
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.opts.AllowedOrigins,
			AllowCredentials: true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{
				"Content-Type",
				"Upgrade",
				"Connection",
				"Sec-WebSocket-Key",
				"Sec-WebSocket-Version",
				"Sec-WebSocket-Extensions",
				"Sec-WebSocket-Protocol",
			},
			MaxAge: 12 * time.Hour,
		}))
	}
	r.Use(s.trackVisits())

	r.StaticFS("/static", filesOnly{http.FS(s.opts.Static)})

	r.GET("/", s.index)
	api := r.Group("/api")
	api.GET("/content", s.contentBundle)
	api.GET("/highscore", s.highScore)

	ws := r.Group("/ws")
	ws.GET("/page", s.pageSocket)
	ws.GET("/game", s.gameSocket)
	ws.GET("/trials", s.trialsSocket)

	s.adminRoutes(r)
	return r
}

// Drain waits for background visit inserts to finish.
func (s *Server) Drain() {
	s.tracking.Wait()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(s.opts.AllowedOrigins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

func joinURL(base, p string) string {
	return "/" + strings.Trim(strings.Trim(base, "/")+"/"+p, "/")
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// overlayFS serves files from primary and falls back to the embedded
// assets, so the placeholder image always resolves.
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if o.primary != nil {
		if f, err := o.primary.Open(name); err == nil {
			return f, nil
		}
	}
	return o.fallback.Open(name)
}

// filesOnly refuses directories so the static tree is never listed.
type filesOnly struct {
	http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	if info, err := file.Stat(); err != nil || info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
