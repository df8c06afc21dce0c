// Package api exposes the schedule board over HTTP: the machine lanes,
// items and viewport the timeline renderer reads, and the edit intents it
// sends back.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/javiermolinar/wisesched/internal/board"
	"github.com/javiermolinar/wisesched/internal/dateutil"
	"github.com/javiermolinar/wisesched/internal/metrics"
	"github.com/javiermolinar/wisesched/internal/schedule"
	"github.com/javiermolinar/wisesched/internal/scheduler"
	"github.com/javiermolinar/wisesched/internal/summary"
)

// Version is reported by the health endpoint.
var Version = "dev"

// Options configures a Server. Zero values select the defaults.
type Options struct {
	Logger             *slog.Logger
	Location           *time.Location        // zone for zone-less request times
	Gatherer           prometheus.Gatherer   // served on /metrics
	DefaultGranularity scheduler.Granularity // used when ?granularity is absent
	Now                func() time.Time
}

// Server serves one board.
type Server struct {
	board       *board.Board
	log         *slog.Logger
	loc         *time.Location
	gatherer    prometheus.Gatherer
	granularity scheduler.Granularity
	now         func() time.Time
}

// New creates a server for b.
func New(b *board.Board, opts Options) *Server {
	s := &Server{
		board:       b,
		log:         opts.Logger,
		loc:         opts.Location,
		gatherer:    opts.Gatherer,
		granularity: opts.DefaultGranularity,
		now:         opts.Now,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.granularity == "" {
		s.granularity = scheduler.Day
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	r.GET("/metrics", gin.WrapH(metrics.Handler(s.gatherer)))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", s.health)
		v1.GET("/groups", s.listGroups)
		v1.GET("/statuses", s.listStatuses)
		v1.GET("/window", s.window)
		v1.GET("/summary", s.summarize)
		v1.POST("/refresh", s.refresh)

		items := v1.Group("/items")
		items.GET("", s.listItems)
		items.POST("", s.createItem)
		items.GET("/:id", s.getItem)
		items.PUT("/:id", s.updateItem)
		items.DELETE("/:id", s.deleteItem)
		items.POST("/:id/status", s.switchStatus)
	}

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// GET /api/v1/health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "wisesched",
		"version": Version,
	})
}

// GET /api/v1/groups
func (s *Server) listGroups(c *gin.Context) {
	groups := s.board.Groups()
	c.JSON(http.StatusOK, gin.H{
		"groups": groups,
		"count":  len(groups),
	})
}

// GET /api/v1/statuses
func (s *Server) listStatuses(c *gin.Context) {
	type statusView struct {
		Status  schedule.Status   `json:"status"`
		Label   string            `json:"label"`
		Targets []schedule.Status `json:"targets"`
	}

	out := make([]statusView, 0, len(schedule.Statuses))
	for _, st := range schedule.Statuses {
		out = append(out, statusView{
			Status:  st,
			Label:   st.Label(),
			Targets: schedule.AllowedTargets(st),
		})
	}
	c.JSON(http.StatusOK, gin.H{"statuses": out})
}

// GET /api/v1/window?granularity=day&ref=2024-08-16T15:00
func (s *Server) window(c *gin.Context) {
	g := s.granularity
	if v := c.Query("granularity"); v != "" {
		g = scheduler.ParseGranularity(v)
	}

	ref, err := dateutil.ParseReference(c.Query("ref"), s.now().In(s.loc))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ref", "details": err.Error()})
		return
	}

	w := s.board.Window(g, ref)
	c.JSON(http.StatusOK, gin.H{
		"granularity": g,
		"start":       w.Start,
		"end":         w.End,
	})
}

// GET /api/v1/summary?granularity=week&ref=2024-08-16
func (s *Server) summarize(c *gin.Context) {
	g := s.granularity
	if v := c.Query("granularity"); v != "" {
		g = scheduler.ParseGranularity(v)
	}

	now := s.now().In(s.loc)
	ref, err := dateutil.ParseReference(c.Query("ref"), now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ref", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary.Build(s.board, g, ref, now))
}

// POST /api/v1/refresh
func (s *Server) refresh(c *gin.Context) {
	if err := s.board.Refresh(c.Request.Context(), s.now()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(s.board.Items(s.now()))})
}

// GET /api/v1/items?group=A1
func (s *Server) listItems(c *gin.Context) {
	items := s.board.Items(s.now())
	if group := c.Query("group"); group != "" {
		filtered := items[:0]
		for _, it := range items {
			if it.Group == group {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"items": viewsOf(items),
		"count": len(items),
	})
}

// GET /api/v1/items/:id
func (s *Server) getItem(c *gin.Context) {
	it, err := s.board.Get(c.Param("id"), s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(it))
}

// POST /api/v1/items
func (s *Server) createItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	patch, err := req.patch(s.loc)
	if err != nil {
		writeError(c, err)
		return
	}

	it, err := s.board.Save(c.Request.Context(), patch.Apply(schedule.Item{}), s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(it))
}

// PUT /api/v1/items/:id
func (s *Server) updateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	patch, err := req.patch(s.loc)
	if err != nil {
		writeError(c, err)
		return
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	it, err := s.board.Update(c.Request.Context(), c.Param("id"), patch, s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(it))
}

// DELETE /api/v1/items/:id
func (s *Server) deleteItem(c *gin.Context) {
	if err := s.board.Delete(c.Request.Context(), c.Param("id"), s.now()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/v1/items/:id/status
func (s *Server) switchStatus(c *gin.Context) {
	var req switchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	to, ok := schedule.ParseStatus(req.Status)
	if !ok {
		writeError(c, schedule.ValidationErrors{{Field: "status", Message: "unknown status " + req.Status}})
		return
	}

	it, err := s.board.SwitchStatus(c.Request.Context(), c.Param("id"), to, req.Reason, s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(it))
}

// patch converts the request into a board patch, collecting every
// unparseable field.
func (r itemRequest) patch(loc *time.Location) (board.Patch, error) {
	var (
		p    board.Patch
		errs schedule.ValidationErrors
	)

	p.Group = r.Group
	if r.TimeLineStatus != nil {
		st, ok := schedule.ParseStatus(*r.TimeLineStatus)
		if !ok {
			errs = append(errs, schedule.ValidationError{Field: "status", Message: "unknown status " + *r.TimeLineStatus})
		} else {
			p.Status = &st
		}
	}

	parse := func(field string, v *string) *time.Time {
		if v == nil {
			return nil
		}
		t, ok := dateutil.ParseInstant(*v, loc)
		if !ok {
			errs = append(errs, schedule.ValidationError{Field: field, Message: "invalid time " + *v})
			return nil
		}
		return &t
	}
	p.Start = parse("start", r.Start)
	p.End = parse("end", r.End)

	if r.StatusInfo != nil {
		p.Reason = &r.StatusInfo.Reason
		p.Product = &r.StatusInfo.Product
	}
	p.Order = r.OrderInfo.domain()

	if len(errs) > 0 {
		return board.Patch{}, errs
	}
	return p, nil
}
