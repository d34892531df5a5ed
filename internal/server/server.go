// Package server serves the cargo form and the JSON planning API over HTTP.
package server

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/LoadDeck/internal/engine"
	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/piwi3910/LoadDeck/internal/render"
)

// Server holds the read-only state shared by all requests.
type Server struct {
	settings  model.Settings
	inventory model.Inventory
	chart     render.ChartOptions
	page      *template.Template
}

// New builds a server from the loaded config and trailer inventory.
func New(cfg model.AppConfig, inv model.Inventory) (*Server, error) {
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	chart := render.DefaultChartOptions()
	if cfg.ChartTheme != "" {
		chart.Theme = cfg.ChartTheme
	}

	return &Server{
		settings:  cfg.Settings(),
		inventory: inv,
		chart:     chart,
		page:      page,
	}, nil
}

// Router returns the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())

	r.GET("/", s.handleIndex)
	r.POST("/plan", s.handlePlanForm)
	r.GET("/health", handleHealth)

	api := r.Group("/api")
	api.POST("/plan", s.handlePlanAPI)
	api.GET("/trailers", s.handleTrailers)
	api.GET("/strategies", handleStrategies)

	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "not found")
	})
	return r
}

// resolveSettings applies a trailer preset and packer name on top of the
// configured defaults. Empty values keep the defaults.
func (s *Server) resolveSettings(trailer, strategy string) (model.Settings, error) {
	settings := s.settings
	settings.Pallets = append([]model.PalletSize(nil), s.settings.Pallets...)

	if trailer != "" {
		preset, ok := s.inventory.FindTrailer(trailer)
		if !ok {
			return settings, fmt.Errorf("unknown trailer %q", trailer)
		}
		settings.Trailer = preset.ToTrailer()
	}

	if strategy != "" {
		if _, err := engine.NewWithStrategy(settings, strategy); err != nil {
			return settings, err
		}
		settings.Strategy = strategy
	}
	return settings, nil
}
