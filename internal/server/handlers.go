package server

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/LoadDeck/internal/engine"
	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/piwi3910/LoadDeck/internal/render"
)

// PlanRequest is the body of POST /api/plan.
type PlanRequest struct {
	Text     string `json:"text"`
	Trailer  string `json:"trailer,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

// PlanResponse is a plan result with its derived figures and renderings.
type PlanResponse struct {
	model.PlanResult
	LoadingMeters float64            `json:"loading_meters"`
	Efficiency    float64            `json:"efficiency"`
	Warnings      []string           `json:"warnings"`
	SVG           string             `json:"svg"`
	Estimate      model.LoadEstimate `json:"estimate"`
}

type pageData struct {
	Text       string
	Trailer    string
	Strategy   string
	Trailers   []model.TrailerPreset
	Strategies []string
	Error      string
	Result     *model.PlanResult
	Report     string
	SVG        template.HTML
	Chart      string
	Warnings   []string
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, engine.Strategies())
}

func (s *Server) handleTrailers(c *gin.Context) {
	c.JSON(http.StatusOK, s.inventory.Trailers)
}

// plan runs one extraction and layout pass, logging its outcome.
func (s *Server) plan(c *gin.Context, text string, settings model.Settings) ([]model.CargoItem, model.PlanResult, error) {
	done := timeOp(reqID(c), "plan")
	items, result, err := engine.Run(text, settings)
	done(len(items), len(result.Placed), err)
	return items, result, err
}

func (s *Server) handlePlanAPI(c *gin.Context) {
	eid := errid{reqid: reqID(c)}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logError(eid.wrap(err, "decode plan request"))
		writeError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	settings, err := s.resolveSettings(req.Trailer, req.Strategy)
	if err != nil {
		logError(eid.wrap(err, "resolve settings"))
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	items, result, err := s.plan(c, req.Text, settings)
	if errors.Is(err, engine.ErrNoItems) {
		writeError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		logError(eid.wrap(err, "plan"))
		writeError(c, http.StatusInternalServerError, "planning failed")
		return
	}

	c.JSON(http.StatusOK, PlanResponse{
		PlanResult:    result,
		LoadingMeters: result.LoadingMeters(),
		Efficiency:    result.Efficiency(),
		Warnings:      render.Warnings(result.NotPlaced),
		SVG:           render.SVG(result),
		Estimate:      model.EstimateLoad(items, settings.Trailer),
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderPage(c, http.StatusOK, s.newPage())
}

func (s *Server) handlePlanForm(c *gin.Context) {
	eid := errid{reqid: reqID(c)}

	data := s.newPage()
	data.Text = c.PostForm("text")
	data.Trailer = c.PostForm("trailer")
	data.Strategy = c.PostForm("strategy")

	settings, err := s.resolveSettings(data.Trailer, data.Strategy)
	if err != nil {
		logError(eid.wrap(err, "resolve settings"))
		data.Error = err.Error()
		s.renderPage(c, http.StatusBadRequest, data)
		return
	}

	_, result, err := s.plan(c, data.Text, settings)
	if err != nil {
		if !errors.Is(err, engine.ErrNoItems) {
			logError(eid.wrap(err, "plan"))
		}
		data.Error = err.Error()
		s.renderPage(c, http.StatusOK, data)
		return
	}

	data.Result = &result
	data.Report = render.Text(result)
	data.SVG = template.HTML(render.SVG(result))
	data.Warnings = render.Warnings(result.NotPlaced)

	var chart bytes.Buffer
	if err := render.Chart(result, s.chart, &chart); err != nil {
		logError(eid.wrap(err, "render chart"))
	} else {
		data.Chart = chart.String()
	}

	s.renderPage(c, http.StatusOK, data)
}

func (s *Server) newPage() pageData {
	return pageData{
		Trailers:   s.inventory.Trailers,
		Strategies: engine.Strategies(),
		Strategy:   s.settings.Strategy,
	}
}

func (s *Server) renderPage(c *gin.Context, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		logError(errid{reqid: reqID(c)}.wrap(err, "render page"))
		writeError(c, http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
