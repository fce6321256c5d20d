package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/salesdash/salesdash/internal/analytics"
	"github.com/salesdash/salesdash/internal/chart"
	"github.com/salesdash/salesdash/internal/report"
)

// rangeQuery binds the optional date-range parameters shared by every
// aggregate endpoint.
type rangeQuery struct {
	Start string `form:"start" binding:"omitempty,datetime=2006-01-02"`
	End   string `form:"end" binding:"omitempty,datetime=2006-01-02"`
}

// selectedRange resolves the request's range: missing params fall back
// to the full data bounds, out-of-bounds dates are clamped in, and a
// reversed pair is rejected before anything is computed.
func (s *Server) selectedRange(c *gin.Context) (analytics.Range, bool) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
		return analytics.Range{}, false
	}

	snap := s.store.Snapshot()
	r, err := analytics.ParseRange(q.Start, q.End, snap)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return analytics.Range{}, false
	}
	return r.Clamp(snap), true
}

// bounds returns the min/max order date the picker may select.
func (s *Server) bounds(c *gin.Context) {
	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"min_date": snap.MinDate.Format(analytics.DateLayout),
		"max_date": snap.MaxDate.Format(analytics.DateLayout),
	})
}

// dashboard returns every aggregate for the selected range.
func (s *Server) dashboard(c *gin.Context) {
	r, ok := s.selectedRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.engine.BuildView(s.store.Snapshot(), r))
}

// chartURL returns a rendered-image URL for one named chart.
func (s *Server) chartURL(c *gin.Context) {
	r, ok := s.selectedRange(c)
	if !ok {
		return
	}

	name := c.Param("name")
	view := s.engine.BuildView(s.store.Snapshot(), r)
	cfg, err := chart.FromView(name, view)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	url, err := chart.ImageURL(cfg)
	if err != nil {
		log.WithError(err).WithField("chart", name).Error("chart rendering failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "chart rendering failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": name, "url": url})
}

// export streams the current aggregates as an XLSX workbook.
func (s *Server) export(c *gin.Context) {
	r, ok := s.selectedRange(c)
	if !ok {
		return
	}

	view := s.engine.BuildView(s.store.Snapshot(), r)
	workbook, err := report.Build(view)
	if err != nil {
		log.WithError(err).Error("report build failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report build failed"})
		return
	}

	filename := fmt.Sprintf("sales_%s_%s.xlsx",
		r.Start.Format(analytics.DateLayout), r.End.Format(analytics.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		log.WithError(err).Error("report write failed")
	}
}

// dashboardPage serves the interactive page; the picker bounds are
// baked in so the browser can never submit dates outside the data.
func (s *Server) dashboardPage(c *gin.Context) {
	snap := s.store.Snapshot()
	c.HTML(http.StatusOK, "dashboard", gin.H{
		"MinDate":  snap.MinDate.Format(analytics.DateLayout),
		"MaxDate":  snap.MaxDate.Format(analytics.DateLayout),
		"Currency": s.cfg.Dashboard.Currency,
		"TopN":     s.cfg.Dashboard.TopN,
	})
}
