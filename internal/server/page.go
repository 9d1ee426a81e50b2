package server

import (
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"macrodash/internal/snapshot"
)

//go:embed templates/dashboard.html
var dashboardHTML string

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"price": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"delta": func(v float64) string { return fmt.Sprintf("%+.2f", v) },
}).Parse(dashboardHTML))

type pageData struct {
	Years      int
	MaxYears   int
	Rows       []snapshot.MetricRow
	Labels     []string
	Selected   map[string]bool
	CompareSrc string
	DetailSrc  string
	Outage     bool
}

func (h *handlers) handleDashboard(c *gin.Context) {
	years := h.years(c)
	labels := h.compareLabels(c)
	snap := h.svc.Snapshot(c.Request.Context(), years)

	selected := make(map[string]bool, len(labels))
	for _, l := range labels {
		selected[l] = true
	}
	query := url.Values{}
	query.Set("years", fmt.Sprint(years))
	query.Set("compare", strings.Join(labels, ","))

	data := pageData{
		Years:      years,
		MaxYears:   h.cfg.Lookback.MaxYears,
		Rows:       snap.Rows,
		Labels:     h.cfg.Catalog.Labels(),
		Selected:   selected,
		CompareSrc: "/charts/compare?" + query.Encode(),
		DetailSrc:  "/charts/detail?years=" + fmt.Sprint(years),
		Outage:     snap.Outage,
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := dashboardTmpl.Execute(c.Writer, data); err != nil {
		log.Printf("[ERROR] render dashboard: %v", err)
	}
}
