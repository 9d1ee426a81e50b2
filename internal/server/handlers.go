package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"macrodash/internal/config"
	"macrodash/internal/dashboard"
	"macrodash/internal/snapshot"
)

type handlers struct {
	cfg *config.Config
	svc *dashboard.Service
}

// years extracts the lookback window from the query, clamped to the
// configured bounds. Absent or unparseable values fall back to the default.
func (h *handlers) years(c *gin.Context) int {
	v, err := strconv.Atoi(c.DefaultQuery("years", ""))
	if err != nil {
		return h.cfg.Lookback.DefaultYears
	}
	return h.cfg.ClampYears(v)
}

// compareLabels resolves the ?compare= CSV against the catalog. The
// default mirrors the original dashboard: growth proxy plus rates proxy.
func (h *handlers) compareLabels(c *gin.Context) []string {
	raw := c.Query("compare")
	if raw == "" {
		defaults := []string{h.cfg.Catalog[0].Label}
		if h.cfg.DetailLabel != defaults[0] {
			defaults = append(defaults, h.cfg.DetailLabel)
		}
		return defaults
	}
	var labels []string
	for _, part := range strings.Split(raw, ",") {
		label := strings.TrimSpace(part)
		if _, ok := h.cfg.Catalog.Lookup(label); ok {
			labels = append(labels, label)
		}
	}
	return labels
}

func (h *handlers) handleSnapshot(c *gin.Context) {
	years := h.years(c)
	snap := h.svc.Snapshot(c.Request.Context(), years)
	if snap.Outage {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "market data unavailable for every instrument"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"taken_at": snap.TakenAt,
		"years":    years,
		"rows":     snap.Rows,
	})
}

func (h *handlers) handleSeries(c *gin.Context) {
	years := h.years(c)
	labels := h.compareLabels(c)
	if len(labels) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no known labels in compare parameter"})
		return
	}
	snap := h.svc.Snapshot(c.Request.Context(), years)
	series := make(map[string][]snapshot.Point, len(labels))
	for _, label := range labels {
		if pts, ok := snap.Pct[label]; ok {
			series[label] = pts
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"years":  years,
		"series": series,
	})
}

func (h *handlers) handleDetail(c *gin.Context) {
	years := h.years(c)
	snap := h.svc.Snapshot(c.Request.Context(), years)
	if len(snap.Detail) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"label":     h.cfg.DetailLabel,
			"available": false,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"label":     h.cfg.DetailLabel,
		"available": true,
		"points":    snap.Detail,
	})
}

func (h *handlers) handleCompareChart(c *gin.Context) {
	years := h.years(c)
	labels := h.compareLabels(c)
	snap := h.svc.Snapshot(c.Request.Context(), years)
	chart := buildCompareChart(snap, labels, years)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := chart.Render(c.Writer); err != nil {
		log.Printf("[ERROR] render compare chart: %v", err)
	}
}

func (h *handlers) handleDetailChart(c *gin.Context) {
	years := h.years(c)
	snap := h.svc.Snapshot(c.Request.Context(), years)
	chart := buildDetailChart(snap, h.cfg.DetailLabel)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := chart.Render(c.Writer); err != nil {
		log.Printf("[ERROR] render detail chart: %v", err)
	}
}
