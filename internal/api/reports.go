package api

import (
	"bytes"    // Render buffers
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // Year in file name
	"strings"  // Suffix trimming
	"time"     // Clock and cache TTL

	"esg_portal/internal/report" // Dashboards, charts and PDFs
	"esg_portal/internal/store"  // Persistence

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// DashboardHandler returns the dashboard summary of the authenticated user
func DashboardHandler(st *store.Store, rdb *redis.Client, ttl time.Duration, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		years, err := loadYears(c.Request.Context(), st, rdb, ttl, sess.UserID)
		if err != nil {
			internalError(c, "Failed to fetch responses", err, logrus.Fields{"user_id": sess.UserID})
			return
		}
		c.JSON(http.StatusOK, report.BuildDashboard(years, now()))
	}
}

// ChartHandler renders one metric across the stored years as a PNG bar chart
func ChartHandler(st *store.Store, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		metric, ok := report.MetricByKey(strings.TrimSuffix(c.Param("metric"), ".png"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown metric"})
			return
		}
		years, err := loadYears(c.Request.Context(), st, rdb, ttl, sess.UserID)
		if err != nil {
			internalError(c, "Failed to fetch responses", err, logrus.Fields{"user_id": sess.UserID})
			return
		}
		var buf bytes.Buffer
		if err := report.RenderMetricChart(&buf, metric, report.Series(years, metric)); err != nil {
			if errors.Is(err, report.ErrNoData) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No data for this metric"})
				return
			}
			internalError(c, "Failed to render chart", err, logrus.Fields{"user_id": sess.UserID, "metric": metric.Key})
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}

// PDFHandler exports the stored years, or the one given by ?year=, as a PDF document
func PDFHandler(st *store.Store, rdb *redis.Client, ttl time.Duration, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		records, err := loadYears(c.Request.Context(), st, rdb, ttl, sess.UserID)
		if err != nil {
			internalError(c, "Failed to fetch responses", err, logrus.Fields{"user_id": sess.UserID})
			return
		}
		years := report.SortedYears(records)
		filename := "esg-report.pdf"
		if q := c.Query("year"); q != "" {
			year, ok := parseYear(q)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
				return
			}
			years = []int{year}
			filename = "esg-report-" + strconv.Itoa(year) + ".pdf"
		}
		var buf bytes.Buffer
		if err := report.RenderPDF(&buf, sess.User, records, years, now()); err != nil {
			if errors.Is(err, report.ErrNoData) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No responses to report"})
				return
			}
			internalError(c, "Failed to render report", err, logrus.Fields{"user_id": sess.UserID})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
