// Package api exposes a finished analysis over a local, read-only HTTP
// viewer: the hypothesis group table, the frame-wise mapping, the
// best-hypothesis selection and the rendered HTML report. The analysis itself
// never runs here; handlers only read an immutable result loaded at startup.
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/DurdagiLab/dynophore-analysis/internal/report"
	"github.com/DurdagiLab/dynophore-analysis/model"
)

// API holds dependencies for the results viewer handlers.
type API struct {
	result    *model.AnalysisResult
	outputDir string
}

// NewAPI creates a new API handler structure over one finished analysis.
func NewAPI(result *model.AnalysisResult, outputDir string) *API {
	return &API{result: result, outputDir: outputDir}
}

// SetupRoutes defines all the routes of the results viewer.
func SetupRoutes(router *gin.Engine, result *model.AnalysisResult, outputDir string) {
	apiHandler := NewAPI(result, outputDir)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Rendered report and charts
	router.GET("/report", apiHandler.GetReportHandler)

	// Analysis results
	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/run", apiHandler.GetRunHandler)               // Run audit record (ID, timings, drop counts)
		apiRoutes.GET("/hypotheses", apiHandler.GetHypothesesHandler) // Full hypothesis group table
		apiRoutes.GET("/frames", apiHandler.GetFramesHandler)         // Frame-wise hypothesis mapping
		apiRoutes.GET("/selection", apiHandler.GetSelectionHandler)   // Best-hypothesis selection
	}
}

// HealthCheckHandler reports viewer liveness and the served run ID.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"run_id": api.result.Run.RunID,
	})
}

// GetRunHandler returns the run audit record.
func (api *API) GetRunHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.result.Run)
}

// GetHypothesesHandler returns the full hypothesis group table, count
// descending.
func (api *API) GetHypothesesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total":      len(api.result.Groups),
		"hypotheses": api.result.Groups,
	})
}

// GetFramesHandler returns the frame-wise hypothesis mapping.
func (api *API) GetFramesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total":  len(api.result.Frames),
		"frames": api.result.Frames,
	})
}

// GetSelectionHandler returns the ordered best-hypothesis selection.
func (api *API) GetSelectionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total":     len(api.result.Selection),
		"selection": api.result.Selection,
	})
}

// GetReportHandler serves the rendered HTML report from the output
// directory.
func (api *API) GetReportHandler(c *gin.Context) {
	path := filepath.Join(api.outputDir, report.ReportFileName)
	if _, err := os.Stat(path); err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeReportNotFound,
			"No rendered report found at "+path)
		return
	}
	c.File(path)
}
