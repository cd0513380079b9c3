package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smarttodo/internal/jobs"
)

// JobsHandler exposes the periodic jobs for on-demand and dry-run
// invocation.
type JobsHandler struct {
	sweep     *jobs.Sweep
	reminders *jobs.Reminders
	cleanup   *jobs.Cleanup
}

func NewJobsHandler(sweep *jobs.Sweep, reminders *jobs.Reminders, cleanup *jobs.Cleanup) *JobsHandler {
	return &JobsHandler{sweep: sweep, reminders: reminders, cleanup: cleanup}
}

// Run triggers the named job once and returns its report. ?dry_run=1
// reports what would change without mutating anything.
func (h *JobsHandler) Run(c *gin.Context) {
	dryRun := c.Query("dry_run") == "1" || c.Query("dry_run") == "true"
	ctx := c.Request.Context()
	now := time.Now()

	var (
		report interface{}
		err    error
	)
	switch c.Param("name") {
	case "sweep":
		report, err = h.sweep.Execute(ctx, now, dryRun)
	case "reminders":
		report, err = h.reminders.Execute(ctx, now, dryRun)
	case "cleanup":
		report, err = h.cleanup.Execute(ctx, now, dryRun)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown job"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
