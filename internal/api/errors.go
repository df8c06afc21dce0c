package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/wisesched/internal/board"
	"github.com/javiermolinar/wisesched/internal/metrics"
	"github.com/javiermolinar/wisesched/internal/schedule"
)

// writeError maps board errors to HTTP responses:
//
//	validation  422 with per-field messages
//	transition  409 with the allowed targets
//	overlap     409 with the conflicting item
//	locked      403
//	not found   404
//	persistence 502
func writeError(c *gin.Context, err error) {
	switch board.Kind(err) {
	case metrics.ResultValidation:
		var verrs schedule.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, v := range verrs {
				if _, seen := fields[v.Field]; !seen {
					fields[v.Field] = v.Message
				}
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "fields": fields})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

	case metrics.ResultTransition:
		var terr *schedule.StatusTransitionError
		errors.As(err, &terr)
		c.JSON(http.StatusConflict, gin.H{
			"error":   err.Error(),
			"from":    terr.From,
			"to":      terr.To,
			"allowed": schedule.AllowedTargets(terr.From),
		})

	case metrics.ResultOverlap:
		var oerr *schedule.OverlapError
		errors.As(err, &oerr)
		c.JSON(http.StatusConflict, gin.H{
			"error":    err.Error(),
			"conflict": oerr.Conflict,
			"group":    oerr.Group,
		})

	case metrics.ResultLocked:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case metrics.ResultNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case metrics.ResultPersistence:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
