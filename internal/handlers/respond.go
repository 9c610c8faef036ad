// internal/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/00jmdc-SysEng/Attendance/internal/ledger"
)

// ledgerError maps the core's error kinds onto HTTP statuses: validation
// failures are 400, per-day conflicts 409, missing open sessions 404, and
// anything else is an infrastructure failure the caller only sees as 500.
func ledgerError(c *gin.Context, err error) {
	var (
		validation *ledger.ValidationError
		conflict   *ledger.ConflictError
		notFound   *ledger.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Msg})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Msg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
