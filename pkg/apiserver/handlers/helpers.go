package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/core"
)

const timeRFC3339Nano = time.RFC3339Nano

func parseLimit(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseOffset(value string) int {
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func formatTime(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.UTC().Format(timeRFC3339Nano)
	return &formatted
}

// respondError maps the core taxonomy onto HTTP statuses. Anything outside
// the taxonomy is logged and hidden behind a generic 500.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var coreErr *core.Error
	if !errors.As(err, &coreErr) {
		logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
		return
	}

	status := http.StatusInternalServerError
	switch coreErr.Code {
	case core.CodeValidation:
		status = http.StatusBadRequest
	case core.CodeNotFound:
		status = http.StatusNotFound
	case core.CodeConflict, core.CodeItemAlreadyReported, core.CodeReferentialIntegrity:
		status = http.StatusConflict
	case core.CodeInvalidTransition:
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{"error": coreErr.Message, "code": string(coreErr.Code)})
}
