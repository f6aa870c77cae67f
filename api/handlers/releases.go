package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/releasewatch/mailparser/dto"
	"github.com/releasewatch/mailparser/interfaces"
	"github.com/releasewatch/mailparser/internal/logger"
)

const recipientQueryParam = "to"

// ListReleases returns the stored releases of one recipient, newest first
func ListReleases(releaseRepository interfaces.ReleaseRepository, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipient := strings.TrimSpace(c.Query(recipientQueryParam))
		if recipient == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Missing recipient",
			})
			return
		}

		records, err := releaseRepository.ListByRecipient(c.Request.Context(), recipient)
		if err != nil {
			log.Errorf("Failed to list releases for %s: %v", recipient, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to list releases",
			})
			return
		}

		c.JSON(http.StatusOK, dto.NewReleaseListResponse(records))
	}
}
