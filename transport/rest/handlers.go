package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-variants/internal/entity"
	"github.com/rocketscienceinc/tictactoe-variants/internal/tictactoe"
)

type statsResponse struct {
	*entity.Stats
	WinRate int `json:"win_rate"`
}

func (that *Server) listModes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"modes": tictactoe.Variants()})
}

func (that *Server) getMode(c *gin.Context) {
	variant := entity.Variant(c.Param("variant"))
	if !tictactoe.IsValidVariant(variant) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown mode"})
		return
	}

	c.JSON(http.StatusOK, tictactoe.Lookup(variant))
}

func (that *Server) getStats(c *gin.Context) {
	log := that.logger.With("method", "getStats")

	stats, err := that.stats.GetStats(c.Request.Context(), c.Param("playerID"))
	if err != nil {
		log.Error("failed to get stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, statsResponse{Stats: stats, WinRate: stats.WinRate()})
}

func (that *Server) resetStats(c *gin.Context) {
	log := that.logger.With("method", "resetStats")

	if err := that.stats.ResetStats(c.Request.Context(), c.Param("playerID")); err != nil {
		log.Error("failed to reset stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset stats"})
		return
	}

	c.Status(http.StatusNoContent)
}
