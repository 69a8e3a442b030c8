package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"keypool-go/internal/pool"
)

func handleHealthz(p *pool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if p.Count() == 0 {
			status = "exhausted"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":      status,
			"credentials": p.Count(),
			"strategy":    p.Strategy().String(),
		})
	}
}

func handleStats(p *pool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"strategy":    p.Strategy().String(),
			"credentials": p.Stats(),
		})
	}
}

func handleStatsSummary(p *pool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines := SummaryLines(p.Stats())
		c.String(http.StatusOK, strings.Join(lines, "\n")+"\n")
	}
}
