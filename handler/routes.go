package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the health check and the payroll API on router.
func RegisterRoutes(router *gin.Engine, payrollHandler *PayrollHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Payroll Ledger Converter",
		})
	})

	api := router.Group("/api/v1")
	{
		payroll := api.Group("/payroll")
		{
			payroll.POST("/convert", payrollHandler.Convert)
			payroll.POST("/preview", payrollHandler.Preview)
			payroll.GET("/download/:id", payrollHandler.Download)
		}
	}
}
