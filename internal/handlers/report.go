package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/workshop-manager/workshop-manager/internal/constants"
	apierrors "github.com/workshop-manager/workshop-manager/internal/errors"
	"github.com/workshop-manager/workshop-manager/internal/services"
)

// ReportHandler coordinates reporting HTTP handlers.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// MonthlyIncome returns income grouped by intake month for the trailing
// window, 12 months unless overridden. format=csv downloads the same rows
// as a CSV file.
func (h *ReportHandler) MonthlyIncome(c *gin.Context) {
	months := constants.IncomeReportMonths
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 60 {
			apierrors.BadRequest(c, "Invalid months, expected 1-60")
			return
		}
		months = parsed
	}

	rows, err := h.reportService.MonthlyIncome(months)
	if err != nil {
		apierrors.InternalError(c, "Failed to build income report")
		return
	}

	if c.Query("format") == "csv" {
		writeIncomeCSV(c, rows)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"months": rows,
	})
}

func writeIncomeCSV(c *gin.Context, rows []services.MonthlyIncomeRow) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="monthly_income.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"month", "orders", "income"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.Label,
			strconv.Itoa(row.Count),
			fmt.Sprintf("%.2f", row.Total),
		})
	}
	w.Flush()
}
