package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"github.com/workshop-manager/workshop-manager/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReportTestEnv(t *testing.T) (*gorm.DB, *ReportHandler) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Vehicle{},
		&models.Service{},
		&models.Employee{},
		&models.RepairOrder{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	reportService := services.NewReportService(repository.NewRepairOrderRepository(db))
	return db, NewReportHandler(reportService)
}

func seedOrder(t *testing.T, db *gorm.DB, intake time.Time, cost float64) {
	t.Helper()

	customer := models.Customer{
		FirstName: "Test", LastName: "Customer",
		Email: intake.Format("20060102150405.000") + "@example.com", RegisteredAt: time.Now(),
	}
	require.NoError(t, db.Create(&customer).Error)

	vehicle := models.Vehicle{
		CustomerID: customer.ID,
		Make:       "Ford", Model: "Focus", Year: 2015,
		Plate: intake.Format("0102150405"),
	}
	require.NoError(t, db.Create(&vehicle).Error)

	catalog := models.Service{Name: "Job", Cost: cost, DurationMinutes: 60}
	require.NoError(t, db.Create(&catalog).Error)

	order := models.RepairOrder{
		VehicleID: vehicle.ID,
		ServiceID: catalog.ID,
		IntakeAt:  intake,
		Condition: models.ConditionFair,
		Status:    models.OrderStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)
}

func TestMonthlyIncomeReport_JSON(t *testing.T) {
	db, handler := setupReportTestEnv(t)

	thisMonth := time.Now()
	seedOrder(t, db, thisMonth, 100)
	seedOrder(t, db, thisMonth.Add(time.Hour), 50)

	r := gin.New()
	r.GET("/api/reports/income", handler.MonthlyIncome)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/income", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Months []services.MonthlyIncomeRow `json:"months"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Months, 1)
	require.Equal(t, 150.0, response.Months[0].Total)
	require.Equal(t, 2, response.Months[0].Count)
}

func TestMonthlyIncomeReport_CSV(t *testing.T) {
	db, handler := setupReportTestEnv(t)

	seedOrder(t, db, time.Now(), 75.25)

	r := gin.New()
	r.GET("/api/reports/income", handler.MonthlyIncome)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/income?format=csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "month,orders,income", lines[0])
	require.Contains(t, lines[1], "75.25")
}

func TestMonthlyIncomeReport_InvalidMonths(t *testing.T) {
	_, handler := setupReportTestEnv(t)

	r := gin.New()
	r.GET("/api/reports/income", handler.MonthlyIncome)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/income?months=0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
