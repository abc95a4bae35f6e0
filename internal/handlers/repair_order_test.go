package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/workshop-manager/workshop-manager/internal/constants"
	"github.com/workshop-manager/workshop-manager/internal/database"
	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"github.com/workshop-manager/workshop-manager/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// RepairOrderHandlerTestSuite defines the test suite for RepairOrderHandler
type RepairOrderHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *RepairOrderHandler

	vehicle  models.Vehicle
	catalog  models.Service
	mechanic models.Employee
	mechUser models.User
}

// SetupTest runs before each test
func (suite *RepairOrderHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Customer{},
		&models.Vehicle{},
		&models.Service{},
		&models.RepairOrder{},
		&models.Task{},
		&models.TaskHistory{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	orderRepo := repository.NewRepairOrderRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	employeeRepo := repository.NewEmployeeRepository(suite.db)

	orderService := services.NewRepairOrderService(orderRepo)
	authService := services.NewAuthService(userRepo, employeeRepo)
	suite.handler = NewRepairOrderHandler(orderService, authService)

	gin.SetMode(gin.TestMode)

	customer := models.Customer{
		FirstName: "Maria", LastName: "Lopez",
		Email: "maria@example.com", RegisteredAt: time.Now(),
	}
	suite.Require().NoError(suite.db.Create(&customer).Error)

	suite.vehicle = models.Vehicle{
		CustomerID: customer.ID,
		Make:       "Toyota", Model: "Corolla", Year: 2018, Plate: "ABC-123",
	}
	suite.Require().NoError(suite.db.Create(&suite.vehicle).Error)

	suite.catalog = models.Service{Name: "Oil change", Cost: 45.50, DurationMinutes: 30}
	suite.Require().NoError(suite.db.Create(&suite.catalog).Error)

	suite.mechanic = models.Employee{Name: "Pedro", Position: "mechanic", Email: "pedro@example.com"}
	suite.Require().NoError(suite.db.Create(&suite.mechanic).Error)

	suite.mechUser = models.User{
		Email:        "pedro@example.com",
		PasswordHash: "hashedpassword",
		EmployeeID:   &suite.mechanic.ID,
	}
	suite.Require().NoError(suite.db.Create(&suite.mechUser).Error)
}

// TearDownTest runs after each test
func (suite *RepairOrderHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RepairOrderHandlerTestSuite) createTestOrder() *models.RepairOrder {
	order := &models.RepairOrder{
		VehicleID: suite.vehicle.ID,
		ServiceID: suite.catalog.ID,
		IntakeAt:  time.Now(),
		Condition: models.ConditionFair,
		Status:    models.OrderStatusPending,
	}
	suite.db.Create(order)
	return order
}

// Helper function to create authenticated context
func (suite *RepairOrderHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *RepairOrderHandlerTestSuite) TestCreateRepairOrder_Success() {
	payload := map[string]interface{}{
		"vehicle_id": suite.vehicle.ID,
		"service_id": suite.catalog.ID,
		"notes":      "Customer reports grinding noise",
	}
	body, _ := json.Marshal(payload)

	c, w := suite.createAuthContext("POST", "/api/repair-orders", body, suite.mechUser.ID)

	suite.handler.CreateRepairOrder(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), string(models.OrderStatusPending), response["status"])
	assert.Equal(suite.T(), string(models.ConditionFair), response["condition"])
	assert.Nil(suite.T(), response["mechanic_id"])
}

func (suite *RepairOrderHandlerTestSuite) TestCreateRepairOrder_UnknownVehicle() {
	payload := map[string]interface{}{
		"vehicle_id": 9999,
		"service_id": suite.catalog.ID,
	}
	body, _ := json.Marshal(payload)

	c, w := suite.createAuthContext("POST", "/api/repair-orders", body, suite.mechUser.ID)

	suite.handler.CreateRepairOrder(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *RepairOrderHandlerTestSuite) TestClaimRepairOrder_Success() {
	order := suite.createTestOrder()

	c, w := suite.createAuthContext("POST", "/api/repair-orders/1/claim", nil, suite.mechUser.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(order.ID, 10)}}

	suite.handler.ClaimRepairOrder(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), float64(suite.mechanic.ID), response["mechanic_id"])
	assert.Equal(suite.T(), string(models.OrderStatusInProgress), response["status"])
}

func (suite *RepairOrderHandlerTestSuite) TestClaimRepairOrder_AlreadyAssigned() {
	order := suite.createTestOrder()

	other := models.Employee{Name: "Lucia", Position: "mechanic", Email: "lucia@example.com"}
	suite.Require().NoError(suite.db.Create(&other).Error)
	suite.Require().NoError(suite.db.Model(order).
		Update("mechanic_id", other.ID).Error)

	c, w := suite.createAuthContext("POST", "/api/repair-orders/1/claim", nil, suite.mechUser.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(order.ID, 10)}}

	suite.handler.ClaimRepairOrder(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "ALREADY_ASSIGNED", response["code"])
}

func (suite *RepairOrderHandlerTestSuite) TestClaimRepairOrder_NoEmployeeLink() {
	order := suite.createTestOrder()

	plain := models.User{Email: "visitor@example.com", PasswordHash: "hashedpassword"}
	suite.Require().NoError(suite.db.Create(&plain).Error)

	c, w := suite.createAuthContext("POST", "/api/repair-orders/1/claim", nil, plain.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(order.ID, 10)}}

	suite.handler.ClaimRepairOrder(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *RepairOrderHandlerTestSuite) TestClaimRepairOrder_NotFound() {
	c, w := suite.createAuthContext("POST", "/api/repair-orders/9999/claim", nil, suite.mechUser.ID)
	c.Params = gin.Params{{Key: "id", Value: "9999"}}

	suite.handler.ClaimRepairOrder(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *RepairOrderHandlerTestSuite) TestUpdateRepairOrder_CompletionSetsExit() {
	order := suite.createTestOrder()

	payload := map[string]interface{}{"status": "completed"}
	body, _ := json.Marshal(payload)

	c, w := suite.createAuthContext("PATCH", "/api/repair-orders/1", body, suite.mechUser.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(order.ID, 10)}}

	suite.handler.UpdateRepairOrder(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), string(models.OrderStatusCompleted), response["status"])
	assert.NotNil(suite.T(), response["exit_at"])
}

func (suite *RepairOrderHandlerTestSuite) TestUpdateRepairOrder_InvalidStatus() {
	order := suite.createTestOrder()

	payload := map[string]interface{}{"status": "finished"}
	body, _ := json.Marshal(payload)

	c, w := suite.createAuthContext("PATCH", "/api/repair-orders/1", body, suite.mechUser.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(order.ID, 10)}}

	suite.handler.UpdateRepairOrder(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *RepairOrderHandlerTestSuite) TestListAvailableRepairOrders() {
	open := suite.createTestOrder()

	taken := suite.createTestOrder()
	suite.Require().NoError(suite.db.Model(taken).
		Updates(map[string]interface{}{
			"mechanic_id": suite.mechanic.ID,
			"status":      models.OrderStatusInProgress,
		}).Error)

	c, w := suite.createAuthContext("GET", "/api/repair-orders/available", nil, suite.mechUser.ID)

	suite.handler.ListAvailableRepairOrders(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))

	orders := response["repair_orders"].([]interface{})
	suite.Require().Len(orders, 1)
	first := orders[0].(map[string]interface{})
	assert.Equal(suite.T(), float64(open.ID), first["id"])
}

func TestRepairOrderHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RepairOrderHandlerTestSuite))
}
