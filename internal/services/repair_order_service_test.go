package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type orderTestEnv struct {
	db       *gorm.DB
	service  *RepairOrderService
	vehicle  models.Vehicle
	catalog  models.Service
	mechanic models.Employee
	other    models.Employee
}

func setupOrderTestEnv(t *testing.T) orderTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Customer{},
		&models.Vehicle{},
		&models.Service{},
		&models.RepairOrder{},
		&models.Task{},
		&models.TaskHistory{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	customer := models.Customer{
		FirstName: "Maria", LastName: "Lopez",
		Email: "maria@example.com", RegisteredAt: time.Now(),
	}
	require.NoError(t, db.Create(&customer).Error)

	vehicle := models.Vehicle{
		CustomerID: customer.ID,
		Make:       "Toyota", Model: "Corolla", Year: 2018, Plate: "ABC-123",
	}
	require.NoError(t, db.Create(&vehicle).Error)

	catalog := models.Service{Name: "Oil change", Cost: 45.50, DurationMinutes: 30}
	require.NoError(t, db.Create(&catalog).Error)

	mechanic := models.Employee{Name: "Pedro", Position: "mechanic", Email: "pedro@example.com"}
	require.NoError(t, db.Create(&mechanic).Error)

	other := models.Employee{Name: "Lucia", Position: "mechanic", Email: "lucia@example.com"}
	require.NoError(t, db.Create(&other).Error)

	return orderTestEnv{
		db:       db,
		service:  NewRepairOrderService(repository.NewRepairOrderRepository(db)),
		vehicle:  vehicle,
		catalog:  catalog,
		mechanic: mechanic,
		other:    other,
	}
}

func (env orderTestEnv) createOrder(t *testing.T) *models.RepairOrder {
	t.Helper()

	order, err := env.service.Create(CreateRepairOrderInput{
		VehicleID: env.vehicle.ID,
		ServiceID: env.catalog.ID,
	})
	require.NoError(t, err)
	return order
}

func TestRepairOrderCreate_Defaults(t *testing.T) {
	env := setupOrderTestEnv(t)

	order := env.createOrder(t)

	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, models.ConditionFair, order.Condition)
	require.Nil(t, order.MechanicID)
	require.Nil(t, order.ExitAt)
	require.WithinDuration(t, time.Now(), order.IntakeAt, 5*time.Second)
}

func TestRepairOrderCreate_UnknownVehicle(t *testing.T) {
	env := setupOrderTestEnv(t)

	_, err := env.service.Create(CreateRepairOrderInput{
		VehicleID: 9999,
		ServiceID: env.catalog.ID,
	})
	require.ErrorIs(t, err, ErrOrderVehicleAbsent)
}

func TestRepairOrderCreate_InvalidCondition(t *testing.T) {
	env := setupOrderTestEnv(t)

	_, err := env.service.Create(CreateRepairOrderInput{
		VehicleID: env.vehicle.ID,
		ServiceID: env.catalog.ID,
		Condition: "wrecked",
	})
	require.ErrorIs(t, err, ErrInvalidCondition)
}

func TestRepairOrderClaim_AssignsAndAdvances(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	claimed, err := env.service.Claim(order.ID, env.mechanic.ID)
	require.NoError(t, err)
	require.NotNil(t, claimed.MechanicID)
	require.Equal(t, env.mechanic.ID, *claimed.MechanicID)
	require.Equal(t, models.OrderStatusInProgress, claimed.Status)
}

func TestRepairOrderClaim_Idempotent(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	_, err := env.service.Claim(order.ID, env.mechanic.ID)
	require.NoError(t, err)

	again, err := env.service.Claim(order.ID, env.mechanic.ID)
	require.NoError(t, err)
	require.Equal(t, env.mechanic.ID, *again.MechanicID)
}

func TestRepairOrderClaim_RejectsSecondMechanic(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	_, err := env.service.Claim(order.ID, env.mechanic.ID)
	require.NoError(t, err)

	_, err = env.service.Claim(order.ID, env.other.ID)
	require.ErrorIs(t, err, ErrAlreadyAssigned)

	// The original assignment is untouched.
	kept, err := env.service.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, env.mechanic.ID, *kept.MechanicID)
}

func TestRepairOrderClaim_KeepsNonPendingStatus(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	status := models.OrderStatusAwaitingParts
	_, err := env.service.Update(order.ID, UpdateRepairOrderInput{Status: &status})
	require.NoError(t, err)

	claimed, err := env.service.Claim(order.ID, env.mechanic.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusAwaitingParts, claimed.Status)
}

func TestRepairOrderClaim_NotFound(t *testing.T) {
	env := setupOrderTestEnv(t)

	_, err := env.service.Claim(9999, env.mechanic.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRepairOrderUpdate_SetsExitOnCompletionOnce(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	completed := models.OrderStatusCompleted
	updated, err := env.service.Update(order.ID, UpdateRepairOrderInput{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, updated.ExitAt)
	firstExit := *updated.ExitAt

	// Reopening and completing again must not move the exit timestamp.
	inProgress := models.OrderStatusInProgress
	_, err = env.service.Update(order.ID, UpdateRepairOrderInput{Status: &inProgress})
	require.NoError(t, err)

	reDone, err := env.service.Update(order.ID, UpdateRepairOrderInput{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, reDone.ExitAt)
	require.True(t, reDone.ExitAt.Equal(firstExit))
}

func TestRepairOrderUpdate_ReopeningKeepsExit(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	completed := models.OrderStatusCompleted
	_, err := env.service.Update(order.ID, UpdateRepairOrderInput{Status: &completed})
	require.NoError(t, err)

	pending := models.OrderStatusPending
	reopened, err := env.service.Update(order.ID, UpdateRepairOrderInput{Status: &pending})
	require.NoError(t, err)
	require.NotNil(t, reopened.ExitAt)
}

func TestRepairOrderUpdate_AppendsNotes(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	first := "Brake pads worn"
	updated, err := env.service.Update(order.ID, UpdateRepairOrderInput{Note: &first})
	require.NoError(t, err)
	require.Equal(t, first, updated.Notes)

	second := "Ordered replacements"
	updated, err = env.service.Update(order.ID, UpdateRepairOrderInput{Note: &second})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(updated.Notes, first))
	require.Contains(t, updated.Notes, "--- Update ")
	require.True(t, strings.HasSuffix(updated.Notes, second))
}

func TestRepairOrderUpdate_InvalidStatus(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	bogus := models.OrderStatus("finished")
	_, err := env.service.Update(order.ID, UpdateRepairOrderInput{Status: &bogus})
	require.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestRepairOrderAvailable_OnlyUnassignedPending(t *testing.T) {
	env := setupOrderTestEnv(t)

	open := env.createOrder(t)
	taken := env.createOrder(t)
	_, err := env.service.Claim(taken.ID, env.mechanic.ID)
	require.NoError(t, err)

	available, total, err := env.service.Available(1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, available, 1)
	require.Equal(t, open.ID, available[0].ID)
}

func TestRepairOrderDelete_RemovesTasks(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	user := models.User{Email: "creator@example.com", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&user).Error)

	task := models.Task{
		Title:         "Check brakes",
		Status:        models.TaskStatusTodo,
		Priority:      models.PriorityMedium,
		RepairOrderID: &order.ID,
		CreatorID:     user.ID,
	}
	require.NoError(t, env.db.Create(&task).Error)

	require.NoError(t, env.service.Delete(order.ID))

	var taskCount int64
	require.NoError(t, env.db.Model(&models.Task{}).Where("repair_order_id = ?", order.ID).Count(&taskCount).Error)
	require.Zero(t, taskCount)

	_, err := env.service.Get(order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)
}
