package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type taskTestEnv struct {
	db       *gorm.DB
	service  *TaskService
	creator  models.User
	assignee models.User
	outsider models.User
}

func setupTaskTestEnv(t *testing.T) taskTestEnv {
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

	creator := models.User{Email: "creator@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&creator).Error)
	assignee := models.User{Email: "assignee@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&assignee).Error)
	outsider := models.User{Email: "outsider@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&outsider).Error)

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewRepairOrderRepository(db)

	return taskTestEnv{
		db:       db,
		service:  NewTaskService(taskRepo, userRepo, orderRepo),
		creator:  creator,
		assignee: assignee,
		outsider: outsider,
	}
}

func (env taskTestEnv) createTask(t *testing.T) *models.Task {
	t.Helper()

	task, err := env.service.Create(env.creator.ID, CreateTaskInput{
		Title:      "Replace brake pads",
		AssigneeID: &env.assignee.ID,
	})
	require.NoError(t, err)
	return task
}

func TestTaskCreate_StartsInTodo(t *testing.T) {
	env := setupTaskTestEnv(t)

	task := env.createTask(t)

	require.Equal(t, models.TaskStatusTodo, task.Status)
	require.Equal(t, models.PriorityMedium, task.Priority)
	require.Equal(t, env.creator.ID, task.CreatorID)
}

func TestTaskCreate_RecordsHistory(t *testing.T) {
	env := setupTaskTestEnv(t)

	task := env.createTask(t)

	history, err := env.service.ListHistory(task.ID)
	require.NoError(t, err)
	require.Len(t, history, 2) // created + assigned

	actions := []string{history[0].Action, history[1].Action}
	require.Contains(t, actions, HistoryActionCreated)
	require.Contains(t, actions, HistoryActionAssigned)
}

func TestTaskCreate_UnknownAssignee(t *testing.T) {
	env := setupTaskTestEnv(t)

	missing := uint64(9999)
	_, err := env.service.Create(env.creator.ID, CreateTaskInput{
		Title:      "Orphan",
		AssigneeID: &missing,
	})
	require.ErrorIs(t, err, ErrAssigneeAbsent)
}

func TestTaskChangeStatus_ByAssignee(t *testing.T) {
	env := setupTaskTestEnv(t)
	task := env.createTask(t)

	updated, err := env.service.ChangeStatus(task.ID, env.assignee.ID, CapabilityMechanic, models.TaskStatusInProgress)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusInProgress, updated.Status)
	require.Equal(t, env.assignee.ID, *updated.UpdatedByID)
}

func TestTaskChangeStatus_AppendsHistory(t *testing.T) {
	env := setupTaskTestEnv(t)
	task := env.createTask(t)

	_, err := env.service.ChangeStatus(task.ID, env.creator.ID, CapabilityMechanic, models.TaskStatusDone)
	require.NoError(t, err)

	history, err := env.service.ListHistory(task.ID)
	require.NoError(t, err)
	require.Equal(t, HistoryActionStatusChanged, history[0].Action)
	require.Contains(t, history[0].Description, string(models.TaskStatusDone))
}

func TestTaskChangeStatus_OutsiderDenied(t *testing.T) {
	env := setupTaskTestEnv(t)
	task := env.createTask(t)

	_, err := env.service.ChangeStatus(task.ID, env.outsider.ID, CapabilityMechanic, models.TaskStatusDone)
	require.ErrorIs(t, err, ErrTaskPermission)
}

func TestTaskChangeStatus_SupervisorAllowed(t *testing.T) {
	env := setupTaskTestEnv(t)
	task := env.createTask(t)

	updated, err := env.service.ChangeStatus(task.ID, env.outsider.ID, CapabilitySupervisor, models.TaskStatusDone)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusDone, updated.Status)
}

func TestTaskChangeStatus_InvalidStatus(t *testing.T) {
	env := setupTaskTestEnv(t)
	task := env.createTask(t)

	_, err := env.service.ChangeStatus(task.ID, env.creator.ID, CapabilityMechanic, models.TaskStatus("archived"))
	require.ErrorIs(t, err, ErrInvalidTaskStatus)
}

func TestTaskUpdate_ReassignmentRecorded(t *testing.T) {
	env := setupTaskTestEnv(t)
	task := env.createTask(t)

	updated, err := env.service.Update(task.ID, env.creator.ID, CapabilityMechanic, UpdateTaskInput{
		AssigneeID: &env.outsider.ID,
	})
	require.NoError(t, err)
	require.Equal(t, env.outsider.ID, *updated.AssigneeID)

	history, err := env.service.ListHistory(task.ID)
	require.NoError(t, err)
	require.Equal(t, HistoryActionAssigned, history[0].Action)
}

func TestTaskDelete_CreatorAllowed(t *testing.T) {
	env := setupTaskTestEnv(t)
	task := env.createTask(t)

	require.NoError(t, env.service.Delete(task.ID, env.creator.ID, CapabilityMechanic))

	_, err := env.service.Get(task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskDelete_AssigneeDenied(t *testing.T) {
	env := setupTaskTestEnv(t)
	task := env.createTask(t)

	err := env.service.Delete(task.ID, env.assignee.ID, CapabilityMechanic)
	require.ErrorIs(t, err, ErrTaskPermission)
}

func TestTaskDelete_RemovesHistory(t *testing.T) {
	env := setupTaskTestEnv(t)
	task := env.createTask(t)

	require.NoError(t, env.service.Delete(task.ID, env.creator.ID, CapabilityChief))

	var count int64
	require.NoError(t, env.db.Model(&models.TaskHistory{}).Where("task_id = ?", task.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestTaskComment_AppendsHistory(t *testing.T) {
	env := setupTaskTestEnv(t)
	task := env.createTask(t)

	require.NoError(t, env.service.Comment(task.ID, env.assignee.ID, "waiting on parts"))

	history, err := env.service.ListHistory(task.ID)
	require.NoError(t, err)
	require.Equal(t, HistoryActionComment, history[0].Action)
	require.Equal(t, "waiting on parts", history[0].Description)
}
