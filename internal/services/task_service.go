package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskPermission    = errors.New("not allowed to modify this task")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrTaskOrderAbsent   = errors.New("referenced repair order does not exist")
	ErrAssigneeAbsent    = errors.New("referenced assignee does not exist")
)

// History actions recorded in the task audit log.
const (
	HistoryActionCreated       = "created"
	HistoryActionUpdated       = "updated"
	HistoryActionStatusChanged = "status_changed"
	HistoryActionAssigned      = "assigned"
	HistoryActionComment       = "comment"
)

var taskPreloads = []string{"Creator", "Assignee", "UpdatedBy", "RepairOrder"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	orderRepo repository.RepairOrderRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, orderRepo repository.RepairOrderRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, userRepo: userRepo, orderRepo: orderRepo}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title         string
	Description   string
	Priority      models.TaskPriority
	DueDate       *time.Time
	RepairOrderID *uint64
	AssigneeID    *uint64
}

// UpdateTaskInput represents a partial update of a task
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *models.TaskPriority
	DueDate     *time.Time
	AssigneeID  *uint64
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status        *models.TaskStatus
	CreatorID     *uint64
	AssigneeID    *uint64
	RepairOrderID *uint64
	InvolvedID    *uint64
	Page          int
	PageSize      int
}

// Create creates a task in todo state and records the creation in its history
func (s *TaskService) Create(creatorID uint64, input CreateTaskInput) (*models.Task, error) {
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if input.RepairOrderID != nil {
		if _, err := s.orderRepo.FindByID(*input.RepairOrderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskOrderAbsent
			}
			return nil, fmt.Errorf("failed to verify repair order: %w", err)
		}
	}
	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeAbsent
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
	}

	task := &models.Task{
		Title:         input.Title,
		Description:   input.Description,
		Status:        models.TaskStatusTodo,
		Priority:      priority,
		DueDate:       input.DueDate,
		RepairOrderID: input.RepairOrderID,
		CreatorID:     creatorID,
		AssigneeID:    input.AssigneeID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.recordHistory(task.ID, &creatorID, HistoryActionCreated, "Task created")
	if input.AssigneeID != nil {
		s.recordHistory(task.ID, &creatorID, HistoryActionAssigned,
			fmt.Sprintf("Assigned to user %d", *input.AssigneeID))
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// Get returns a task with related data
func (s *TaskService) Get(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// List returns tasks matching the filters
func (s *TaskService) List(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:        input.Status,
		CreatorID:     input.CreatorID,
		AssigneeID:    input.AssigneeID,
		RepairOrderID: input.RepairOrderID,
		InvolvedID:    input.InvolvedID,
		Page:          input.Page,
		PageSize:      input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// ChangeStatus moves a task to a new status. Only the creator, the assignee,
// or an actor with at least supervisor capability may do so.
func (s *TaskService) ChangeStatus(taskID, actorID uint64, capability Capability, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !canModifyTask(task, actorID, capability) {
		return nil, ErrTaskPermission
	}

	previous := task.Status
	task.Status = status
	task.UpdatedByID = &actorID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if previous != status {
		s.recordHistory(task.ID, &actorID, HistoryActionStatusChanged,
			fmt.Sprintf("Status changed from %s to %s", previous, status))
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// Update applies a partial update under the same permission rule as
// ChangeStatus and records what changed.
func (s *TaskService) Update(taskID, actorID uint64, capability Capability, input UpdateTaskInput) (*models.Task, error) {
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !canModifyTask(task, actorID, capability) {
		return nil, ErrTaskPermission
	}

	reassigned := false
	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeAbsent
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		reassigned = task.AssigneeID == nil || *task.AssigneeID != *input.AssigneeID
		task.AssigneeID = input.AssigneeID
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	task.UpdatedByID = &actorID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.recordHistory(task.ID, &actorID, HistoryActionUpdated, "Task updated")
	if reassigned {
		s.recordHistory(task.ID, &actorID, HistoryActionAssigned,
			fmt.Sprintf("Assigned to user %d", *input.AssigneeID))
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// Delete removes a task and its history. Only the creator or an actor with
// at least supervisor capability may delete.
func (s *TaskService) Delete(taskID, actorID uint64, capability Capability) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.CreatorID != actorID && !capability.AtLeast(CapabilitySupervisor) {
		return ErrTaskPermission
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// Comment appends a free-form note to a task's history
func (s *TaskService) Comment(taskID, actorID uint64, text string) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	entry := &models.TaskHistory{
		TaskID:      taskID,
		UserID:      &actorID,
		Action:      HistoryActionComment,
		Description: text,
	}
	if err := s.taskRepo.AppendHistory(entry); err != nil {
		return fmt.Errorf("failed to append task history: %w", err)
	}

	return nil
}

// ListHistory returns a task's audit log, newest first
func (s *TaskService) ListHistory(taskID uint64) ([]models.TaskHistory, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	entries, err := s.taskRepo.ListHistory(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task history: %w", err)
	}

	return entries, nil
}

// canModifyTask reports whether the actor may change the task: the creator,
// the current assignee, or anyone with supervisor capability and above.
func canModifyTask(task *models.Task, actorID uint64, capability Capability) bool {
	if task.CreatorID == actorID {
		return true
	}
	if task.AssigneeID != nil && *task.AssigneeID == actorID {
		return true
	}
	return capability.AtLeast(CapabilitySupervisor)
}

// recordHistory appends an audit entry. History is best effort: a failed
// write is not worth failing the operation that already succeeded.
func (s *TaskService) recordHistory(taskID uint64, userID *uint64, action, description string) {
	_ = s.taskRepo.AppendHistory(&models.TaskHistory{
		TaskID:      taskID,
		UserID:      userID,
		Action:      action,
		Description: description,
	})
}
