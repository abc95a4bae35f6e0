package repository

import (
	"time"

	"github.com/workshop-manager/workshop-manager/internal/models"
)

// RepairOrderRepository defines the interface for repair order data access
type RepairOrderRepository interface {
	// Create creates a new repair order
	Create(order *models.RepairOrder) error

	// FindByID finds a repair order by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.RepairOrder, error)

	// List retrieves repair orders with filtering and pagination
	List(filter RepairOrderFilter) ([]models.RepairOrder, int64, error)

	// Update updates a repair order
	Update(order *models.RepairOrder) error

	// Delete soft deletes a repair order and its tasks
	Delete(id uint64) error

	// ClaimMechanic conditionally assigns a mechanic. The update only takes
	// effect while the order is unassigned or already assigned to the same
	// mechanic; it reports whether a row was written.
	ClaimMechanic(orderID, mechanicID uint64) (bool, error)

	// VehicleExists reports whether a vehicle exists
	VehicleExists(id uint64) (bool, error)

	// ServiceExists reports whether a catalog service exists
	ServiceExists(id uint64) (bool, error)
}

// RepairOrderFilter holds filtering options for listing repair orders
type RepairOrderFilter struct {
	Status     *models.OrderStatus
	MechanicID *uint64
	Unassigned bool
	IntakeFrom *time.Time
	IntakeTo   *time.Time
	Page       int
	PageSize   int
	Preload    []string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task together with its history
	Delete(id uint64) error

	// AppendHistory appends an audit entry for a task
	AppendHistory(entry *models.TaskHistory) error

	// ListHistory lists a task's history entries, newest first
	ListHistory(taskID uint64) ([]models.TaskHistory, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status        *models.TaskStatus
	CreatorID     *uint64
	AssigneeID    *uint64
	RepairOrderID *uint64
	InvolvedID    *uint64
	Page          int
	PageSize      int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id uint64) (*models.Employee, error)

	// FindByEmail finds an employee by email
	FindByEmail(email string) (*models.Employee, error)

	// List retrieves employees with pagination
	List(page, pageSize int) ([]models.Employee, int64, error)

	// Update updates an employee
	Update(employee *models.Employee) error

	// Delete soft deletes an employee
	Delete(id uint64) error
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	// Create creates a new customer
	Create(customer *models.Customer) error

	// FindByID finds a customer by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Customer, error)

	// List retrieves customers with pagination, optionally matching a
	// case-insensitive search over name and email
	List(search string, page, pageSize int) ([]models.Customer, int64, error)

	// Update updates a customer
	Update(customer *models.Customer) error

	// Delete soft deletes a customer
	Delete(id uint64) error
}

// VehicleRepository defines the interface for vehicle data access
type VehicleRepository interface {
	// Create creates a new vehicle
	Create(vehicle *models.Vehicle) error

	// FindByID finds a vehicle by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Vehicle, error)

	// FindByPlate finds a vehicle by its plate
	FindByPlate(plate string) (*models.Vehicle, error)

	// List retrieves vehicles with pagination, optionally scoped to a customer
	List(customerID *uint64, page, pageSize int) ([]models.Vehicle, int64, error)

	// Update updates a vehicle
	Update(vehicle *models.Vehicle) error

	// Delete soft deletes a vehicle
	Delete(id uint64) error

	// CustomerExists reports whether a customer exists
	CustomerExists(id uint64) (bool, error)
}

// ServiceRepository defines the interface for service catalog data access
type ServiceRepository interface {
	// Create creates a new catalog service
	Create(service *models.Service) error

	// FindByID finds a catalog service by ID
	FindByID(id uint64) (*models.Service, error)

	// List retrieves catalog services with pagination
	List(page, pageSize int) ([]models.Service, int64, error)

	// Update updates a catalog service
	Update(service *models.Service) error

	// Delete soft deletes a catalog service
	Delete(id uint64) error
}
