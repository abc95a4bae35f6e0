package dto

import (
	"time"

	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID         uint64       `json:"id"`
	Email      string       `json:"email"`
	EmployeeID *uint64      `json:"employee_id"`
	Capability string       `json:"capability"`
	Employee   *EmployeeDTO `json:"employee,omitempty"`
}

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// CustomerDTO represents a customer in API responses
type CustomerDTO struct {
	ID           uint64       `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	Email        string       `json:"email"`
	RegisteredAt time.Time    `json:"registered_at"`
	Vehicles     []VehicleDTO `json:"vehicles,omitempty"`
}

// VehicleDTO represents a vehicle in API responses
type VehicleDTO struct {
	ID         uint64       `json:"id"`
	CustomerID uint64       `json:"customer_id"`
	Make       string       `json:"make"`
	Model      string       `json:"model"`
	Year       int          `json:"year"`
	Plate      string       `json:"plate"`
	Customer   *CustomerDTO `json:"customer,omitempty"`
}

// ServiceDTO represents a catalog service in API responses
type ServiceDTO struct {
	ID              uint64  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Cost            float64 `json:"cost"`
	DurationMinutes int     `json:"duration_minutes"`
}

// RepairOrderDTO represents a repair order in API responses
type RepairOrderDTO struct {
	ID         uint64                  `json:"id"`
	VehicleID  uint64                  `json:"vehicle_id"`
	ServiceID  uint64                  `json:"service_id"`
	MechanicID *uint64                 `json:"mechanic_id"`
	IntakeAt   time.Time               `json:"intake_at"`
	ExitAt     *time.Time              `json:"exit_at"`
	Condition  models.VehicleCondition `json:"condition"`
	Status     models.OrderStatus      `json:"status"`
	Notes      string                  `json:"notes"`
	Vehicle    *VehicleDTO             `json:"vehicle,omitempty"`
	Service    *ServiceDTO             `json:"service,omitempty"`
	Mechanic   *EmployeeDTO            `json:"mechanic,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        models.TaskStatus   `json:"status"`
	Priority      models.TaskPriority `json:"priority"`
	DueDate       *time.Time          `json:"due_date"`
	RepairOrderID *uint64             `json:"repair_order_id"`
	CreatorID     uint64              `json:"creator_id"`
	AssigneeID    *uint64             `json:"assignee_id"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Creator       *UserDTO            `json:"creator,omitempty"`
	Assignee      *UserDTO            `json:"assignee,omitempty"`
}

// TaskHistoryDTO represents one task audit entry in API responses
type TaskHistoryDTO struct {
	ID          uint64    `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	UserID      *uint64   `json:"user_id"`
	User        *UserDTO  `json:"user,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUserDTO converts a user to DTO
func ToUserDTO(user models.User) UserDTO {
	d := UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		EmployeeID: user.EmployeeID,
		Capability: services.CapabilityNone.String(),
	}
	if user.Employee != nil {
		employee := ToEmployeeDTO(*user.Employee)
		d.Employee = &employee
		d.Capability = services.CapabilityForPosition(user.Employee.Position).String()
	}
	return d
}

// ToEmployeeDTO converts an employee to DTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:       employee.ID,
		Name:     employee.Name,
		Position: employee.Position,
		Phone:    employee.Phone,
		Email:    employee.Email,
	}
}

// ToCustomerDTO converts a customer to DTO, including loaded vehicles
func ToCustomerDTO(customer models.Customer) CustomerDTO {
	d := CustomerDTO{
		ID:           customer.ID,
		FirstName:    customer.FirstName,
		LastName:     customer.LastName,
		Phone:        customer.Phone,
		Address:      customer.Address,
		Email:        customer.Email,
		RegisteredAt: customer.RegisteredAt,
	}
	for _, vehicle := range customer.Vehicles {
		d.Vehicles = append(d.Vehicles, ToVehicleDTO(vehicle))
	}
	return d
}

// ToVehicleDTO converts a vehicle to DTO
func ToVehicleDTO(vehicle models.Vehicle) VehicleDTO {
	d := VehicleDTO{
		ID:         vehicle.ID,
		CustomerID: vehicle.CustomerID,
		Make:       vehicle.Make,
		Model:      vehicle.Model,
		Year:       vehicle.Year,
		Plate:      vehicle.Plate,
	}
	if vehicle.Customer.ID != 0 {
		customer := ToCustomerDTO(vehicle.Customer)
		d.Customer = &customer
	}
	return d
}

// ToServiceDTO converts a catalog service to DTO
func ToServiceDTO(service models.Service) ServiceDTO {
	return ServiceDTO{
		ID:              service.ID,
		Name:            service.Name,
		Description:     service.Description,
		Cost:            service.Cost,
		DurationMinutes: service.DurationMinutes,
	}
}

// ToRepairOrderDTO converts a repair order to DTO, including loaded relations
func ToRepairOrderDTO(order models.RepairOrder) RepairOrderDTO {
	d := RepairOrderDTO{
		ID:         order.ID,
		VehicleID:  order.VehicleID,
		ServiceID:  order.ServiceID,
		MechanicID: order.MechanicID,
		IntakeAt:   order.IntakeAt,
		ExitAt:     order.ExitAt,
		Condition:  order.Condition,
		Status:     order.Status,
		Notes:      order.Notes,
	}
	if order.Vehicle.ID != 0 {
		vehicle := ToVehicleDTO(order.Vehicle)
		d.Vehicle = &vehicle
	}
	if order.Service.ID != 0 {
		service := ToServiceDTO(order.Service)
		d.Service = &service
	}
	if order.Mechanic != nil {
		mechanic := ToEmployeeDTO(*order.Mechanic)
		d.Mechanic = &mechanic
	}
	return d
}

// ToTaskDTO converts a task to DTO
func ToTaskDTO(task models.Task) TaskDTO {
	d := TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        task.Status,
		Priority:      task.Priority,
		DueDate:       task.DueDate,
		RepairOrderID: task.RepairOrderID,
		CreatorID:     task.CreatorID,
		AssigneeID:    task.AssigneeID,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		d.Creator = &creator
	}
	if task.Assignee != nil {
		assignee := ToUserDTO(*task.Assignee)
		d.Assignee = &assignee
	}
	return d
}

// ToTaskHistoryDTO converts a task history entry to DTO
func ToTaskHistoryDTO(entry models.TaskHistory) TaskHistoryDTO {
	d := TaskHistoryDTO{
		ID:          entry.ID,
		Action:      entry.Action,
		Description: entry.Description,
		UserID:      entry.UserID,
		CreatedAt:   entry.CreatedAt,
	}
	if entry.User != nil {
		user := ToUserDTO(*entry.User)
		d.User = &user
	}
	return d
}
