package repository

import (
	"github.com/workshop-manager/workshop-manager/internal/models"
	"gorm.io/gorm"
)

// GormCustomerRepository is a GORM implementation of CustomerRepository
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Create creates a new customer
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// FindByID finds a customer by ID with optional preloading
func (r *GormCustomerRepository) FindByID(id uint64, preload ...string) (*models.Customer, error) {
	var customer models.Customer
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&customer, id).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// List retrieves customers with pagination and optional name/email search
func (r *GormCustomerRepository) List(search string, page, pageSize int) ([]models.Customer, int64, error) {
	var customers []models.Customer

	query := r.db.Model(&models.Customer{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR email LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("last_name ASC, first_name ASC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := listQuery.Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// Update updates a customer
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete soft deletes a customer
func (r *GormCustomerRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Customer{}, id).Error
}

// GormVehicleRepository is a GORM implementation of VehicleRepository
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &GormVehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *GormVehicleRepository) Create(vehicle *models.Vehicle) error {
	return r.db.Create(vehicle).Error
}

// FindByID finds a vehicle by ID with optional preloading
func (r *GormVehicleRepository) FindByID(id uint64, preload ...string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&vehicle, id).Error; err != nil {
		return nil, err
	}

	return &vehicle, nil
}

// FindByPlate finds a vehicle by its plate
func (r *GormVehicleRepository) FindByPlate(plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.Where("plate = ?", plate).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// List retrieves vehicles with pagination, optionally scoped to a customer
func (r *GormVehicleRepository) List(customerID *uint64, page, pageSize int) ([]models.Vehicle, int64, error) {
	var vehicles []models.Vehicle

	query := r.db.Model(&models.Vehicle{})

	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("plate ASC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := listQuery.Preload("Customer").Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

// Update updates a vehicle
func (r *GormVehicleRepository) Update(vehicle *models.Vehicle) error {
	return r.db.Save(vehicle).Error
}

// Delete soft deletes a vehicle
func (r *GormVehicleRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Vehicle{}, id).Error
}

// CustomerExists reports whether a customer exists
func (r *GormVehicleRepository) CustomerExists(id uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GormServiceRepository is a GORM implementation of ServiceRepository
type GormServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &GormServiceRepository{db: db}
}

// Create creates a new catalog service
func (r *GormServiceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

// FindByID finds a catalog service by ID
func (r *GormServiceRepository) FindByID(id uint64) (*models.Service, error) {
	var service models.Service
	if err := r.db.First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// List retrieves catalog services with pagination
func (r *GormServiceRepository) List(page, pageSize int) ([]models.Service, int64, error) {
	var services []models.Service

	query := r.db.Model(&models.Service{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("name ASC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := listQuery.Find(&services).Error; err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

// Update updates a catalog service
func (r *GormServiceRepository) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

// Delete soft deletes a catalog service
func (r *GormServiceRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Service{}, id).Error
}
