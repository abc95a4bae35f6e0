package repository

import (
	"github.com/workshop-manager/workshop-manager/internal/models"
	"gorm.io/gorm"
)

// GormRepairOrderRepository is a GORM implementation of RepairOrderRepository
type GormRepairOrderRepository struct {
	db *gorm.DB
}

// NewRepairOrderRepository creates a new RepairOrderRepository
func NewRepairOrderRepository(db *gorm.DB) RepairOrderRepository {
	return &GormRepairOrderRepository{db: db}
}

// Create creates a new repair order
func (r *GormRepairOrderRepository) Create(order *models.RepairOrder) error {
	return r.db.Create(order).Error
}

// FindByID finds a repair order by ID with optional preloading
func (r *GormRepairOrderRepository) FindByID(id uint64, preload ...string) (*models.RepairOrder, error) {
	var order models.RepairOrder
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&order, id).Error; err != nil {
		return nil, err
	}

	return &order, nil
}

// List retrieves repair orders with filtering and pagination
func (r *GormRepairOrderRepository) List(filter RepairOrderFilter) ([]models.RepairOrder, int64, error) {
	var orders []models.RepairOrder

	query := r.db.Model(&models.RepairOrder{})

	if filter.Status != nil {
		query = query.Where("repair_orders.status = ?", *filter.Status)
	}
	if filter.MechanicID != nil {
		query = query.Where("repair_orders.mechanic_id = ?", *filter.MechanicID)
	}
	if filter.Unassigned {
		query = query.Where("repair_orders.mechanic_id IS NULL")
	}
	if filter.IntakeFrom != nil {
		query = query.Where("repair_orders.intake_at >= ?", *filter.IntakeFrom)
	}
	if filter.IntakeTo != nil {
		query = query.Where("repair_orders.intake_at < ?", *filter.IntakeTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("repair_orders.intake_at ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	for _, p := range filter.Preload {
		listQuery = listQuery.Preload(p)
	}

	if err := listQuery.Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Update updates a repair order
func (r *GormRepairOrderRepository) Update(order *models.RepairOrder) error {
	return r.db.Save(order).Error
}

// Delete soft deletes a repair order and its tasks
func (r *GormRepairOrderRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("repair_order_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.RepairOrder{}, id).Error
	})
}

// ClaimMechanic conditionally assigns a mechanic to an order. The WHERE
// clause makes the write a compare-and-swap on the mechanic column, so two
// concurrent claims cannot both win.
func (r *GormRepairOrderRepository) ClaimMechanic(orderID, mechanicID uint64) (bool, error) {
	res := r.db.Model(&models.RepairOrder{}).
		Where("id = ? AND (mechanic_id IS NULL OR mechanic_id = ?)", orderID, mechanicID).
		Updates(map[string]interface{}{
			"mechanic_id": mechanicID,
			"status": gorm.Expr(
				"CASE WHEN status = ? THEN ? ELSE status END",
				models.OrderStatusPending, models.OrderStatusInProgress,
			),
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

// VehicleExists reports whether a vehicle exists
func (r *GormRepairOrderRepository) VehicleExists(id uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Vehicle{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ServiceExists reports whether a catalog service exists
func (r *GormRepairOrderRepository) ServiceExists(id uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Service{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
