package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
)

// MonthlyIncomeRow is one month's aggregate of repair order income.
// Month is the first instant of the month; Label is its display form.
type MonthlyIncomeRow struct {
	Month time.Time `json:"month"`
	Label string    `json:"label"`
	Total float64   `json:"total"`
	Count int       `json:"count"`
}

// ReportService builds aggregate views over repair orders
type ReportService struct {
	orderRepo repository.RepairOrderRepository
}

// NewReportService creates a new ReportService
func NewReportService(orderRepo repository.RepairOrderRepository) *ReportService {
	return &ReportService{orderRepo: orderRepo}
}

// MonthlyIncome groups orders by intake month and sums the cost of the
// requested service. Orders whose service is missing count with zero income.
// Rows come back in ascending month order; months without orders are absent.
func MonthlyIncome(orders []models.RepairOrder) []MonthlyIncomeRow {
	byMonth := make(map[time.Time]*MonthlyIncomeRow)

	for _, order := range orders {
		month := truncateMonth(order.IntakeAt)
		row, ok := byMonth[month]
		if !ok {
			row = &MonthlyIncomeRow{Month: month, Label: month.Format("Jan 2006")}
			byMonth[month] = row
		}
		row.Total += order.Service.Cost
		row.Count++
	}

	rows := make([]MonthlyIncomeRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month.Before(rows[j].Month) })

	return rows
}

// AverageTurnaroundDays computes the mean time between intake and exit of
// completed orders, in whole days per order, rounded to one decimal. Orders
// without an exit timestamp are skipped; nil means nothing to average.
func AverageTurnaroundDays(orders []models.RepairOrder) *float64 {
	var sum float64
	var n int

	for _, order := range orders {
		if order.ExitAt == nil {
			continue
		}
		days := math.Floor(order.ExitAt.Sub(order.IntakeAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		sum += days
		n++
	}

	if n == 0 {
		return nil
	}

	avg := math.Round(sum/float64(n)*10) / 10
	return &avg
}

// StatusBreakdown counts orders per status
func StatusBreakdown(orders []models.RepairOrder) map[models.OrderStatus]int {
	counts := make(map[models.OrderStatus]int)
	for _, order := range orders {
		counts[order.Status]++
	}
	return counts
}

// MonthlyIncome loads the orders whose intake falls in the last `months`
// months and aggregates them. The window starts at the first day of the
// oldest month so partial months are never split.
func (s *ReportService) MonthlyIncome(months int) ([]MonthlyIncomeRow, error) {
	from := truncateMonth(time.Now()).AddDate(0, -(months - 1), 0)

	orders, _, err := s.orderRepo.List(repository.RepairOrderFilter{
		IntakeFrom: &from,
		Preload:    []string{"Service"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for income report: %w", err)
	}

	return MonthlyIncome(orders), nil
}

// AverageTurnaroundDays aggregates completed orders, optionally for a single
// mechanic.
func (s *ReportService) AverageTurnaroundDays(mechanicID *uint64) (*float64, error) {
	status := models.OrderStatusCompleted
	orders, _, err := s.orderRepo.List(repository.RepairOrderFilter{
		Status:     &status,
		MechanicID: mechanicID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load completed orders: %w", err)
	}

	return AverageTurnaroundDays(orders), nil
}

// StatusBreakdown counts all live orders per status
func (s *ReportService) StatusBreakdown() (map[models.OrderStatus]int, error) {
	orders, _, err := s.orderRepo.List(repository.RepairOrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	return StatusBreakdown(orders), nil
}

// CompletedInMonth counts a mechanic's orders completed during the month
// containing ref.
func (s *ReportService) CompletedInMonth(mechanicID uint64, ref time.Time) (int, error) {
	status := models.OrderStatusCompleted
	orders, _, err := s.orderRepo.List(repository.RepairOrderFilter{
		Status:     &status,
		MechanicID: &mechanicID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to load completed orders: %w", err)
	}

	monthStart := truncateMonth(ref)
	monthEnd := monthStart.AddDate(0, 1, 0)

	count := 0
	for _, order := range orders {
		if order.ExitAt == nil {
			continue
		}
		if !order.ExitAt.Before(monthStart) && order.ExitAt.Before(monthEnd) {
			count++
		}
	}

	return count, nil
}

func truncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
