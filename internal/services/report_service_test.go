package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/workshop-manager/workshop-manager/internal/models"
)

func orderAt(intake time.Time, cost float64) models.RepairOrder {
	return models.RepairOrder{
		IntakeAt: intake,
		Service:  models.Service{ID: 1, Cost: cost},
	}
}

func TestMonthlyIncome_GroupsByIntakeMonth(t *testing.T) {
	jan := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)

	rows := MonthlyIncome([]models.RepairOrder{
		orderAt(jan, 100),
		orderAt(jan.AddDate(0, 0, 10), 50),
		orderAt(feb, 200),
	})

	require.Len(t, rows, 2)
	require.Equal(t, "Jan 2026", rows[0].Label)
	require.Equal(t, 150.0, rows[0].Total)
	require.Equal(t, 2, rows[0].Count)
	require.Equal(t, "Feb 2026", rows[1].Label)
	require.Equal(t, 200.0, rows[1].Total)
	require.Equal(t, 1, rows[1].Count)
}

func TestMonthlyIncome_OrdersAcrossYearBoundary(t *testing.T) {
	dec := time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	rows := MonthlyIncome([]models.RepairOrder{
		orderAt(jan, 10),
		orderAt(dec, 20),
	})

	require.Len(t, rows, 2)
	require.Equal(t, "Dec 2025", rows[0].Label)
	require.Equal(t, "Jan 2026", rows[1].Label)
}

func TestMonthlyIncome_MissingServiceCountsAsZero(t *testing.T) {
	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	rows := MonthlyIncome([]models.RepairOrder{
		{IntakeAt: jan}, // no service loaded
		orderAt(jan, 80),
	})

	require.Len(t, rows, 1)
	require.Equal(t, 80.0, rows[0].Total)
	require.Equal(t, 2, rows[0].Count)
}

func TestMonthlyIncome_Empty(t *testing.T) {
	require.Empty(t, MonthlyIncome(nil))
}

func TestAverageTurnaroundDays(t *testing.T) {
	intake := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)

	completed := func(days int) models.RepairOrder {
		exit := intake.AddDate(0, 0, days)
		return models.RepairOrder{IntakeAt: intake, ExitAt: &exit}
	}

	avg := AverageTurnaroundDays([]models.RepairOrder{
		completed(2),
		completed(4),
		completed(6),
	})
	require.NotNil(t, avg)
	require.Equal(t, 4.0, *avg)
}

func TestAverageTurnaroundDays_RoundsToOneDecimal(t *testing.T) {
	intake := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)

	completed := func(days int) models.RepairOrder {
		exit := intake.AddDate(0, 0, days)
		return models.RepairOrder{IntakeAt: intake, ExitAt: &exit}
	}

	avg := AverageTurnaroundDays([]models.RepairOrder{
		completed(1),
		completed(2),
		completed(2),
	})
	require.NotNil(t, avg)
	require.Equal(t, 1.7, *avg)
}

func TestAverageTurnaroundDays_SkipsOpenOrders(t *testing.T) {
	intake := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	exit := intake.AddDate(0, 0, 3)

	avg := AverageTurnaroundDays([]models.RepairOrder{
		{IntakeAt: intake, ExitAt: &exit},
		{IntakeAt: intake}, // still open
	})
	require.NotNil(t, avg)
	require.Equal(t, 3.0, *avg)
}

func TestAverageTurnaroundDays_NilWhenNothingCompleted(t *testing.T) {
	require.Nil(t, AverageTurnaroundDays(nil))
	require.Nil(t, AverageTurnaroundDays([]models.RepairOrder{{IntakeAt: time.Now()}}))
}

func TestStatusBreakdown(t *testing.T) {
	counts := StatusBreakdown([]models.RepairOrder{
		{Status: models.OrderStatusPending},
		{Status: models.OrderStatusPending},
		{Status: models.OrderStatusCompleted},
	})

	require.Equal(t, 2, counts[models.OrderStatusPending])
	require.Equal(t, 1, counts[models.OrderStatusCompleted])
	require.Zero(t, counts[models.OrderStatusCancelled])
}
