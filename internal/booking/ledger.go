package booking

import (
	"pilgrimage-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

// Settlement is the derived payment position of a reservation. None of it
// is stored: it is recomputed from the room tree and the payment rows.
type Settlement struct {
	Total    decimal.Decimal
	Paid     decimal.Decimal
	Balance  decimal.Decimal
	Status   entity.PaymentStatus
	Warnings []Warning
}

func TotalPaid(payments []entity.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// ClassifyPayment is COMPLETED iff paid >= total.
func ClassifyPayment(paid, total decimal.Decimal) entity.PaymentStatus {
	if paid.GreaterThanOrEqual(total) {
		return entity.PaymentStatusCompleted
	}
	return entity.PaymentStatusPending
}

// Settle runs the cost calculator and reconciles the payments against it.
func Settle(table PriceTable, rooms []entity.ReservationRoom, payments []entity.Payment) Settlement {
	cost := ComputeTotal(table, rooms)
	paid := TotalPaid(payments)

	return Settlement{
		Total:    cost.Total,
		Paid:     paid,
		Balance:  cost.Total.Sub(paid),
		Status:   ClassifyPayment(paid, cost.Total),
		Warnings: cost.Warnings,
	}
}
