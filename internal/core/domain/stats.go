package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusTotal is the count and amount sum of refunds in one status.
type StatusTotal struct {
	Status RefundStatus
	Count  int64
	Sum    decimal.Decimal
}

// RefundCounts holds the raw aggregates read from storage.
type RefundCounts struct {
	Total    int64
	Sum      decimal.Decimal
	ByStatus []StatusTotal
}

// Count returns the number of refunds in status s.
func (c RefundCounts) Count(s RefundStatus) int64 {
	for _, st := range c.ByStatus {
		if st.Status == s {
			return st.Count
		}
	}
	return 0
}

type RefundStats struct {
	TotalRefunds  int64
	TotalAmount   decimal.Decimal
	ByStatus      StatusBreakdown
	AverageAmount decimal.Decimal
}

type StatusBreakdown struct {
	Pending  int64
	Approved int64
	Rejected int64
}

// NewRefundStats derives totals and the average from raw counts. Money is
// rounded half away from zero to two places; an empty set averages to 0.
func NewRefundStats(c RefundCounts) RefundStats {
	avg := decimal.Zero
	if c.Total > 0 {
		avg = c.Sum.Div(decimal.NewFromInt(c.Total))
	}
	return RefundStats{
		TotalRefunds: c.Total,
		TotalAmount:  c.Sum.Round(2),
		ByStatus: StatusBreakdown{
			Pending:  c.Count(RefundPending),
			Approved: c.Count(RefundApproved),
			Rejected: c.Count(RefundRejected),
		},
		AverageAmount: avg.Round(2),
	}
}

type UserStats struct {
	TotalUsers          int64
	ActiveUsers         int64
	UsersWithoutRefunds int64
}

// ClientStats keeps TotalWithRefunds at zero: clients and refunds are not linked.
type ClientStats struct {
	TotalClients        int64
	TotalWithRefunds    int64
	TotalWithoutRefunds int64
	ClosedContracts     int64
}

type DashboardSummary struct {
	Refunds     RefundStats
	Users       UserStats
	Clients     ClientStats
	GeneratedAt time.Time
}
