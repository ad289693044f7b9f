package handler

import (
	"encoding/json"
	"time"
)

type refundStatsResponse struct {
	TotalRefunds  int64                   `json:"totalRefunds"`
	TotalAmount   json.Number             `json:"totalAmount" swaggertype:"number"`
	ByStatus      statusBreakdownResponse `json:"byStatus"`
	AverageAmount json.Number             `json:"averageAmount" swaggertype:"number"`
}

type statusBreakdownResponse struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type userStatsResponse struct {
	TotalUsers          int64 `json:"totalUsers"`
	ActiveUsers         int64 `json:"activeUsers"`
	UsersWithoutRefunds int64 `json:"usersWithoutRefunds"`
}

type clientStatsResponse struct {
	TotalClients        int64 `json:"totalClients"`
	TotalWithRefunds    int64 `json:"totalWithRefunds"`
	TotalWithoutRefunds int64 `json:"totalWithoutRefunds"`
	ClosedContracts     int64 `json:"closedContracts"`
}

type dashboardSummaryResponse struct {
	Refunds     refundStatsResponse `json:"refunds"`
	Users       userStatsResponse   `json:"users"`
	Clients     clientStatsResponse `json:"clients"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// refundReportRow is a refund as listed by the dashboard endpoints.
type refundReportRow struct {
	refundResponse
	DaysSinceCreation int `json:"daysSinceCreation"`
}
