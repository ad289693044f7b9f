package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.EffectiveRole(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func toLoginResponse(res *ports.LoginResult) loginResponse {
	return loginResponse{
		AccessToken: res.AccessToken,
		User: loginUser{
			ID:    res.User.ID,
			Name:  res.User.Name,
			Email: res.User.Email,
			Role:  res.User.EffectiveRole(),
		},
	}
}

func toClientResponse(cl *domain.Client) clientResponse {
	return clientResponse{
		ID:            cl.ID,
		CompanyName:   cl.CompanyName,
		ContactPerson: cl.ContactPerson,
		CNPJ:          cl.CNPJ,
		CreatedAt:     cl.CreatedAt,
		UpdatedAt:     cl.UpdatedAt,
	}
}

func toClientResponses(clients []domain.Client) []clientResponse {
	out := make([]clientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, toClientResponse(&clients[i]))
	}
	return out
}

func toRefundResponse(r *domain.Refund) refundResponse {
	return refundResponse{
		ID:          r.ID,
		Description: r.Description,
		Amount:      money(r.Amount),
		Status:      string(r.Status),
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRefundResponses(refunds []domain.Refund) []refundResponse {
	out := make([]refundResponse, 0, len(refunds))
	for i := range refunds {
		out = append(out, toRefundResponse(&refunds[i]))
	}
	return out
}

func toRefundReportRows(refunds []domain.Refund, now time.Time) []refundReportRow {
	out := make([]refundReportRow, 0, len(refunds))
	for i := range refunds {
		out = append(out, refundReportRow{
			refundResponse:    toRefundResponse(&refunds[i]),
			DaysSinceCreation: refunds[i].DaysSinceCreation(now),
		})
	}
	return out
}

func toAuditEventResponses(events []domain.AuditEvent) []auditEventResponse {
	out := make([]auditEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, auditEventResponse{
			Entity:     ev.Entity,
			EntityID:   ev.EntityID,
			Action:     ev.Action,
			Changes:    ev.Changes,
			OccurredAt: ev.OccurredAt,
		})
	}
	return out
}

func toDashboardSummaryResponse(s *domain.DashboardSummary) dashboardSummaryResponse {
	return dashboardSummaryResponse{
		Refunds: refundStatsResponse{
			TotalRefunds: s.Refunds.TotalRefunds,
			TotalAmount:  money(s.Refunds.TotalAmount),
			ByStatus: statusBreakdownResponse{
				Pending:  s.Refunds.ByStatus.Pending,
				Approved: s.Refunds.ByStatus.Approved,
				Rejected: s.Refunds.ByStatus.Rejected,
			},
			AverageAmount: money(s.Refunds.AverageAmount),
		},
		Users: userStatsResponse{
			TotalUsers:          s.Users.TotalUsers,
			ActiveUsers:         s.Users.ActiveUsers,
			UsersWithoutRefunds: s.Users.UsersWithoutRefunds,
		},
		Clients: clientStatsResponse{
			TotalClients:        s.Clients.TotalClients,
			TotalWithRefunds:    s.Clients.TotalWithRefunds,
			TotalWithoutRefunds: s.Clients.TotalWithoutRefunds,
			ClosedContracts:     s.Clients.ClosedContracts,
		},
		GeneratedAt: s.GeneratedAt,
	}
}
