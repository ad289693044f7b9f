package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

const ownerID = "5f0c6a3e-2b1d-4e8f-9a7b-1c2d3e4f5a6b"

func echoRefund(in ports.CreateRefundInput) *domain.Refund {
	return &domain.Refund{
		ID:          "r-1",
		Description: in.Description,
		Amount:      in.Amount,
		Status:      domain.RefundPending,
		UserID:      in.UserID,
		CreatedAt:   fixedTime,
		UpdatedAt:   fixedTime,
	}
}

func TestRefundHandler_Create(t *testing.T) {
	stub := &stubRefundService{
		createFn: func(_ context.Context, in ports.CreateRefundInput) (*domain.Refund, error) {
			if !in.Amount.Equal(decimal.RequireFromString("10.5")) {
				t.Fatalf("unexpected input: %+v", in)
			}
			return echoRefund(in), nil
		},
	}
	c, rec := newContext(http.MethodPost, "/refunds",
		`{"description":"Taxi","amount":10.50,"userId":"`+ownerID+`"}`)

	if err := NewRefundHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"amount":10.50`) {
		t.Fatalf("amount not rendered with two places: %s", rec.Body.String())
	}

	var resp map[string]any
	decode(t, rec, &resp)
	if resp["status"] != "PENDING" || resp["userId"] != ownerID {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRefundHandler_Create_IgnoresStatus(t *testing.T) {
	stub := &stubRefundService{
		createFn: func(_ context.Context, in ports.CreateRefundInput) (*domain.Refund, error) {
			return echoRefund(in), nil
		},
	}
	c, rec := newContext(http.MethodPost, "/refunds",
		`{"description":"Coffee","amount":"0.01","status":"APPROVED","userId":"`+ownerID+`"}`)

	if err := NewRefundHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"amount":0.01`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	var resp map[string]any
	decode(t, rec, &resp)
	if resp["status"] != "PENDING" {
		t.Fatalf("new refunds must start PENDING, got %v", resp["status"])
	}
}

func TestRefundHandler_Create_Validation(t *testing.T) {
	stub := &stubRefundService{
		createFn: func(context.Context, ports.CreateRefundInput) (*domain.Refund, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	cases := map[string]string{
		"zero amount":        `{"description":"Taxi","amount":0,"userId":"` + ownerID + `"}`,
		"negative amount":    `{"description":"Taxi","amount":-5,"userId":"` + ownerID + `"}`,
		"three decimals":     `{"description":"Taxi","amount":10.555,"userId":"` + ownerID + `"}`,
		"missing amount":     `{"description":"Taxi","userId":"` + ownerID + `"}`,
		"missing userId":     `{"description":"Taxi","amount":10}`,
		"malformed userId":   `{"description":"Taxi","amount":10,"userId":"42"}`,
		"missing desc":       `{"amount":10,"userId":"` + ownerID + `"}`,
		"amount too large":   `{"description":"Taxi","amount":100000000.00,"userId":"` + ownerID + `"}`,
		"non-numeric amount": `{"description":"Taxi","amount":"ten","userId":"` + ownerID + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/refunds", body)
			assertHTTPError(t, NewRefundHandler(stub).Create(c), http.StatusBadRequest)
		})
	}
}

func TestRefundHandler_Update_Partial(t *testing.T) {
	stub := &stubRefundService{
		updateFn: func(_ context.Context, id string, in ports.UpdateRefundInput) (*domain.Refund, error) {
			if in.Description != nil || in.Amount != nil {
				t.Fatalf("only status expected: %+v", in)
			}
			if in.Status == nil || *in.Status != domain.RefundRejected {
				t.Fatalf("unexpected status: %v", in.Status)
			}
			return &domain.Refund{ID: id, Amount: decimal.RequireFromString("10"), Status: *in.Status}, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/refunds/r-1", `{"status":"REJECTED"}`)
	c.SetParamNames("id")
	c.SetParamValues("r-1")

	if err := NewRefundHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"amount":10.00`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRefundHandler_ListByUser(t *testing.T) {
	stub := &stubRefundService{
		findByUserFn: func(_ context.Context, userID string) ([]domain.Refund, error) {
			if userID != ownerID {
				t.Fatalf("unexpected user %s", userID)
			}
			return []domain.Refund{{ID: "r-2", UserID: userID}, {ID: "r-1", UserID: userID}}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/refunds/user/"+ownerID, "")
	c.SetParamNames("userId")
	c.SetParamValues(ownerID)

	if err := NewRefundHandler(stub).ListByUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	decode(t, rec, &resp)
	if len(resp) != 2 || resp[0]["id"] != "r-2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRefundHandler_History(t *testing.T) {
	stub := &stubRefundService{
		historyFn: func(context.Context, string) ([]domain.AuditEvent, error) {
			return []domain.AuditEvent{
				{Entity: domain.EntityRefund, EntityID: "r-1", Action: domain.ActionCreated, OccurredAt: fixedTime},
				{
					Entity: domain.EntityRefund, EntityID: "r-1", Action: domain.ActionUpdated,
					Changes:    map[string]any{"status": map[string]any{"from": "PENDING", "to": "APPROVED"}},
					OccurredAt: fixedTime.Add(1),
				},
			}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/refunds/r-1/history", "")
	c.SetParamNames("id")
	c.SetParamValues("r-1")

	if err := NewRefundHandler(stub).History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	decode(t, rec, &resp)
	if len(resp) != 2 || resp[0]["action"] != "created" || resp[1]["changes"] == nil {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
