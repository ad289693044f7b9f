package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/engnet/backoffice-api/internal/api/metrics"
	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

type RefundHandler struct {
	refunds ports.RefundService
}

func NewRefundHandler(refunds ports.RefundService) *RefundHandler {
	return &RefundHandler{refunds: refunds}
}

func refundStatus(raw *string) *domain.RefundStatus {
	if raw == nil {
		return nil
	}
	s := domain.RefundStatus(*raw)
	return &s
}

// Create registers a refund request for an existing user.
//
// @Summary      Create refund
// @Tags         refunds
// @Accept       json
// @Produce      json
// @Param        body  body      createRefundRequest  true  "Refund"
// @Success      201   {object}  refundResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /refunds [post]
func (h *RefundHandler) Create(c echo.Context) error {
	var req createRefundRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	refund, err := h.refunds.Create(c.Request().Context(), ports.CreateRefundInput{
		Description: req.Description,
		Amount:      *req.Amount,
		UserID:      req.UserID,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues(domain.EntityRefund, domain.ActionCreated).Inc()
	metrics.RefundAmountTotal.WithLabelValues(string(refund.Status)).Add(refund.Amount.InexactFloat64())
	return c.JSON(http.StatusCreated, toRefundResponse(refund))
}

// List returns every refund, newest first.
//
// @Summary      List refunds
// @Tags         refunds
// @Produce      json
// @Success      200  {array}  refundResponse
// @Router       /refunds [get]
func (h *RefundHandler) List(c echo.Context) error {
	refunds, err := h.refunds.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRefundResponses(refunds))
}

// Get returns a single refund.
//
// @Summary      Get refund
// @Tags         refunds
// @Produce      json
// @Param        id   path      string  true  "Refund ID"
// @Success      200  {object}  refundResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /refunds/{id} [get]
func (h *RefundHandler) Get(c echo.Context) error {
	refund, err := h.refunds.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRefundResponse(refund))
}

// ListByUser returns the refunds owned by a user.
//
// @Summary      List refunds of a user
// @Tags         refunds
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {array}   refundResponse
// @Failure      400     {object}  ErrorResponse
// @Router       /refunds/user/{userId} [get]
func (h *RefundHandler) ListByUser(c echo.Context) error {
	refunds, err := h.refunds.FindByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRefundResponses(refunds))
}

// Update applies a partial update to a refund.
//
// @Summary      Update refund
// @Tags         refunds
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Refund ID"
// @Param        body  body      updateRefundRequest  true  "Fields to change"
// @Success      200   {object}  refundResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /refunds/{id} [put]
func (h *RefundHandler) Update(c echo.Context) error {
	var req updateRefundRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	refund, err := h.refunds.Update(c.Request().Context(), c.Param("id"), ports.UpdateRefundInput{
		Description: req.Description,
		Amount:      req.Amount,
		Status:      refundStatus(req.Status),
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues(domain.EntityRefund, domain.ActionUpdated).Inc()
	return c.JSON(http.StatusOK, toRefundResponse(refund))
}

// Delete removes a refund.
//
// @Summary      Delete refund
// @Tags         refunds
// @Param        id  path  string  true  "Refund ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /refunds/{id} [delete]
func (h *RefundHandler) Delete(c echo.Context) error {
	if err := h.refunds.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.EntityWritesTotal.WithLabelValues(domain.EntityRefund, domain.ActionDeleted).Inc()
	return c.NoContent(http.StatusNoContent)
}

// History returns the audit trail of a refund, oldest first.
//
// @Summary      Refund history
// @Tags         refunds
// @Produce      json
// @Param        id   path      string  true  "Refund ID"
// @Success      200  {array}   auditEventResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /refunds/{id}/history [get]
func (h *RefundHandler) History(c echo.Context) error {
	events, err := h.refunds.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuditEventResponses(events))
}
