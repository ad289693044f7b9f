package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/engnet/backoffice-api/internal/api/metrics"
	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

type ClientHandler struct {
	clients ports.ClientService
}

func NewClientHandler(clients ports.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// Create registers a client company.
//
// @Summary      Create client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      createClientRequest  true  "Client"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client, err := h.clients.Create(c.Request().Context(), ports.CreateClientInput{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		CNPJ:          req.CNPJ,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues(domain.EntityClient, domain.ActionCreated).Inc()
	return c.JSON(http.StatusCreated, toClientResponse(client))
}

// List returns every client.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Success      200  {array}  clientResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.clients.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponses(clients))
}

// Get returns a single client.
//
// @Summary      Get client
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.clients.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Update applies a partial update to a client.
//
// @Summary      Update client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Client ID"
// @Param        body  body      updateClientRequest  true  "Fields to change"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req updateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client, err := h.clients.Update(c.Request().Context(), c.Param("id"), ports.UpdateClientInput{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		CNPJ:          req.CNPJ,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues(domain.EntityClient, domain.ActionUpdated).Inc()
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Delete removes a client.
//
// @Summary      Delete client
// @Tags         clients
// @Param        id  path  string  true  "Client ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.clients.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.EntityWritesTotal.WithLabelValues(domain.EntityClient, domain.ActionDeleted).Inc()
	return c.NoContent(http.StatusNoContent)
}
