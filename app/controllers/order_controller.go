package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/pkg/bind"
	"github.com/shashiranjanraj/skirmish/pkg/response"
)

// OrderController mirrors the encounter surface for orders: create, update,
// get, list, and owner lookup, with the same existence-hiding 404s.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type orderRequest struct {
	ItemIDs []string `json:"itemIds"`
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	var req orderRequest
	if _, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.orders.Create(r.Context(), cl.ID, req.ItemIDs)
	if errors.Is(err, services.ErrInvalidReference) {
		response.Error(w, http.StatusBadRequest, "Invalid item ID")
		return
	}
	if errors.Is(err, services.ErrUserNotFound) {
		response.Unauthorized(w, "Unauthorized. User not found.")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, order)
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	var req orderRequest
	if _, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.orders.Update(r.Context(), param(r, "id"), cl, req.ItemIDs)
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		response.Error(w, http.StatusBadRequest, "Order not found")
		return
	case errors.Is(err, services.ErrForbidden):
		response.NotFound(w, "Unauthorized request.")
		return
	case errors.Is(err, services.ErrInvalidReference):
		response.Error(w, http.StatusBadRequest, "Invalid item ID")
		return
	case err != nil:
		internal(w, r, err)
		return
	}

	response.OK(w, order)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	order, err := c.orders.Get(r.Context(), param(r, "id"), cl)
	if errors.Is(err, services.ErrOrderNotFound) || errors.Is(err, services.ErrForbidden) {
		response.NotFound(w, "Order not found")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, order)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	all, err := c.orders.List(r.Context(), cl)
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, all)
}

// Owner returns the public record of the order's owner. Mounted without
// authentication, matching the encounter owner lookup.
func (c *OrderController) Owner(w http.ResponseWriter, r *http.Request) {
	user, err := c.orders.OwnerOf(r.Context(), param(r, "id"))
	if errors.Is(err, services.ErrOrderNotFound) || errors.Is(err, services.ErrUserNotFound) {
		response.NotFound(w, "Order not found")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, user)
}
