package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/pkg/bind"
	"github.com/shashiranjanraj/skirmish/pkg/response"
)

// ItemController serves the item catalog; same shape as the combatant
// catalog but without a deletion guard.
type ItemController struct {
	items *services.ItemService
}

func NewItemController(items *services.ItemService) *ItemController {
	return &ItemController{items: items}
}

type itemRequest struct {
	Title string  `json:"title" validate:"required"`
	Price float64 `json:"price"`
}

func (c *ItemController) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		badRequest(w, errs)
		return
	}

	item, err := c.items.Create(r.Context(), req.Title, req.Price)
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, item)
}

func (c *ItemController) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		badRequest(w, errs)
		return
	}

	item, err := c.items.Update(r.Context(), param(r, "id"), req.Title, req.Price)
	if errors.Is(err, services.ErrItemNotFound) {
		response.NotFound(w, "Item not found!")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, item)
}

func (c *ItemController) Delete(w http.ResponseWriter, r *http.Request) {
	err := c.items.Delete(r.Context(), param(r, "id"))
	if errors.Is(err, services.ErrItemNotFound) {
		response.NotFound(w, "Item not found!")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.Message(w, "Item deleted successfully")
}

func (c *ItemController) Get(w http.ResponseWriter, r *http.Request) {
	item, err := c.items.Get(r.Context(), param(r, "id"))
	if errors.Is(err, services.ErrItemNotFound) {
		response.NotFound(w, "Item not found!")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, item)
}

func (c *ItemController) List(w http.ResponseWriter, r *http.Request) {
	all, err := c.items.List(r.Context())
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, all)
}
