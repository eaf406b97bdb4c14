package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/pkg/bind"
	"github.com/shashiranjanraj/skirmish/pkg/response"
)

// CombatantController serves the combatant catalog. Writes are mounted
// behind the admin gate; reads only require authentication.
type CombatantController struct {
	combatants *services.CombatantService
}

func NewCombatantController(combatants *services.CombatantService) *CombatantController {
	return &CombatantController{combatants: combatants}
}

type combatantRequest struct {
	Name       string  `json:"name" validate:"required"`
	Initiative float64 `json:"initiative"`
	Hitpoints  float64 `json:"hitpoints"`
}

// Updates must carry all three fields; a zero initiative or hitpoints is
// rejected the same as an absent one.
type combatantUpdateRequest struct {
	Name       string  `json:"name" validate:"required"`
	Initiative float64 `json:"initiative" validate:"required"`
	Hitpoints  float64 `json:"hitpoints" validate:"required"`
}

func (c *CombatantController) Create(w http.ResponseWriter, r *http.Request) {
	var req combatantRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		badRequest(w, errs)
		return
	}

	combatant, err := c.combatants.Create(r.Context(), req.Name, req.Initiative, req.Hitpoints)
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, combatant)
}

func (c *CombatantController) Update(w http.ResponseWriter, r *http.Request) {
	var req combatantUpdateRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		badRequest(w, errs)
		return
	}

	combatant, err := c.combatants.Update(r.Context(), param(r, "id"), req.Name, req.Initiative, req.Hitpoints)
	if errors.Is(err, services.ErrCombatantNotFound) {
		response.NotFound(w, "Combatant not found!")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, combatant)
}

// Delete removes a combatant unless an encounter still references it.
func (c *CombatantController) Delete(w http.ResponseWriter, r *http.Request) {
	err := c.combatants.Delete(r.Context(), param(r, "id"))
	switch {
	case errors.Is(err, services.ErrCombatantInUse):
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrCombatantNotFound):
		response.NotFound(w, "Combatant not found!")
		return
	case err != nil:
		internal(w, r, err)
		return
	}

	response.Message(w, "Combatant deleted successfully")
}

func (c *CombatantController) Get(w http.ResponseWriter, r *http.Request) {
	combatant, err := c.combatants.Get(r.Context(), param(r, "id"))
	if errors.Is(err, services.ErrCombatantNotFound) {
		response.NotFound(w, "Combatant not found!")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, combatant)
}

func (c *CombatantController) List(w http.ResponseWriter, r *http.Request) {
	all, err := c.combatants.List(r.Context())
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, all)
}
