package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/pkg/bind"
	"github.com/shashiranjanraj/skirmish/pkg/response"
)

// EncounterController serves the encounter CRUD, search, and owner lookup.
type EncounterController struct {
	encounters *services.EncounterService
}

func NewEncounterController(encounters *services.EncounterService) *EncounterController {
	return &EncounterController{encounters: encounters}
}

type encounterRequest struct {
	Name         string   `json:"name"`
	CombatantIDs []string `json:"combatantIds"`
}

func (c *EncounterController) Create(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	var req encounterRequest
	if _, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	enc, err := c.encounters.Create(r.Context(), cl.ID, req.Name, req.CombatantIDs)
	if errors.Is(err, services.ErrInvalidReference) {
		response.Error(w, http.StatusBadRequest, "Invalid combatant ID")
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

	response.OK(w, enc)
}

// Update replaces the roster and optionally the name. A missing encounter is
// a 400 and a foreign one a 404; clients depend on that split.
func (c *EncounterController) Update(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	var req encounterRequest
	if _, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	enc, err := c.encounters.Update(r.Context(), param(r, "id"), cl, req.Name, req.CombatantIDs)
	switch {
	case errors.Is(err, services.ErrEncounterNotFound):
		response.Error(w, http.StatusBadRequest, "Encounter not found")
		return
	case errors.Is(err, services.ErrForbidden):
		response.NotFound(w, "Unauthorized request.")
		return
	case errors.Is(err, services.ErrInvalidReference):
		response.Error(w, http.StatusBadRequest, "Invalid combatant ID")
		return
	case err != nil:
		internal(w, r, err)
		return
	}

	response.OK(w, enc)
}

// Get hides foreign encounters behind the same 404 as absent ones.
func (c *EncounterController) Get(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	enc, err := c.encounters.Get(r.Context(), param(r, "id"), cl)
	if errors.Is(err, services.ErrEncounterNotFound) || errors.Is(err, services.ErrForbidden) {
		response.NotFound(w, "Encounter not found")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, enc)
}

func (c *EncounterController) List(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	all, err := c.encounters.List(r.Context(), cl)
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, all)
}

// Search matches the caller's encounters by name substring.
func (c *EncounterController) Search(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	name := r.URL.Query().Get("name")
	matches, err := c.encounters.Search(r.Context(), cl, name)
	switch {
	case errors.Is(err, services.ErrNoMatches):
		response.NotFound(w, "No encounters found")
		return
	case errors.Is(err, services.ErrForbidden):
		response.NotFound(w, "Unauthorized request.")
		return
	case err != nil:
		internal(w, r, err)
		return
	}

	response.OK(w, matches)
}

// Owner returns the public record of the encounter's owner. Mounted without
// authentication.
func (c *EncounterController) Owner(w http.ResponseWriter, r *http.Request) {
	user, err := c.encounters.OwnerOf(r.Context(), param(r, "id"))
	if errors.Is(err, services.ErrEncounterNotFound) || errors.Is(err, services.ErrUserNotFound) {
		response.NotFound(w, "Encounter not found")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, user)
}

func (c *EncounterController) Delete(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	err := c.encounters.Delete(r.Context(), param(r, "id"), cl)
	if errors.Is(err, services.ErrEncounterNotFound) || errors.Is(err, services.ErrForbidden) {
		response.NotFound(w, "Encounter not found")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.Message(w, "Encounter deleted successfully")
}
