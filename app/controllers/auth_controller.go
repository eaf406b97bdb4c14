package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/pkg/bind"
	"github.com/shashiranjanraj/skirmish/pkg/response"
)

// AuthController serves signup, login, and password updates.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type signupRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Signup registers a user and returns a signed token. A missing password is
// rejected before any store access.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		badRequest(w, errs)
		return
	}
	if req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Password required.")
		return
	}

	token, err := c.auth.Signup(r.Context(), req.Email, req.Password, req.Roles)
	if errors.Is(err, services.ErrEmailTaken) {
		response.Error(w, http.StatusConflict, "User already exists with this email.")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, tokenResponse{Token: token})
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password produce the same response.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		badRequest(w, errs)
		return
	}
	if req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Password required.")
		return
	}

	token, err := c.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Unauthorized(w, "Invalid email or password.")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, tokenResponse{Token: token})
}

// UpdatePassword re-hashes and stores a new password for the caller.
func (c *AuthController) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	cl, ok := caller(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized. Token missing.")
		return
	}

	var req passwordRequest
	if _, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Password required.")
		return
	}

	user, err := c.auth.UpdatePassword(r.Context(), cl.ID, req.Password)
	if errors.Is(err, services.ErrUserNotFound) {
		response.NotFound(w, "User not found.")
		return
	}
	if err != nil {
		internal(w, r, err)
		return
	}

	response.OK(w, user)
}
