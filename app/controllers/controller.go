// Package controllers translates HTTP requests into service calls and
// service results into the wire format. Controllers own the status-code
// mapping; services only return sentinel errors.
package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/pkg/logger"
	"github.com/shashiranjanraj/skirmish/pkg/middleware"
	"github.com/shashiranjanraj/skirmish/pkg/response"
)

// caller extracts the authenticated identity placed in the context by the
// auth middleware. ok is false on routes mounted without it.
func caller(r *http.Request) (services.Caller, bool) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		return services.Caller{}, false
	}
	return services.Caller{ID: claims.UserID, Roles: claims.Roles}, true
}

func param(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// internal logs an unexpected service error and writes a generic 500.
func internal(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithCtx(r.Context()).Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
	response.Internal(w)
}

// badRequest writes a 400 with the first validation message, matching the
// one-error-at-a-time bodies the clients already parse.
func badRequest(w http.ResponseWriter, errs map[string]string) {
	for _, msg := range errs {
		response.Error(w, http.StatusBadRequest, msg)
		return
	}
	response.Error(w, http.StatusBadRequest, "invalid request")
}
