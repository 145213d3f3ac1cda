package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"planets-catalog/internal/planet"
	"planets-catalog/internal/shared/errors"
	"planets-catalog/internal/shared/response"
)

type PlanetHandler struct {
	service *planet.Service
}

func NewPlanetHandler(service *planet.Service) *PlanetHandler {
	return &PlanetHandler{service: service}
}

// Collection serves /api/planets.
func (h *PlanetHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		response.Error(w, r, slog.With("handler", "planets"), errors.MethodNotAllowed(r.Method))
	}
}

// Item serves /api/planets/{id}.
func (h *PlanetHandler) Item(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPatch:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		response.Error(w, r, slog.With("handler", "planet"), errors.MethodNotAllowed(r.Method))
	}
}

// Atmosphere serves /api/planets/{id}/atmosphere.
func (h *PlanetHandler) Atmosphere(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		h.setAtmosphere(w, r)
	case http.MethodDelete:
		h.removeAtmosphere(w, r)
	default:
		response.Error(w, r, slog.With("handler", "planet_atmosphere"), errors.MethodNotAllowed(r.Method))
	}
}

func (h *PlanetHandler) list(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_planets")

	filter := planet.ListFilter{}
	query := r.URL.Query()

	if typeStr := query.Get("type"); typeStr != "" {
		t, err := planet.ParsePlanetType(typeStr)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		filter.Type = t
	}

	var err error
	if filter.Limit, err = queryInt(query.Get("limit")); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid limit", err))
		return
	}
	if filter.Offset, err = queryInt(query.Get("offset")); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid offset", err))
		return
	}

	planets, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	resp := PlanetListResponse{Planets: make([]PlanetResponse, 0, len(planets))}
	for _, p := range planets {
		resp.Planets = append(resp.Planets, toResponse(p))
	}
	resp.Count = len(resp.Planets)

	response.Success(w, http.StatusOK, resp)
}

func (h *PlanetHandler) get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_planet")

	id, err := planetID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, toResponse(p))
}

func (h *PlanetHandler) create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_planet")

	var req CreatePlanetRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	attrs, err := req.toAttributes()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.Create(r.Context(), attrs)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.Header().Set("Location", "/api/planets/"+strconv.Itoa(p.ID()))
	response.Success(w, http.StatusCreated, toResponse(p))
}

func (h *PlanetHandler) update(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "update_planet")

	id, err := planetID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req UpdatePlanetRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, toResponse(p))
}

func (h *PlanetHandler) delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_planet")

	id, err := planetID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.NoContent(w)
}

func (h *PlanetHandler) setAtmosphere(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "set_atmosphere")

	id, err := planetID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req AtmosphereRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	attrs, err := req.toAttributes()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.SetAtmosphere(r.Context(), id, attrs)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, toResponse(p))
}

func (h *PlanetHandler) removeAtmosphere(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "remove_atmosphere")

	id, err := planetID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.RemoveAtmosphere(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, toResponse(p))
}

func planetID(r *http.Request) (int, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return 0, errors.Validation("planet ID is required")
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, errors.Validationf("invalid planet ID %q", idStr)
	}
	return id, nil
}

func queryInt(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
