package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/goalie-lambda/internal/auth"
	"github.com/saulo-duarte/goalie-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	var dto CreateGoalDTO
	if !decode(w, r, &dto) {
		return
	}

	response, err := h.service.Create(r.Context(), userID, dto)
	if err != nil {
		writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusCreated, response)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	responses, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	response, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	var dto UpdateGoalDTO
	if !decode(w, r, &dto) {
		return
	}

	response, err := h.service.Update(r.Context(), id, userID, dto)
	if err != nil {
		writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "Goal deleted successfully.",
	})
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	response, err := h.service.Complete(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) AddContribution(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	var dto ContributionDTO
	if !decode(w, r, &dto) {
		return
	}

	response, err := h.service.PostContribution(r.Context(), id, userID, dto)
	if err != nil {
		writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func requester(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		config.Error(w, http.StatusUnauthorized, "Could not validate credentials.")
		return uuid.Nil, false
	}
	return userID, true
}

func goalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid goal id")
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		config.Error(w, http.StatusUnauthorized, "Could not validate credentials.")
	case errors.Is(err, ErrForbidden):
		config.Error(w, http.StatusForbidden, "You are not authorized to access this goal.")
	case errors.Is(err, ErrGoalNotFound):
		config.Error(w, http.StatusNotFound, "Goal not found.")
	case errors.Is(err, ErrInvalidArgument):
		config.Error(w, http.StatusBadRequest, clientMessage(err))
	default:
		config.WithContext(r.Context()).WithError(err).Error("Unhandled goal error")
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
