package handler

import (
	"errors"
	"net/http"
	"strconv"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/logger"
	"backoffice/internal/app/model"
	"backoffice/internal/app/storage"

	"github.com/go-chi/chi/v5"
)

const defaultProfileLimit = 100

type ProfileHandler struct {
	profiles storage.ProfileRepository
}

func NewProfileHandler(profiles storage.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
	}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Profile.List")
	l.Debug().Send()

	limit := defaultProfileLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, apperr.ErrInvalidInput, http.StatusUnprocessableEntity)
			return
		}
		limit = n
	}

	mm, err := h.profiles.All(ctx, limit)
	if err != nil {
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	WriteResponse(w, mm, http.StatusOK)
}

// ByPhone is the point lookup used before a deposit search: exact phone
// match, {id, full_name} shape.
func (h *ProfileHandler) ByPhone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Profile.ByPhone")
	l.Debug().Send()

	phone := chi.URLParam(r, "phone")
	if !model.ValidPhone(phone) {
		writeValidationErrors(w, ValidationErrors{{
			Msg:   "malformed phone",
			Param: "phone",
			Value: phone,
		}})
		return
	}

	m, err := h.profiles.ReadByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, err, http.StatusNotFound)
			return
		}
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	out := struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
	}{m.ID.String(), m.FullName}

	WriteResponse(w, out, http.StatusOK)
}
