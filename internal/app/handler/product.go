package handler

import (
	"errors"
	"fmt"
	"net/http"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/auditlog"
	"backoffice/internal/app/logger"
	"backoffice/internal/app/model"
	"backoffice/internal/app/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	products storage.ProductRepository
	audit    auditlog.Recorder
}

func NewProductHandler(products storage.ProductRepository, audit auditlog.Recorder) *ProductHandler {
	return &ProductHandler{
		products: products,
		audit:    audit,
	}
}

type productInput struct {
	Name         string          `json:"name" validate:"required,min=1,max=128"`
	MinAmount    decimal.Decimal `json:"min_amount" validate:"required"`
	YieldRate    decimal.Decimal `json:"yield_rate" validate:"required"`
	DurationDays int             `json:"duration_days" validate:"required,gt=0"`
	Active       bool            `json:"active"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Product.List")
	l.Debug().Send()

	mm, err := h.products.All(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	WriteResponse(w, mm, http.StatusOK)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Product.Create")
	l.Debug().Send()

	in := productInput{}
	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	m, err := h.products.Create(ctx, &model.Product{
		Name:         in.Name,
		MinAmount:    in.MinAmount,
		YieldRate:    in.YieldRate,
		DurationDays: in.DurationDays,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			WriteError(w, err, http.StatusConflict)
			return
		}
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	h.audit.Append(ctx, actorName(ctx), "product_create",
		fmt.Sprintf("product %s (%s) created", m.ID, m.Name))

	WriteResponse(w, m, http.StatusOK)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Product.Update")
	l.Debug().Send()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err, http.StatusUnprocessableEntity)
		return
	}

	in := productInput{}
	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	m, err := h.products.Update(ctx, &model.Product{
		ID:           id,
		Name:         in.Name,
		MinAmount:    in.MinAmount,
		YieldRate:    in.YieldRate,
		DurationDays: in.DurationDays,
		Active:       in.Active,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, err, http.StatusNotFound)
			return
		}
		if errors.Is(err, apperr.ErrConflict) {
			WriteError(w, err, http.StatusConflict)
			return
		}
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	h.audit.Append(ctx, actorName(ctx), "product_update",
		fmt.Sprintf("product %s (%s) updated", m.ID, m.Name))

	WriteResponse(w, m, http.StatusOK)
}

func (h *ProductHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Product.Deactivate")
	l.Debug().Send()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err, http.StatusUnprocessableEntity)
		return
	}

	if err := h.products.Deactivate(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, err, http.StatusNotFound)
			return
		}
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	h.audit.Append(ctx, actorName(ctx), "product_deactivate",
		fmt.Sprintf("product %s deactivated", id))

	w.WriteHeader(http.StatusNoContent)
}
