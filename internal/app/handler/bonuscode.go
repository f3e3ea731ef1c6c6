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

type BonusCodeHandler struct {
	codes storage.BonusCodeRepository
	audit auditlog.Recorder
}

func NewBonusCodeHandler(codes storage.BonusCodeRepository, audit auditlog.Recorder) *BonusCodeHandler {
	return &BonusCodeHandler{
		codes: codes,
		audit: audit,
	}
}

func (h *BonusCodeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.BonusCode.List")
	l.Debug().Send()

	mm, err := h.codes.All(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	WriteResponse(w, mm, http.StatusOK)
}

// Issue generates a fresh code. A generated-code collision is retried a few
// times before giving up; the unique index is the arbiter.
func (h *BonusCodeHandler) Issue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.BonusCode.Issue")
	l.Debug().Send()

	in := struct {
		Amount decimal.Decimal `json:"amount" validate:"required"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	if in.Amount.IsNegative() || in.Amount.IsZero() {
		WriteError(w, fmt.Errorf("%w: amount must be positive", apperr.ErrInvalidInput), http.StatusUnprocessableEntity)
		return
	}

	var m *model.BonusCode
	for attempt := 0; attempt < 3; attempt++ {
		code, err := model.GenerateBonusCode()
		if err != nil {
			l.Error().Err(err).Send()
			WriteError(w, err, http.StatusInternalServerError)
			return
		}

		m, err = h.codes.Create(ctx, &model.BonusCode{Code: code, Amount: in.Amount})
		if err == nil {
			break
		}
		if errors.Is(err, apperr.ErrConflict) {
			m = nil
			continue
		}

		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	if m == nil {
		WriteError(w, apperr.ErrConflict, http.StatusConflict)
		return
	}

	h.audit.Append(ctx, actorName(ctx), "bonus_code_issue",
		fmt.Sprintf("bonus code %s issued, amount %s", m.Code, m.Amount))

	WriteResponse(w, m, http.StatusOK)
}

func (h *BonusCodeHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.BonusCode.Deactivate")
	l.Debug().Send()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err, http.StatusUnprocessableEntity)
		return
	}

	if err := h.codes.Deactivate(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, err, http.StatusNotFound)
			return
		}
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	h.audit.Append(ctx, actorName(ctx), "bonus_code_deactivate",
		fmt.Sprintf("bonus code %s deactivated", id))

	w.WriteHeader(http.StatusNoContent)
}
