package handler

import (
	"errors"
	"net/http"
	"time"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/logger"
	"backoffice/internal/app/model"
	"backoffice/internal/app/service/review"
	"backoffice/pkg/receipt"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ReviewHandler struct {
	review  *review.Service
	receipt *receipt.Service
}

func NewReviewHandler(rs *review.Service, rc *receipt.Service) *ReviewHandler {
	return &ReviewHandler{
		review:  rs,
		receipt: rc,
	}
}

// Locate finds the single most recent transaction matching phone, declared
// status and optional date. 404 is the legitimate empty state; transport
// failures are 500.
func (h *ReviewHandler) Locate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Review.Locate")
	l.Debug().Send()

	in := struct {
		Phone     string `json:"phone" validate:"required,msisdn_ao"`
		Direction string `json:"direction" validate:"required"`
		Status    string `json:"status" validate:"required"`
		Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	d, err := model.ParseDirection(in.Direction)
	if err != nil {
		WriteError(w, err, http.StatusUnprocessableEntity)
		return
	}

	q := review.LocateQuery{
		Phone:     in.Phone,
		Direction: d,
		RawStatus: in.Status,
	}

	if in.Date != "" {
		day, err := time.ParseInLocation(dateLayout, in.Date, time.Local)
		if err != nil {
			WriteError(w, err, http.StatusUnprocessableEntity)
			return
		}
		q.OnDate = &day
	}

	m, err := h.review.Locate(ctx, q)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, err, http.StatusNotFound)
			return
		}
		if errors.Is(err, apperr.ErrInvalidInput) {
			WriteError(w, err, http.StatusUnprocessableEntity)
			return
		}
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	WriteResponse(w, m, http.StatusOK)
}

// Settle applies the operator-selected terminal status. The previous status
// the operator observed rides along so the write can be conditional; 409
// means another session got there first.
func (h *ReviewHandler) Settle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Review.Settle")
	l.Debug().Send()

	d, id, ok := pathTransaction(w, r)
	if !ok {
		return
	}

	in := struct {
		NewStatus  string `json:"new_status" validate:"required"`
		PrevStatus string `json:"prev_status" validate:"required"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	m := &model.Transaction{
		ID:        id,
		Direction: d,
		RawStatus: in.PrevStatus,
	}

	err := h.review.Settle(ctx, m, in.NewStatus, actorName(ctx))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, err, http.StatusNotFound)
			return
		}
		if errors.Is(err, apperr.ErrStaleStatus) {
			WriteError(w, err, http.StatusConflict)
			return
		}
		if errors.Is(err, apperr.ErrInvalidInput) {
			WriteError(w, err, http.StatusUnprocessableEntity)
			return
		}
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	out, err := h.review.Get(ctx, d, id)
	if err != nil {
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	WriteResponse(w, out, http.StatusOK)
}

// Receipt proxies the external render collaborator for a fetched
// transaction.
func (h *ReviewHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Review.Receipt")
	l.Debug().Send()

	d, id, ok := pathTransaction(w, r)
	if !ok {
		return
	}

	m, err := h.review.Get(ctx, d, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, err, http.StatusNotFound)
			return
		}
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	in := &receipt.RenderRequest{
		TransactionID: m.ID.String(),
		Direction:     string(m.Direction),
		UserName:      m.UserName,
		UserPhone:     m.UserPhone,
		Amount:        m.Amount,
		BankName:      m.BankName,
		IBAN:          m.IBAN,
		Status:        string(m.Status),
		CreatedAt:     m.CreatedAt,
	}
	if m.NetPayout.Valid {
		in.NetPayout = &m.NetPayout.Decimal
	}

	out := &receipt.RenderResponse{}
	if err := h.receipt.Render(ctx, in, out); err != nil {
		l.Error().Err(err).Msg("Receipt render failed")
		WriteError(w, err, http.StatusBadGateway)
		return
	}

	WriteResponse(w, out, http.StatusOK)
}

// pathTransaction resolves the {direction}/{id} URL segments.
func pathTransaction(w http.ResponseWriter, r *http.Request) (model.Direction, uuid.UUID, bool) {
	d, err := model.ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		WriteError(w, err, http.StatusUnprocessableEntity)
		return "", uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err, http.StatusUnprocessableEntity)
		return "", uuid.Nil, false
	}

	return d, id, true
}
