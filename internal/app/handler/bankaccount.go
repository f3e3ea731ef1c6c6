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
)

type BankAccountHandler struct {
	accounts storage.BankAccountRepository
	audit    auditlog.Recorder
}

func NewBankAccountHandler(accounts storage.BankAccountRepository, audit auditlog.Recorder) *BankAccountHandler {
	return &BankAccountHandler{
		accounts: accounts,
		audit:    audit,
	}
}

type bankAccountInput struct {
	BankName string `json:"bank_name" validate:"required,min=1,max=128"`
	IBAN     string `json:"iban" validate:"required,min=5,max=34"`
	Holder   string `json:"holder" validate:"required,min=1,max=128"`
	Active   bool   `json:"active"`
}

func (h *BankAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.BankAccount.List")
	l.Debug().Send()

	mm, err := h.accounts.All(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	WriteResponse(w, mm, http.StatusOK)
}

func (h *BankAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.BankAccount.Create")
	l.Debug().Send()

	in := bankAccountInput{}
	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	m, err := h.accounts.Create(ctx, &model.BankAccount{
		BankName: in.BankName,
		IBAN:     in.IBAN,
		Holder:   in.Holder,
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

	h.audit.Append(ctx, actorName(ctx), "bank_account_create",
		fmt.Sprintf("bank account %s (%s) created", m.ID, m.BankName))

	WriteResponse(w, m, http.StatusOK)
}

func (h *BankAccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.BankAccount.Update")
	l.Debug().Send()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err, http.StatusUnprocessableEntity)
		return
	}

	in := bankAccountInput{}
	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	m, err := h.accounts.Update(ctx, &model.BankAccount{
		ID:       id,
		BankName: in.BankName,
		IBAN:     in.IBAN,
		Holder:   in.Holder,
		Active:   in.Active,
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

	h.audit.Append(ctx, actorName(ctx), "bank_account_update",
		fmt.Sprintf("bank account %s (%s) updated", m.ID, m.BankName))

	WriteResponse(w, m, http.StatusOK)
}

func (h *BankAccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.BankAccount.Deactivate")
	l.Debug().Send()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err, http.StatusUnprocessableEntity)
		return
	}

	if err := h.accounts.Deactivate(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, err, http.StatusNotFound)
			return
		}
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	h.audit.Append(ctx, actorName(ctx), "bank_account_deactivate",
		fmt.Sprintf("bank account %s deactivated", id))

	w.WriteHeader(http.StatusNoContent)
}
