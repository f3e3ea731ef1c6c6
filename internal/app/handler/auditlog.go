package handler

import (
	"net/http"

	"backoffice/internal/app/auditlog"
	"backoffice/internal/app/logger"
)

type AuditLogHandler struct {
	audit auditlog.Recorder
}

func NewAuditLogHandler(audit auditlog.Recorder) *AuditLogHandler {
	return &AuditLogHandler{
		audit: audit,
	}
}

// List returns this process's accumulated entries, newest first.
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.AuditLog.List")
	l.Debug().Send()

	WriteResponse(w, h.audit.Entries(ctx), http.StatusOK)
}
