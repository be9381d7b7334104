package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/httpresp"
	"github.com/BruksfildServices01/appointment-services/internal/models"
	"github.com/BruksfildServices01/appointment-services/internal/pagination"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogLister interface {
	List(ctx context.Context, f audit.ListFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditLogLister
}

func NewAuditLogsHandler(logs AuditLogLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, size := pagination.Normalize(queryInt(c, "page"), queryInt(c, "size"))

	f := audit.ListFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Size:   size,
	}

	// --------------------------------------------------
	// Optional date window
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		f.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		f.To = &to
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, logs, total, page, size)
}
