package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/httpresp"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

type AuditLister interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditLister
}

func NewAuditLogsHandler(logs AuditLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

type auditPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// List filters by action, entity and an inclusive from/to date window.
// Unparsable dates are ignored.
func (h *AuditLogsHandler) List(c *gin.Context) {
	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}
	if d, err := timezone.ParseDate(c.Query("from")); err == nil {
		f.From = &d
	}
	if d, err := timezone.ParseDate(c.Query("to")); err == nil {
		f.To = &d
	}

	var ok bool
	if f.Page, ok = queryInt(c, "page", 1); !ok {
		return
	}
	if f.Limit, ok = queryInt(c, "limit", 50); !ok {
		return
	}
	f.Normalize()

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, auditPage{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
		Logs:  logs,
	})
}
