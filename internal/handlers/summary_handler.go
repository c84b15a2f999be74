package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/finance"
	"github.com/BruksfildServices01/groomer-manager/internal/dto"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/httpresp"
	ucClient "github.com/BruksfildServices01/groomer-manager/internal/usecase/client"
	ucFinance "github.com/BruksfildServices01/groomer-manager/internal/usecase/finance"
)

// SummaryHandler serves the dashboard: client follow-ups and financial
// reports.
type SummaryHandler struct {
	followups *ucClient.Followups
	reports   *ucFinance.Reports
}

func NewSummaryHandler(followups *ucClient.Followups, reports *ucFinance.Reports) *SummaryHandler {
	return &SummaryHandler{followups: followups, reports: reports}
}

func (h *SummaryHandler) OverdueClients(c *gin.Context) {
	clients, err := h.followups.Overdue(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, clients)
}

func (h *SummaryHandler) SuggestedFollowups(c *gin.Context) {
	clients, err := h.followups.DueSoon(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, clients)
}

func (h *SummaryHandler) LapsedClients(c *gin.Context) {
	clients, err := h.followups.Lapsed(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, clients)
}

// reportRange falls back to the month to date when no range is given.
func (h *SummaryHandler) reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, end, ok := dateRange(c)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if start == nil {
		s, e := h.reports.DefaultRange()
		return s, e, true
	}
	return *start, *end, true
}

func (h *SummaryHandler) Financials(c *gin.Context) {
	start, end, ok := h.reportRange(c)
	if !ok {
		return
	}

	totals, err := h.reports.Summary(c.Request.Context(), start, end)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewTotals(totals))
}

func (h *SummaryHandler) Trends(c *gin.Context) {
	period, err := finance.ParsePeriod(c.DefaultQuery("period", string(finance.Period30Days)))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	buckets, err := h.reports.Trends(c.Request.Context(), period)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{
		"period":      period,
		"granularity": period.Granularity(),
		"buckets":     dto.NewBuckets(buckets),
	})
}

func (h *SummaryHandler) Services(c *gin.Context) {
	start, end, ok := h.reportRange(c)
	if !ok {
		return
	}

	stats, err := h.reports.Services(c.Request.Context(), start, end)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, stats)
}

func (h *SummaryHandler) ExpenseCategories(c *gin.Context) {
	start, end, ok := h.reportRange(c)
	if !ok {
		return
	}

	stats, err := h.reports.Categories(c.Request.Context(), start, end)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, stats)
}

// Monthly defaults to the current month.
func (h *SummaryHandler) Monthly(c *gin.Context) {
	_, today := h.reports.DefaultRange()

	year, ok := queryInt(c, "year", today.Year())
	if !ok {
		return
	}
	month, ok := queryInt(c, "month", int(today.Month()))
	if !ok {
		return
	}

	detail, err := h.reports.Monthly(c.Request.Context(), year, time.Month(month))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewMonthDetail(detail))
}

func (h *SummaryHandler) Week(c *gin.Context) {
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}

	w, err := h.reports.Week(c.Request.Context(), offset)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewWeek(w.Start, w.End, w.Appointments, w.OverdueClients, w.Totals))
}
