package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/dto"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/httpresp"
	"github.com/BruksfildServices01/groomer-manager/internal/middleware"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/groomer-manager/internal/usecase/appointment"
)

type AppointmentHandler struct {
	createUC   *ucAppointment.CreateAppointment
	updateUC   *ucAppointment.UpdateAppointment
	deleteUC   *ucAppointment.DeleteAppointment
	getUC      *ucAppointment.GetAppointment
	listUC     *ucAppointment.ListAppointments
	confirmUC  *ucAppointment.ChangeStatus
	completeUC *ucAppointment.ChangeStatus
	cancelUC   *ucAppointment.ChangeStatus
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	getUC *ucAppointment.GetAppointment,
	listUC *ucAppointment.ListAppointments,
	confirmUC *ucAppointment.ChangeStatus,
	completeUC *ucAppointment.ChangeStatus,
	cancelUC *ucAppointment.ChangeStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		updateUC:   updateUC,
		deleteUC:   deleteUC,
		getUC:      getUC,
		listUC:     listUC,
		confirmUC:  confirmUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
	}
}

type CreateAppointmentRequest struct {
	ClientID    uint            `json:"client_id" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	Time        string          `json:"time" binding:"required"`
	ServiceType string          `json:"service_type" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ClientID    *uint            `json:"client_id"`
	Date        *string          `json:"date"`
	Time        *string          `json:"time"`
	ServiceType *string          `json:"service_type"`
	Price       *decimal.Decimal `json:"price"`
	Status      *string          `json:"status"`
	Notes       *string          `json:"notes"`
}

func (h *AppointmentHandler) List(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	var rng *ucAppointment.DateRange
	if start != nil {
		rng = &ucAppointment.DateRange{Start: *start, End: *end}
	}

	apps, err := h.listUC.Execute(c.Request.Context(), rng)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), middleware.UserID(c), ucAppointment.CreateAppointmentInput{
		ClientID:    req.ClientID,
		Date:        req.Date,
		Time:        req.Time,
		ServiceType: req.ServiceType,
		Price:       req.Price,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewAppointment(*ap))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := schedule.AppointmentPatch{
		ClientID:    req.ClientID,
		Time:        req.Time,
		ServiceType: req.ServiceType,
		Price:       req.Price,
		Status:      req.Status,
		Notes:       req.Notes,
	}
	if req.Date != nil {
		d, err := timezone.ParseDate(*req.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_input", "date must be YYYY-MM-DD")
			return
		}
		patch.Date = &d
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), middleware.UserID(c), id, patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointment(*ap))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *AppointmentHandler) Confirm(c *gin.Context)  { h.changeStatus(c, h.confirmUC) }
func (h *AppointmentHandler) Complete(c *gin.Context) { h.changeStatus(c, h.completeUC) }
func (h *AppointmentHandler) Cancel(c *gin.Context)   { h.changeStatus(c, h.cancelUC) }

func (h *AppointmentHandler) changeStatus(c *gin.Context, uc *ucAppointment.ChangeStatus) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := uc.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointment(*ap))
}
