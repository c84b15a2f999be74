package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/finance"
	"github.com/BruksfildServices01/groomer-manager/internal/dto"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/httpresp"
	"github.com/BruksfildServices01/groomer-manager/internal/middleware"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
	ucFinance "github.com/BruksfildServices01/groomer-manager/internal/usecase/finance"
)

type ExpenditureHandler struct {
	createUC *ucFinance.CreateExpenditure
	updateUC *ucFinance.UpdateExpenditure
	deleteUC *ucFinance.DeleteExpenditure
	listUC   *ucFinance.ListExpenditures
}

func NewExpenditureHandler(
	createUC *ucFinance.CreateExpenditure,
	updateUC *ucFinance.UpdateExpenditure,
	deleteUC *ucFinance.DeleteExpenditure,
	listUC *ucFinance.ListExpenditures,
) *ExpenditureHandler {
	return &ExpenditureHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
	}
}

type CreateExpenditureRequest struct {
	Date     string          `json:"date" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category" binding:"required"`
	Notes    string          `json:"notes"`
}

type UpdateExpenditureRequest struct {
	Date     *string          `json:"date"`
	Amount   *decimal.Decimal `json:"amount"`
	Category *string          `json:"category"`
	Notes    *string          `json:"notes"`
}

func (h *ExpenditureHandler) List(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	exps, err := h.listUC.Execute(c.Request.Context(), start, end)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewExpenditures(exps))
}

func (h *ExpenditureHandler) Create(c *gin.Context) {
	var req CreateExpenditureRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.createUC.Execute(c.Request.Context(), middleware.UserID(c), ucFinance.CreateExpenditureInput{
		Date:     req.Date,
		Amount:   req.Amount,
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewExpenditure(*e))
}

func (h *ExpenditureHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateExpenditureRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := finance.ExpenditurePatch{
		Amount:   req.Amount,
		Category: req.Category,
		Notes:    req.Notes,
	}
	if req.Date != nil {
		d, err := timezone.ParseDate(*req.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_input", "date must be YYYY-MM-DD")
			return
		}
		patch.Date = &d
	}

	e, err := h.updateUC.Execute(c.Request.Context(), middleware.UserID(c), id, patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewExpenditure(*e))
}

func (h *ExpenditureHandler) Delete(c *gin.Context) {
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
