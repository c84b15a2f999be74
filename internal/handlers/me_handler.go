package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-manager/internal/dto"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/httpresp"
	"github.com/BruksfildServices01/groomer-manager/internal/middleware"
	"github.com/BruksfildServices01/groomer-manager/internal/usecase/auth"
)

type MeHandler struct {
	auth *auth.Service
}

func NewMeHandler(svc *auth.Service) *MeHandler {
	return &MeHandler{auth: svc}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewUser(*user))
}
