package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/dto"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/httpresp"
	"github.com/BruksfildServices01/groomer-manager/internal/middleware"
	ucClient "github.com/BruksfildServices01/groomer-manager/internal/usecase/client"
)

type ClientHandler struct {
	createUC       *ucClient.CreateClient
	updateUC       *ucClient.UpdateClient
	deleteUC       *ucClient.DeleteClient
	getUC          *ucClient.GetClient
	listUC         *ucClient.ListClients
	appointmentsUC *ucClient.ClientAppointments
}

func NewClientHandler(
	createUC *ucClient.CreateClient,
	updateUC *ucClient.UpdateClient,
	deleteUC *ucClient.DeleteClient,
	getUC *ucClient.GetClient,
	listUC *ucClient.ListClients,
	appointmentsUC *ucClient.ClientAppointments,
) *ClientHandler {
	return &ClientHandler{
		createUC:       createUC,
		updateUC:       updateUC,
		deleteUC:       deleteUC,
		getUC:          getUC,
		listUC:         listUC,
		appointmentsUC: appointmentsUC,
	}
}

type DogRequest struct {
	ID         *uint  `json:"id"`
	Name       string `json:"name" binding:"required"`
	Breed      string `json:"breed"`
	Size       string `json:"size" binding:"required"`
	HairLength string `json:"hair_length" binding:"required"`
}

func (r DogRequest) input() ucClient.DogInput {
	return ucClient.DogInput{
		ID:         r.ID,
		Name:       r.Name,
		Breed:      r.Breed,
		Size:       r.Size,
		HairLength: r.HairLength,
	}
}

func dogInputs(reqs []DogRequest) []ucClient.DogInput {
	if reqs == nil {
		return nil
	}
	out := make([]ucClient.DogInput, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.input())
	}
	return out
}

type CreateClientRequest struct {
	Name          string       `json:"name" binding:"required"`
	Phone         string       `json:"phone" binding:"required"`
	Address       string       `json:"address"`
	FrequencyDays *int         `json:"frequency_days"`
	Notes         string       `json:"notes"`
	Dogs          []DogRequest `json:"dogs" binding:"dive"`
}

// UpdateClientRequest leaves absent fields untouched. A present dogs list,
// even an empty one, replaces the client's dogs.
type UpdateClientRequest struct {
	Name          *string      `json:"name"`
	Phone         *string      `json:"phone"`
	Address       *string      `json:"address"`
	FrequencyDays *int         `json:"frequency_days"`
	Notes         *string      `json:"notes"`
	Dogs          []DogRequest `json:"dogs" binding:"dive"`
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.listUC.Execute(c.Request.Context(), c.Query("term"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	client, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Appointments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	apps, err := h.appointmentsUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.createUC.Execute(c.Request.Context(), middleware.UserID(c), ucClient.CreateClientInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		FrequencyDays: req.FrequencyDays,
		Notes:         req.Notes,
		Dogs:          dogInputs(req.Dogs),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewClient(*client))
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := schedule.ClientPatch{
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		FrequencyDays: req.FrequencyDays,
		Notes:         req.Notes,
	}
	client, err := h.updateUC.Execute(c.Request.Context(), middleware.UserID(c), id, patch, dogInputs(req.Dogs))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewClient(*client))
}

func (h *ClientHandler) Delete(c *gin.Context) {
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
