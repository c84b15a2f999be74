package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/dto"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/httpresp"
	"github.com/BruksfildServices01/groomer-manager/internal/middleware"
	ucClient "github.com/BruksfildServices01/groomer-manager/internal/usecase/client"
)

const maxPhotoBytes = 10 << 20

type DogHandler struct {
	createUC *ucClient.CreateDog
	updateUC *ucClient.UpdateDog
	deleteUC *ucClient.DeleteDog
	photoUC  *ucClient.UploadDogPhoto
}

func NewDogHandler(
	createUC *ucClient.CreateDog,
	updateUC *ucClient.UpdateDog,
	deleteUC *ucClient.DeleteDog,
	photoUC *ucClient.UploadDogPhoto,
) *DogHandler {
	return &DogHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		photoUC:  photoUC,
	}
}

type CreateDogRequest struct {
	ClientID uint `json:"client_id" binding:"required"`
	DogRequest
}

type UpdateDogRequest struct {
	Name       *string `json:"name"`
	Breed      *string `json:"breed"`
	Size       *string `json:"size"`
	HairLength *string `json:"hair_length"`
}

func (h *DogHandler) Create(c *gin.Context) {
	var req CreateDogRequest
	if !bindJSON(c, &req) {
		return
	}

	dog, err := h.createUC.Execute(c.Request.Context(), middleware.UserID(c), req.ClientID, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewDog(*dog))
}

func (h *DogHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateDogRequest
	if !bindJSON(c, &req) {
		return
	}

	dog, err := h.updateUC.Execute(c.Request.Context(), middleware.UserID(c), id, schedule.DogPatch{
		Name:       req.Name,
		Breed:      req.Breed,
		Size:       req.Size,
		HairLength: req.HairLength,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewDog(*dog))
}

func (h *DogHandler) Delete(c *gin.Context) {
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

// UploadPhoto takes a multipart "photo" field and stores it as webp.
func (h *DogHandler) UploadPhoto(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)
	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "multipart field \"photo\" is required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "photo could not be read")
		return
	}
	defer f.Close()

	dog, err := h.photoUC.Execute(c.Request.Context(), middleware.UserID(c), id, f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewDog(*dog))
}
