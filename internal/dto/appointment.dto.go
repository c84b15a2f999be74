package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

type AppointmentDTO struct {
	ID          uint            `json:"id"`
	ClientID    uint            `json:"client_id"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	ServiceType string          `json:"service_type"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`

	Client *ClientBriefDTO `json:"client,omitempty"`
	Dogs   []DogDTO        `json:"dogs,omitempty"`
}

type ClientBriefDTO struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func NewAppointment(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:          ap.ID,
		ClientID:    ap.ClientID,
		Date:        ap.Date.Format(timezone.DateLayout),
		Time:        ap.Time,
		ServiceType: ap.ServiceType,
		Price:       ap.Price,
		Status:      ap.Status,
		Notes:       ap.Notes,
		CreatedAt:   ap.CreatedAt,
	}
}

func NewAppointmentView(v schedule.AppointmentView) AppointmentDTO {
	out := NewAppointment(v.Appointment)
	out.Client = &ClientBriefDTO{
		ID:      v.Client.ID,
		Name:    v.Client.Name,
		Phone:   v.Client.Phone,
		Address: v.Client.Address,
	}
	out.Dogs = NewDogs(v.Dogs)
	return out
}

func NewAppointmentViews(views []schedule.AppointmentView) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(views))
	for _, v := range views {
		out = append(out, NewAppointmentView(v))
	}
	return out
}

func NewAppointments(apps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, NewAppointment(ap))
	}
	return out
}
