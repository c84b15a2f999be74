package dto

import (
	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

type DogDTO struct {
	ID         uint   `json:"id"`
	ClientID   uint   `json:"client_id"`
	Name       string `json:"name"`
	Breed      string `json:"breed"`
	Size       string `json:"size"`
	HairLength string `json:"hair_length"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

func NewDog(d models.Dog) DogDTO {
	return DogDTO{
		ID:         d.ID,
		ClientID:   d.ClientID,
		Name:       d.Name,
		Breed:      d.Breed,
		Size:       d.Size,
		HairLength: d.HairLength,
		PhotoURL:   d.PhotoURL,
	}
}

func NewDogs(dogs []models.Dog) []DogDTO {
	out := make([]DogDTO, 0, len(dogs))
	for _, d := range dogs {
		out = append(out, NewDog(d))
	}
	return out
}

type ClientDTO struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	FrequencyDays *int     `json:"frequency_days"`
	Notes         string   `json:"notes"`
	Dogs          []DogDTO `json:"dogs"`

	LastAppointment *AppointmentDTO   `json:"last_appointment"`
	NextAppointment *AppointmentDTO   `json:"next_appointment"`
	Cadence         *schedule.Cadence `json:"cadence,omitempty"`
}

func NewClient(c models.Client) ClientDTO {
	return ClientDTO{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		Address:       c.Address,
		FrequencyDays: c.FrequencyDays,
		Notes:         c.Notes,
		Dogs:          NewDogs(c.Dogs),
	}
}

func NewClientView(v schedule.ClientView, cadence *schedule.Cadence) ClientDTO {
	out := NewClient(v.Client)
	out.Dogs = NewDogs(v.Dogs)
	if v.Last != nil {
		last := NewAppointment(*v.Last)
		out.LastAppointment = &last
	}
	if v.Next != nil {
		next := NewAppointment(*v.Next)
		out.NextAppointment = &next
	}
	out.Cadence = cadence
	return out
}
