package schedule

import (
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(s string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, loc)
	if err != nil {
		panic(err)
	}
	return t
}

func appt(id, clientID uint, date, hm string) models.Appointment {
	return models.Appointment{ID: id, ClientID: clientID, Date: day(date), Time: hm, Status: string(StatusPending)}
}

func freq(n int) *int { return &n }
