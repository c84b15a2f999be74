package schedule

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

// ClientView is a client with its dogs and the appointments nearest to now.
type ClientView struct {
	Client models.Client
	Dogs   []models.Dog
	Last   *models.Appointment
	Next   *models.Appointment
}

type AppointmentView struct {
	Appointment models.Appointment
	Client      models.Client
	Dogs        []models.Dog
}

// EnrichClient picks the latest appointment strictly before now and the
// earliest at or after it. Appointments belonging to other clients are
// ignored. When several share the winning instant the one earliest in the
// input order is chosen.
func EnrichClient(
	client models.Client,
	dogs []models.Dog,
	appointments []models.Appointment,
	now time.Time,
	loc *time.Location,
) ClientView {
	view := ClientView{Client: client, Dogs: dogs}
	if view.Dogs == nil {
		view.Dogs = []models.Dog{}
	}

	type timed struct {
		at time.Time
		ap models.Appointment
	}

	own := make([]timed, 0, len(appointments))
	for _, ap := range appointments {
		if ap.ClientID != client.ID {
			continue
		}
		own = append(own, timed{at: ap.Instant(loc), ap: ap})
	}

	sort.SliceStable(own, func(i, j int) bool {
		return own[i].at.Before(own[j].at)
	})

	split := sort.Search(len(own), func(i int) bool {
		return !own[i].at.Before(now)
	})

	if split > 0 {
		i := split - 1
		for i > 0 && own[i-1].at.Equal(own[split-1].at) {
			i--
		}
		last := own[i].ap
		view.Last = &last
	}
	if split < len(own) {
		next := own[split].ap
		view.Next = &next
	}

	return view
}

// EnrichClients enriches every client from bulk listings.
func EnrichClients(
	clients []models.Client,
	dogs []models.Dog,
	appointments []models.Appointment,
	now time.Time,
	loc *time.Location,
) []ClientView {
	dogsByClient := GroupDogs(dogs)
	apptsByClient := GroupAppointments(appointments)

	views := make([]ClientView, 0, len(clients))
	for _, c := range clients {
		views = append(views, EnrichClient(c, dogsByClient[c.ID], apptsByClient[c.ID], now, loc))
	}
	return views
}

// EnrichAppointment attaches the owning client and its dogs.
func EnrichAppointment(
	ap models.Appointment,
	clientsByID map[uint]models.Client,
	dogsByClient map[uint][]models.Dog,
) (AppointmentView, error) {
	client, ok := clientsByID[ap.ClientID]
	if !ok {
		return AppointmentView{}, danglingReference(ap.ID, ap.ClientID)
	}

	dogs := dogsByClient[ap.ClientID]
	if dogs == nil {
		dogs = []models.Dog{}
	}
	return AppointmentView{Appointment: ap, Client: client, Dogs: dogs}, nil
}

func EnrichAppointments(
	appointments []models.Appointment,
	clients []models.Client,
	dogs []models.Dog,
) ([]AppointmentView, error) {
	clientsByID := make(map[uint]models.Client, len(clients))
	for _, c := range clients {
		clientsByID[c.ID] = c
	}
	dogsByClient := GroupDogs(dogs)

	views := make([]AppointmentView, 0, len(appointments))
	for _, ap := range appointments {
		v, err := EnrichAppointment(ap, clientsByID, dogsByClient)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func GroupDogs(dogs []models.Dog) map[uint][]models.Dog {
	out := make(map[uint][]models.Dog)
	for _, d := range dogs {
		out[d.ClientID] = append(out[d.ClientID], d)
	}
	return out
}

func GroupAppointments(appointments []models.Appointment) map[uint][]models.Appointment {
	out := make(map[uint][]models.Appointment)
	for _, ap := range appointments {
		out[ap.ClientID] = append(out[ap.ClientID], ap)
	}
	return out
}

// SortByInstant orders appointments by date and time, keeping input order
// for ties.
func SortByInstant(appointments []models.Appointment, loc *time.Location) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Instant(loc).Before(appointments[j].Instant(loc))
	})
}
