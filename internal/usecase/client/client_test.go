package client

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/storetest"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

const owner = uint(1)

var clock = timezone.FixedClock{At: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)}

func intp(n int) *int       { return &n }
func strp(s string) *string { return &s }
func uintp(n uint) *uint    { return &n }

func dog(name string) DogInput {
	return DogInput{Name: name, Size: models.DogSizeMedium, HairLength: models.HairShort}
}

func seedClient(t *testing.T, repo *storetest.Memory, freq *int, dogs ...DogInput) *models.Client {
	t.Helper()
	c, err := NewCreateClient(repo, nil).Execute(context.Background(), owner, CreateClientInput{
		Name: "Ana Silva", Phone: "555-0100", Address: "1 Main St", FrequencyDays: freq, Dogs: dogs,
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func seedAppointment(t *testing.T, repo *storetest.Memory, clientID uint, date string) {
	t.Helper()
	d, _ := timezone.ParseDate(date)
	if err := repo.CreateAppointment(context.Background(), &models.Appointment{
		ClientID: clientID, Date: d, Time: "10:00", ServiceType: "Bath",
		Price: decimal.NewFromInt(40), Status: string(schedule.StatusCompleted),
	}); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
}

func TestCreateClientWithDogs(t *testing.T) {
	repo := storetest.NewMemory()
	c := seedClient(t, repo, intp(0), dog("Rex"), dog("Luna"))

	if c.FrequencyDays != nil {
		t.Errorf("zero frequency should be stored as none")
	}
	got, err := repo.GetClient(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Dogs) != 2 {
		t.Fatalf("dogs = %d, want 2", len(got.Dogs))
	}
}

func TestCreateClientRollsBackOnDogFailure(t *testing.T) {
	repo := storetest.NewMemory()
	repo.FailOn["CreateDog"] = errors.New("disk full")

	_, err := NewCreateClient(repo, nil).Execute(context.Background(), owner, CreateClientInput{
		Name: "Ana", Phone: "555", Dogs: []DogInput{dog("Rex")},
	})
	if err == nil {
		t.Fatal("expected failure")
	}

	clients, _ := repo.ListClients(context.Background())
	if len(clients) != 0 {
		t.Fatalf("client left behind after rollback: %+v", clients)
	}
}

func TestCreateClientValidation(t *testing.T) {
	repo := storetest.NewMemory()
	uc := NewCreateClient(repo, nil)

	tests := []struct {
		name string
		in   CreateClientInput
	}{
		{"empty name", CreateClientInput{Name: " ", Phone: "1"}},
		{"empty phone", CreateClientInput{Name: "A", Phone: ""}},
		{"negative frequency", CreateClientInput{Name: "A", Phone: "1", FrequencyDays: intp(-2)}},
		{"bad dog size", CreateClientInput{Name: "A", Phone: "1", Dogs: []DogInput{{Name: "Rex", Size: "xl", HairLength: "short"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Execute(context.Background(), owner, tt.in); !httperr.IsBusiness(err, "invalid_input") {
				t.Fatalf("err = %v, want invalid_input", err)
			}
		})
	}
}

func TestUpdateClientReplacesDogs(t *testing.T) {
	ctx := context.Background()
	repo := storetest.NewMemory()
	c := seedClient(t, repo, intp(14), dog("Rex"), dog("Luna"))
	rex, luna := c.Dogs[0], c.Dogs[1]

	renamed := dog("Rex II")
	renamed.ID = uintp(rex.ID)

	got, err := NewUpdateClient(repo, nil).Execute(ctx, owner, c.ID,
		schedule.ClientPatch{Phone: strp("555-0199")},
		[]DogInput{renamed, dog("Milo")},
	)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if got.Phone != "555-0199" || got.Name != "Ana Silva" {
		t.Errorf("client = %+v", got)
	}
	if len(got.Dogs) != 2 || got.Dogs[0].Name != "Rex II" || got.Dogs[1].Name != "Milo" {
		t.Fatalf("dogs = %+v", got.Dogs)
	}
	if _, err := repo.GetDog(ctx, luna.ID); !errors.Is(err, schedule.ErrDogNotFound) {
		t.Errorf("luna should be deleted, err = %v", err)
	}
}

func TestUpdateClientIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := storetest.NewMemory()
	c := seedClient(t, repo, intp(14), dog("Rex"))

	repo.FailOn["DeleteDog"] = errors.New("lock timeout")

	_, err := NewUpdateClient(repo, nil).Execute(ctx, owner, c.ID,
		schedule.ClientPatch{Name: strp("Changed")},
		[]DogInput{dog("Milo")},
	)
	if err == nil {
		t.Fatal("expected failure")
	}

	after, _ := repo.GetClient(ctx, c.ID)
	if after.Name != "Ana Silva" {
		t.Errorf("name = %q, want rollback", after.Name)
	}
	if len(after.Dogs) != 1 || after.Dogs[0].Name != "Rex" {
		t.Errorf("dogs = %+v, want rollback", after.Dogs)
	}
}

func TestUpdateClientRejectsForeignDog(t *testing.T) {
	ctx := context.Background()
	repo := storetest.NewMemory()
	a := seedClient(t, repo, nil, dog("Rex"))
	b := seedClient(t, repo, nil)

	stolen := dog("Rex")
	stolen.ID = uintp(a.Dogs[0].ID)

	_, err := NewUpdateClient(repo, nil).Execute(ctx, owner, b.ID, schedule.ClientPatch{}, []DogInput{stolen})
	if !httperr.IsBusiness(err, "dog_not_found") {
		t.Fatalf("err = %v, want dog_not_found", err)
	}
}

func TestUpdateClientWithoutDogListKeepsDogs(t *testing.T) {
	ctx := context.Background()
	repo := storetest.NewMemory()
	c := seedClient(t, repo, nil, dog("Rex"))

	got, err := NewUpdateClient(repo, nil).Execute(ctx, owner, c.ID, schedule.ClientPatch{FrequencyDays: intp(21)}, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got.Dogs) != 1 || got.FrequencyDays == nil || *got.FrequencyDays != 21 {
		t.Fatalf("got %+v", got)
	}
}

func TestDeleteClientCascades(t *testing.T) {
	ctx := context.Background()
	repo := storetest.NewMemory()
	c := seedClient(t, repo, nil, dog("Rex"))
	seedAppointment(t, repo, c.ID, "2024-01-10")

	if err := NewDeleteClient(repo, nil).Execute(ctx, owner, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	apps, _ := repo.ListAppointments(ctx)
	dogs, _ := repo.ListDogs(ctx)
	if len(apps) != 0 || len(dogs) != 0 {
		t.Fatalf("left %d appointments, %d dogs", len(apps), len(dogs))
	}
	if err := NewDeleteClient(repo, nil).Execute(ctx, owner, c.ID); !errors.Is(err, schedule.ErrClientNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestGetClientEnriched(t *testing.T) {
	repo := storetest.NewMemory()
	c := seedClient(t, repo, intp(30), dog("Rex"))
	seedAppointment(t, repo, c.ID, "2024-01-01")
	seedAppointment(t, repo, c.ID, "2024-03-01")

	got, err := NewGetClient(repo, clock, schedule.DefaultCadencePolicy()).Execute(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastAppointment == nil || got.LastAppointment.Date != "2024-01-01" {
		t.Errorf("last = %+v", got.LastAppointment)
	}
	if got.NextAppointment == nil || got.NextAppointment.Date != "2024-03-01" {
		t.Errorf("next = %+v", got.NextAppointment)
	}
	if got.Cadence == nil || !got.Cadence.Overdue || got.Cadence.DueSoon {
		t.Errorf("cadence = %+v", got.Cadence)
	}
}

func TestListClientsSearch(t *testing.T) {
	ctx := context.Background()
	repo := storetest.NewMemory()
	seedClient(t, repo, nil)
	_, err := NewCreateClient(repo, nil).Execute(ctx, owner, CreateClientInput{Name: "Bob Stone", Phone: "777-1234"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := NewListClients(repo, clock, schedule.DefaultCadencePolicy())

	tests := []struct {
		term string
		want int
	}{
		{"", 2},
		{"silva", 1},
		{"STONE", 1},
		{"1234", 1},
		{"zzz", 0},
	}
	for _, tt := range tests {
		got, err := uc.Execute(ctx, tt.term)
		if err != nil {
			t.Fatalf("search %q: %v", tt.term, err)
		}
		if len(got) != tt.want {
			t.Errorf("search %q = %d results, want %d", tt.term, len(got), tt.want)
		}
	}
}

func TestFollowups(t *testing.T) {
	ctx := context.Background()
	repo := storetest.NewMemory()

	overdue := seedClient(t, repo, intp(14))
	seedAppointment(t, repo, overdue.ID, "2024-01-12")

	dueSoon := seedClient(t, repo, intp(14))
	seedAppointment(t, repo, dueSoon.ID, "2024-01-22")

	lapsed := seedClient(t, repo, nil)
	seedAppointment(t, repo, lapsed.ID, "2023-10-01")

	seedClient(t, repo, nil) // never visited, no cadence: lapsed only

	uc := NewFollowups(repo, clock, schedule.DefaultCadencePolicy())

	gotOverdue, err := uc.Overdue(ctx)
	if err != nil || len(gotOverdue) != 1 || gotOverdue[0].ID != overdue.ID {
		t.Errorf("overdue = %+v, %v", gotOverdue, err)
	}

	gotDue, err := uc.DueSoon(ctx)
	if err != nil || len(gotDue) != 1 || gotDue[0].ID != dueSoon.ID {
		t.Errorf("due soon = %+v, %v", gotDue, err)
	}

	gotLapsed, err := uc.Lapsed(ctx)
	if err != nil || len(gotLapsed) != 2 {
		t.Errorf("lapsed = %+v, %v", gotLapsed, err)
	}

	n, err := uc.CountOverdue(ctx)
	if err != nil || n != 1 {
		t.Errorf("count = %d, %v", n, err)
	}
}

type memPhotos struct {
	keys []string
}

func (m *memPhotos) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	if contentType != "image/webp" || len(body) == 0 {
		return "", errors.New("bad upload")
	}
	m.keys = append(m.keys, key)
	return "https://cdn.test/" + key, nil
}

func TestUploadDogPhoto(t *testing.T) {
	ctx := context.Background()
	repo := storetest.NewMemory()
	c := seedClient(t, repo, nil, dog("Rex"))
	dogID := c.Dogs[0].ID

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48))); err != nil {
		t.Fatalf("png: %v", err)
	}

	photos := &memPhotos{}
	got, err := NewUploadDogPhoto(repo, photos, nil).Execute(ctx, owner, dogID, &buf)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(got.PhotoURL, "https://cdn.test/dogs/") || len(photos.keys) != 1 {
		t.Fatalf("photo url = %q keys = %v", got.PhotoURL, photos.keys)
	}

	if _, err := NewUploadDogPhoto(repo, photos, nil).Execute(ctx, owner, dogID, strings.NewReader("nope")); !httperr.IsBusiness(err, "invalid_input") {
		t.Fatalf("err = %v, want invalid_input", err)
	}

	if _, err := NewUploadDogPhoto(repo, nil, nil).Execute(ctx, owner, dogID, &buf); !errors.Is(err, ErrPhotosDisabled) {
		t.Fatalf("err = %v, want photos disabled", err)
	}
}

func TestDogCRUD(t *testing.T) {
	ctx := context.Background()
	repo := storetest.NewMemory()
	c := seedClient(t, repo, nil)

	d, err := NewCreateDog(repo, nil).Execute(ctx, owner, c.ID, DogInput{Name: "Pip", Breed: "Poodle", Size: "small", HairLength: "long"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := NewCreateDog(repo, nil).Execute(ctx, owner, 999, dog("Ghost")); !httperr.IsBusiness(err, "missing_reference") {
		t.Fatalf("err = %v, want missing_reference", err)
	}

	got, err := NewUpdateDog(repo, nil).Execute(ctx, owner, d.ID, schedule.DogPatch{Size: strp("medium")})
	if err != nil || got.Size != "medium" || got.Breed != "Poodle" {
		t.Fatalf("update = %+v, %v", got, err)
	}

	if err := NewDeleteDog(repo, nil).Execute(ctx, owner, d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := NewDeleteDog(repo, nil).Execute(ctx, owner, d.ID); !errors.Is(err, schedule.ErrDogNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
