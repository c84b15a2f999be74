// Package storetest provides an in-memory store for use case and handler
// tests.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/account"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/finance"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

type state struct {
	clients      map[uint]models.Client
	dogs         map[uint]models.Dog
	appointments map[uint]models.Appointment
	expenditures map[uint]models.Expenditure
	users        map[uint]models.User
	nextID       uint
}

func (s *state) clone() *state {
	c := &state{
		clients:      make(map[uint]models.Client, len(s.clients)),
		dogs:         make(map[uint]models.Dog, len(s.dogs)),
		appointments: make(map[uint]models.Appointment, len(s.appointments)),
		expenditures: make(map[uint]models.Expenditure, len(s.expenditures)),
		users:        make(map[uint]models.User, len(s.users)),
		nextID:       s.nextID,
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.dogs {
		c.dogs[k] = v
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	for k, v := range s.expenditures {
		c.expenditures[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Memory mimics the postgres store, including cascading deletes and
// foreign key checks. Transactions are serialized.
type Memory struct {
	mu    *sync.Mutex
	txMu  *sync.Mutex
	st    *state
	inTx  bool
	Clock func() time.Time

	// FailOn makes the named operation return the error once set.
	FailOn map[string]error
}

func NewMemory() *Memory {
	return &Memory{
		mu:   &sync.Mutex{},
		txMu: &sync.Mutex{},
		st: &state{
			clients:      map[uint]models.Client{},
			dogs:         map[uint]models.Dog{},
			appointments: map[uint]models.Appointment{},
			expenditures: map[uint]models.Expenditure{},
			users:        map[uint]models.User{},
		},
		Clock:  time.Now,
		FailOn: map[string]error{},
	}
}

func (m *Memory) lock() func() {
	if m.inTx {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *Memory) fail(op string) error {
	return m.FailOn[op]
}

func (m *Memory) id() uint {
	m.st.nextID++
	return m.st.nextID
}

func (m *Memory) ExecUnderTx(ctx context.Context, fn func(tx schedule.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.st.clone()
	tx := &Memory{mu: m.mu, txMu: m.txMu, st: m.st, inTx: true, Clock: m.Clock, FailOn: m.FailOn}
	if err := fn(tx); err != nil {
		*m.st = *snapshot
		return err
	}
	return nil
}

// ---------------------------------------------------------------------
// Clients

func (m *Memory) CreateClient(ctx context.Context, c *models.Client) error {
	defer m.lock()()
	if err := m.fail("CreateClient"); err != nil {
		return err
	}
	c.ID = m.id()
	c.CreatedAt = m.Clock()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	stored.Dogs = nil
	m.st.clients[c.ID] = stored
	return nil
}

func (m *Memory) withDogs(c models.Client) models.Client {
	c.Dogs = m.dogsOf(c.ID)
	return c
}

func (m *Memory) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	defer m.lock()()
	c, ok := m.st.clients[id]
	if !ok {
		return nil, schedule.ErrClientNotFound
	}
	c = m.withDogs(c)
	return &c, nil
}

func (m *Memory) sortedClients(keep func(models.Client) bool) []models.Client {
	out := []models.Client{}
	for _, c := range m.st.clients {
		if keep(c) {
			out = append(out, m.withDogs(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *Memory) ListClients(ctx context.Context) ([]models.Client, error) {
	defer m.lock()()
	if err := m.fail("ListClients"); err != nil {
		return nil, err
	}
	return m.sortedClients(func(models.Client) bool { return true }), nil
}

func (m *Memory) SearchClients(ctx context.Context, term string) ([]models.Client, error) {
	defer m.lock()()
	term = strings.ToLower(strings.TrimSpace(term))
	return m.sortedClients(func(c models.Client) bool {
		return strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(c.Phone, term)
	}), nil
}

func (m *Memory) UpdateClient(ctx context.Context, c *models.Client) error {
	defer m.lock()()
	if err := m.fail("UpdateClient"); err != nil {
		return err
	}
	old, ok := m.st.clients[c.ID]
	if !ok {
		return schedule.ErrClientNotFound
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = m.Clock()
	stored := *c
	stored.Dogs = nil
	m.st.clients[c.ID] = stored
	return nil
}

func (m *Memory) DeleteClient(ctx context.Context, id uint) error {
	defer m.lock()()
	if _, ok := m.st.clients[id]; !ok {
		return schedule.ErrClientNotFound
	}
	delete(m.st.clients, id)
	for k, d := range m.st.dogs {
		if d.ClientID == id {
			delete(m.st.dogs, k)
		}
	}
	for k, ap := range m.st.appointments {
		if ap.ClientID == id {
			delete(m.st.appointments, k)
		}
	}
	return nil
}

// ---------------------------------------------------------------------
// Dogs

func (m *Memory) dogsOf(clientID uint) []models.Dog {
	out := []models.Dog{}
	for _, d := range m.st.dogs {
		if d.ClientID == clientID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Memory) CreateDog(ctx context.Context, d *models.Dog) error {
	defer m.lock()()
	if err := m.fail("CreateDog"); err != nil {
		return err
	}
	if _, ok := m.st.clients[d.ClientID]; !ok {
		return schedule.ErrMissingReference
	}
	d.ID = m.id()
	d.CreatedAt = m.Clock()
	d.UpdatedAt = d.CreatedAt
	m.st.dogs[d.ID] = *d
	return nil
}

func (m *Memory) GetDog(ctx context.Context, id uint) (*models.Dog, error) {
	defer m.lock()()
	d, ok := m.st.dogs[id]
	if !ok {
		return nil, schedule.ErrDogNotFound
	}
	return &d, nil
}

func (m *Memory) ListDogs(ctx context.Context) ([]models.Dog, error) {
	defer m.lock()()
	out := []models.Dog{}
	for _, d := range m.st.dogs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ListDogsByClient(ctx context.Context, clientID uint) ([]models.Dog, error) {
	defer m.lock()()
	return m.dogsOf(clientID), nil
}

func (m *Memory) UpdateDog(ctx context.Context, d *models.Dog) error {
	defer m.lock()()
	if err := m.fail("UpdateDog"); err != nil {
		return err
	}
	old, ok := m.st.dogs[d.ID]
	if !ok {
		return schedule.ErrDogNotFound
	}
	if _, ok := m.st.clients[d.ClientID]; !ok {
		return schedule.ErrMissingReference
	}
	d.CreatedAt = old.CreatedAt
	d.UpdatedAt = m.Clock()
	m.st.dogs[d.ID] = *d
	return nil
}

func (m *Memory) DeleteDog(ctx context.Context, id uint) error {
	defer m.lock()()
	if err := m.fail("DeleteDog"); err != nil {
		return err
	}
	if _, ok := m.st.dogs[id]; !ok {
		return schedule.ErrDogNotFound
	}
	delete(m.st.dogs, id)
	return nil
}

// ---------------------------------------------------------------------
// Appointments

func (m *Memory) appointmentsWhere(keep func(models.Appointment) bool) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range m.st.appointments {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Memory) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	defer m.lock()()
	if err := m.fail("CreateAppointment"); err != nil {
		return err
	}
	if _, ok := m.st.clients[ap.ClientID]; !ok {
		return schedule.ErrMissingReference
	}
	ap.ID = m.id()
	ap.CreatedAt = m.Clock()
	ap.UpdatedAt = ap.CreatedAt
	m.st.appointments[ap.ID] = *ap
	return nil
}

func (m *Memory) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	defer m.lock()()
	ap, ok := m.st.appointments[id]
	if !ok {
		return nil, schedule.ErrAppointmentNotFound
	}
	return &ap, nil
}

func (m *Memory) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	defer m.lock()()
	return m.appointmentsWhere(func(models.Appointment) bool { return true }), nil
}

func (m *Memory) ListAppointmentsForClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	defer m.lock()()
	return m.appointmentsWhere(func(ap models.Appointment) bool { return ap.ClientID == clientID }), nil
}

func dateWithin(d, start, end time.Time) bool {
	ds := d.Format("2006-01-02")
	return ds >= start.Format("2006-01-02") && ds <= end.Format("2006-01-02")
}

func (m *Memory) ListAppointmentsInRange(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	defer m.lock()()
	if err := m.fail("ListAppointmentsInRange"); err != nil {
		return nil, err
	}
	return m.appointmentsWhere(func(ap models.Appointment) bool { return dateWithin(ap.Date, start, end) }), nil
}

func (m *Memory) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	defer m.lock()()
	old, ok := m.st.appointments[ap.ID]
	if !ok {
		return schedule.ErrAppointmentNotFound
	}
	if _, ok := m.st.clients[ap.ClientID]; !ok {
		return schedule.ErrMissingReference
	}
	ap.CreatedAt = old.CreatedAt
	ap.UpdatedAt = m.Clock()
	m.st.appointments[ap.ID] = *ap
	return nil
}

func (m *Memory) DeleteAppointment(ctx context.Context, id uint) error {
	defer m.lock()()
	if _, ok := m.st.appointments[id]; !ok {
		return schedule.ErrAppointmentNotFound
	}
	delete(m.st.appointments, id)
	return nil
}

// ---------------------------------------------------------------------
// Expenditures

func (m *Memory) CreateExpenditure(ctx context.Context, e *models.Expenditure) error {
	defer m.lock()()
	e.ID = m.id()
	e.CreatedAt = m.Clock()
	e.UpdatedAt = e.CreatedAt
	m.st.expenditures[e.ID] = *e
	return nil
}

func (m *Memory) GetExpenditure(ctx context.Context, id uint) (*models.Expenditure, error) {
	defer m.lock()()
	e, ok := m.st.expenditures[id]
	if !ok {
		return nil, finance.ErrExpenditureNotFound
	}
	return &e, nil
}

func (m *Memory) expendituresWhere(keep func(models.Expenditure) bool) []models.Expenditure {
	out := []models.Expenditure{}
	for _, e := range m.st.expenditures {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Memory) ListExpenditures(ctx context.Context) ([]models.Expenditure, error) {
	defer m.lock()()
	out := m.expendituresWhere(func(models.Expenditure) bool { return true })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *Memory) ListExpendituresInRange(ctx context.Context, start, end time.Time) ([]models.Expenditure, error) {
	defer m.lock()()
	return m.expendituresWhere(func(e models.Expenditure) bool { return dateWithin(e.Date, start, end) }), nil
}

func (m *Memory) UpdateExpenditure(ctx context.Context, e *models.Expenditure) error {
	defer m.lock()()
	old, ok := m.st.expenditures[e.ID]
	if !ok {
		return finance.ErrExpenditureNotFound
	}
	e.CreatedAt = old.CreatedAt
	e.UpdatedAt = m.Clock()
	m.st.expenditures[e.ID] = *e
	return nil
}

func (m *Memory) DeleteExpenditure(ctx context.Context, id uint) error {
	defer m.lock()()
	if _, ok := m.st.expenditures[id]; !ok {
		return finance.ErrExpenditureNotFound
	}
	delete(m.st.expenditures, id)
	return nil
}

var (
	_ schedule.Repository = (*Memory)(nil)
	_ finance.Repository  = (*Memory)(nil)
	_ account.UserStore   = (*Memory)(nil)
)

// ---------------------------------------------------------------------
// Users

func (m *Memory) CountUsers(ctx context.Context) (int64, error) {
	defer m.lock()()
	return int64(len(m.st.users)), nil
}

func (m *Memory) CreateUser(ctx context.Context, u *models.User) error {
	defer m.lock()()
	for _, existing := range m.st.users {
		if existing.Email == u.Email {
			return fmt.Errorf("duplicate email %q", u.Email)
		}
	}
	u.ID = uint(len(m.st.users)) + 1
	u.CreatedAt = m.Clock()
	u.UpdatedAt = u.CreatedAt
	m.st.users[u.ID] = *u
	return nil
}

func (m *Memory) GetUser(ctx context.Context, id uint) (*models.User, error) {
	defer m.lock()()
	u, ok := m.st.users[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	defer m.lock()()
	for _, u := range m.st.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, account.ErrUserNotFound
}
