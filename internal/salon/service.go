package salon

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=salon
type Repository interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}

var errNotOpen = errors.New("salon document not loaded")

// Service owns the in-memory document. Every mutation is applied to a copy,
// persisted, and only then made visible to readers.
type Service struct {
	repo Repository
	now  func() time.Time

	mu  sync.RWMutex
	doc *Document
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Open loads the document from the repository. It must be called once before
// any other method.
func (s *Service) Open(ctx context.Context) error {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	s.mu.Lock()
	s.doc = normalize(doc)
	s.mu.Unlock()

	return nil
}

type ClientParams struct {
	Name  string
	Phone string
	Email string
	Notes string
}

type ProcedureParams struct {
	Name     string
	Category string
	Price    Money
}

// ProcedureUpdate carries the fields to change; nil fields are left alone.
type ProcedureUpdate struct {
	Name     *string
	Category *string
	Price    *Money
}

type AppointmentParams struct {
	ClientID     string
	ProcedureIDs []string
	Date         string
	Time         string
	// Price overrides the sum of the procedure prices when set.
	Price *Money
	Notes string
}

func (s *Service) Snapshot() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return NewDocument()
	}

	return s.doc.Clone()
}

// Replace swaps the whole document, as done when restoring a backup.
func (s *Service) Replace(ctx context.Context, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidInput)
	}

	next := normalize(doc.Clone())

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	s.doc = next

	return nil
}

func (s *Service) AddClient(ctx context.Context, params ClientParams) (*Client, error) {
	clients, err := s.AddClients(ctx, []ClientParams{params})
	if err != nil {
		return nil, err
	}

	return &clients[0], nil
}

// AddClients creates several clients with a single save.
func (s *Service) AddClients(ctx context.Context, params []ClientParams) ([]Client, error) {
	created := make([]Client, 0, len(params))

	for _, p := range params {
		name := strings.TrimSpace(p.Name)
		phone := strings.TrimSpace(p.Phone)

		if name == "" || phone == "" {
			return nil, fmt.Errorf("%w: client name and phone are required", ErrInvalidInput)
		}

		created = append(created, Client{
			ID:        uuid.NewString(),
			Name:      name,
			Phone:     phone,
			Email:     strings.TrimSpace(p.Email),
			Notes:     strings.TrimSpace(p.Notes),
			CreatedAt: s.now().UTC(),
		})
	}

	if len(created) == 0 {
		return created, nil
	}

	err := s.mutate(ctx, func(doc *Document) error {
		doc.Clients = append(doc.Clients, created...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Clients returns the clients whose name contains search (case-insensitive)
// or whose phone contains it. An empty search returns every client.
func (s *Service) Clients(search string) []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil
	}

	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]Client, 0, len(s.doc.Clients))

	for _, c := range s.doc.Clients {
		if term == "" || strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(c.Phone, term) {
			out = append(out, c)
		}
	}

	return out
}

func (s *Service) Client(id string) (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil, errNotOpen
	}

	for _, c := range s.doc.Clients {
		if c.ID == id {
			return &c, nil
		}
	}

	return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
}

// ClientHistory lists the completed appointments of a client, newest first.
func (s *Service) ClientHistory(id string) ([]Appointment, error) {
	if _, err := s.Client(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var history []Appointment

	for _, a := range s.doc.Appointments {
		if a.ClientID == id && a.Status == StatusCompleted {
			history = append(history, a)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		if history[i].Date != history[j].Date {
			return history[i].Date > history[j].Date
		}

		return history[i].Time > history[j].Time
	})

	return history, nil
}

func (s *Service) AddProcedure(ctx context.Context, params ProcedureParams) (*Procedure, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: procedure name is required", ErrInvalidInput)
	}

	if params.Price < 0 {
		return nil, fmt.Errorf("%w: procedure price must not be negative", ErrInvalidInput)
	}

	p := Procedure{
		ID:       uuid.NewString(),
		Name:     name,
		Category: strings.ToUpper(strings.TrimSpace(params.Category)),
		Price:    params.Price,
	}

	err := s.mutate(ctx, func(doc *Document) error {
		doc.Procedures = append(doc.Procedures, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Service) UpdateProcedure(ctx context.Context, id string, upd ProcedureUpdate) (*Procedure, error) {
	if upd.Price != nil && *upd.Price < 0 {
		return nil, fmt.Errorf("%w: procedure price must not be negative", ErrInvalidInput)
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: procedure name is required", ErrInvalidInput)
	}

	var updated Procedure

	err := s.mutate(ctx, func(doc *Document) error {
		idx := slices.IndexFunc(doc.Procedures, func(p Procedure) bool { return p.ID == id })
		if idx < 0 {
			return fmt.Errorf("procedure %s: %w", id, ErrNotFound)
		}

		p := &doc.Procedures[idx]

		if upd.Name != nil {
			p.Name = strings.TrimSpace(*upd.Name)
		}

		if upd.Category != nil {
			p.Category = strings.ToUpper(strings.TrimSpace(*upd.Category))
		}

		if upd.Price != nil {
			p.Price = *upd.Price
		}

		updated = *p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) Procedures() []Procedure {
	return s.Snapshot().Procedures
}

// Categories returns the distinct procedure categories in first-seen order.
func (s *Service) Categories() []string {
	var cats []string

	for _, p := range s.Procedures() {
		if !slices.Contains(cats, p.Category) {
			cats = append(cats, p.Category)
		}
	}

	return cats
}

func (s *Service) AddAppointment(ctx context.Context, params AppointmentParams) (*Appointment, error) {
	date, clock, err := normalizeSchedule(params.Date, params.Time)
	if err != nil {
		return nil, err
	}

	if params.Price != nil && *params.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	var apt Appointment

	err = s.mutate(ctx, func(doc *Document) error {
		ci := slices.IndexFunc(doc.Clients, func(c Client) bool { return c.ID == params.ClientID })
		if ci < 0 {
			return fmt.Errorf("client %s: %w", params.ClientID, ErrNotFound)
		}

		var (
			ids   []string
			names []string
			total Money
		)

		for _, id := range params.ProcedureIDs {
			if slices.Contains(ids, id) {
				continue
			}

			pi := slices.IndexFunc(doc.Procedures, func(p Procedure) bool { return p.ID == id })
			if pi < 0 {
				return fmt.Errorf("procedure %s: %w", id, ErrNotFound)
			}

			ids = append(ids, id)
			names = append(names, doc.Procedures[pi].Name)
			total += doc.Procedures[pi].Price
		}

		if len(ids) == 0 {
			return fmt.Errorf("%w: at least one procedure is required", ErrInvalidInput)
		}

		if params.Price != nil {
			total = *params.Price
		}

		apt = Appointment{
			ID:            uuid.NewString(),
			ClientID:      doc.Clients[ci].ID,
			ClientName:    doc.Clients[ci].Name,
			Date:          date,
			Time:          clock,
			ProcedureID:   strings.Join(ids, ","),
			ProcedureName: strings.Join(names, " + "),
			Price:         total,
			Status:        StatusScheduled,
			Notes:         strings.TrimSpace(params.Notes),
		}
		doc.Appointments = append(doc.Appointments, apt)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &apt, nil
}

// UpdateStatus moves an appointment to a new status. Only scheduled
// appointments can be completed or cancelled.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) error {
	return s.mutate(ctx, func(doc *Document) error {
		idx := slices.IndexFunc(doc.Appointments, func(a Appointment) bool { return a.ID == id })
		if idx < 0 {
			return fmt.Errorf("appointment %s: %w", id, ErrNotFound)
		}

		current := doc.Appointments[idx].Status
		if !current.CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
		}

		doc.Appointments[idx].Status = status

		return nil
	})
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	return s.mutate(ctx, func(doc *Document) error {
		idx := slices.IndexFunc(doc.Appointments, func(a Appointment) bool { return a.ID == id })
		if idx < 0 {
			return fmt.Errorf("appointment %s: %w", id, ErrNotFound)
		}

		doc.Appointments = slices.Delete(doc.Appointments, idx, idx+1)

		return nil
	})
}

func (s *Service) Appointment(id string) (*Appointment, error) {
	for _, a := range s.Appointments() {
		if a.ID == id {
			return &a, nil
		}
	}

	return nil, fmt.Errorf("appointment %s: %w", id, ErrNotFound)
}

func (s *Service) Appointments() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil
	}

	return append([]Appointment{}, s.doc.Appointments...)
}

// AppointmentsOn returns the appointments of a day ordered by time.
func (s *Service) AppointmentsOn(date string) []Appointment {
	var day []Appointment

	for _, a := range s.Appointments() {
		if a.Date == date {
			day = append(day, a)
		}
	}

	sort.SliceStable(day, func(i, j int) bool { return day[i].Time < day[j].Time })

	return day
}

func (s *Service) mutate(ctx context.Context, fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return errNotOpen
	}

	next := s.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	s.doc = next

	return nil
}

func normalizeSchedule(date, clock string) (string, string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return "", "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, date)
	}

	t, err := time.Parse(TimeLayout, strings.TrimSpace(clock))
	if err != nil {
		return "", "", fmt.Errorf("%w: time %q must be HH:mm", ErrInvalidInput, clock)
	}

	return d.Format(DateLayout), t.Format(TimeLayout), nil
}

func normalize(doc *Document) *Document {
	if doc == nil {
		return NewDocument()
	}

	if doc.Clients == nil {
		doc.Clients = []Client{}
	}

	if doc.Procedures == nil {
		doc.Procedures = []Procedure{}
	}

	if doc.Appointments == nil {
		doc.Appointments = []Appointment{}
	}

	return doc
}
