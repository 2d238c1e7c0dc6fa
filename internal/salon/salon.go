package salon

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// legacyStatuses maps labels found in older documents to their canonical status.
var legacyStatuses = map[string]Status{
	"agendado":  StatusScheduled,
	"realizado": StatusCompleted,
	"cancelado": StatusCancelled,
	"scheduled": StatusScheduled,
	"completed": StatusCompleted,
	"cancelled": StatusCancelled,
	"canceled":  StatusCancelled,
}

// ParseStatus resolves a status label, accepting the canonical values as well
// as the labels used by earlier versions of the document.
func ParseStatus(s string) (Status, error) {
	st, ok := legacyStatuses[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}

	return st, nil
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}

	*s = st

	return nil
}

// CanTransition reports whether an appointment may move from s to next.
// Only scheduled appointments can change, and only to completed or cancelled.
func (s Status) CanTransition(next Status) bool {
	return s == StatusScheduled && (next == StatusCompleted || next == StatusCancelled)
}

const (
	DateLayout = time.DateOnly
	TimeLayout = "15:04"
)

// Client is a salon customer.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Procedure is an entry of the price list.
type Procedure struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    Money  `json:"price"`
}

// Appointment is a booked visit. Client and procedure names are denormalized
// and the price is a snapshot taken when the appointment was created.
type Appointment struct {
	ID         string `json:"id"`
	ClientID   string `json:"clientId"`
	ClientName string `json:"clientName"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:mm
	// ProcedureID holds the booked procedure ids joined by commas.
	ProcedureID   string `json:"procedureId"`
	ProcedureName string `json:"procedureName"`
	Price         Money  `json:"price"`
	Status        Status `json:"status"`
	Notes         string `json:"notes,omitempty"`
}

// ProcedureIDs splits the stored procedure reference into individual ids.
func (a Appointment) ProcedureIDs() []string {
	if a.ProcedureID == "" {
		return nil
	}

	parts := strings.Split(a.ProcedureID, ",")
	ids := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}

	return ids
}

// Start returns the instant the appointment begins in the given location.
func (a Appointment) Start(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, a.Date+" "+a.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing appointment %s start: %w", a.ID, err)
	}

	return t, nil
}

// Document is the whole persisted state of the salon.
type Document struct {
	Clients      []Client      `json:"clients"`
	Procedures   []Procedure   `json:"procedures"`
	Appointments []Appointment `json:"appointments"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	return &Document{
		Clients:      append([]Client{}, d.Clients...),
		Procedures:   append([]Procedure{}, d.Procedures...),
		Appointments: append([]Appointment{}, d.Appointments...),
	}
}

// DefaultProcedures returns the built-in price list.
func DefaultProcedures() []Procedure {
	return []Procedure{
		{ID: "1", Name: "Selagem Tradicional", Category: "SELAGEM", Price: 15000},
		{ID: "2", Name: "Selagem Promoção", Category: "SELAGEM PROMO", Price: 10000},
		{ID: "3", Name: "Pintura Completa", Category: "PINTURA", Price: 12000},
		{ID: "4", Name: "Retoque de Raiz", Category: "PINTURA", Price: 8000},
		{ID: "5", Name: "Luzes / Mechas", Category: "LUZES", Price: 25000},
		{ID: "6", Name: "Permanente Afro", Category: "PERMANENTE AFRO", Price: 20000},
		{ID: "7", Name: "Hidratação Profunda", Category: "TRATAMENTO", Price: 8000},
		{ID: "8", Name: "Botox Capilar", Category: "BOTOX", Price: 12000},
		{ID: "9", Name: "Cauterização", Category: "CAUTERIZAÇÃO", Price: 15000},
		{ID: "10", Name: "Escova Modelada", Category: "ESCOVA", Price: 4500},
		{ID: "11", Name: "Chapinha", Category: "CHAPINHA", Price: 3500},
	}
}

// NewDocument returns the document used when nothing has been stored yet.
func NewDocument() *Document {
	return &Document{
		Clients:      []Client{},
		Procedures:   DefaultProcedures(),
		Appointments: []Appointment{},
	}
}
