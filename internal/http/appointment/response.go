package appointment

import (
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

type appointmentResponse struct {
	ID            string       `json:"id"`
	ClientID      string       `json:"client_id"`
	ClientName    string       `json:"client_name"`
	Date          string       `json:"date"`
	Time          string       `json:"time"`
	ProcedureIDs  []string     `json:"procedure_ids"`
	ProcedureName string       `json:"procedure_name"`
	Price         salon.Money  `json:"price"`
	Status        salon.Status `json:"status"`
	Notes         string       `json:"notes,omitempty"`
}

type dayResponse struct {
	Date         string                `json:"date"`
	Total        salon.Money           `json:"total"`
	Appointments []appointmentResponse `json:"appointments"`
}

func toResponse(a salon.Appointment) appointmentResponse {
	ids := a.ProcedureIDs()
	if ids == nil {
		ids = []string{}
	}

	return appointmentResponse{
		ID:            a.ID,
		ClientID:      a.ClientID,
		ClientName:    a.ClientName,
		Date:          a.Date,
		Time:          a.Time,
		ProcedureIDs:  ids,
		ProcedureName: a.ProcedureName,
		Price:         a.Price,
		Status:        a.Status,
		Notes:         a.Notes,
	}
}

func toResponseList(appts []salon.Appointment) []appointmentResponse {
	resp := make([]appointmentResponse, len(appts))
	for i, a := range appts {
		resp[i] = toResponse(a)
	}

	return resp
}
