package models

import "github.com/m04kA/SMC-ClinicBot/internal/domain"

// SlotsQuery параметры запроса: врач и дата YYYYMMDD
type SlotsQuery struct {
	DoctorCode int64
	Date       string
}

type Slot struct {
	Time       string `json:"time"`
	Start      string `json:"start"`
	ScheduleID int64  `json:"schedident"`
}

type SlotsResponse struct {
	DoctorCode int64  `json:"doctor"`
	Date       string `json:"date"`
	Slots      []Slot `json:"slots"`
}

func FromDomain(q SlotsQuery, slots []domain.TimeSlot) SlotsResponse {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, Slot{Time: s.Time, Start: s.Start.String(), ScheduleID: s.ScheduleID})
	}
	return SlotsResponse{DoctorCode: q.DoctorCode, Date: q.Date, Slots: out}
}
