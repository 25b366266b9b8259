package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicBot/pkg/types"
)

// DateFormat формат дат в API МИС и в payload кнопок
const DateFormat = "20060102"

type Branch struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Doctor struct {
	Code   int64  `json:"dcode"`
	Name   string `json:"name"`
	DepNum int64  `json:"depnum,omitempty"` // 0, если МИС не вернула отделение врача
}

// TimeSlot свободный интервал в расписании врача
type TimeSlot struct {
	Time       string           `json:"time"` // как пришло из МИС: "09:00-09:30" или "09:00"
	Start      types.TimeString `json:"start"`
	ScheduleID int64            `json:"schedident"`
	WorkDate   string           `json:"work_date"` // YYYYMMDD
	DoctorCode int64            `json:"dcode"`
}

// End время окончания приёма длительностью d
func (s TimeSlot) End(d time.Duration) (types.TimeString, error) {
	return s.Start.AddMinutes(int(d / time.Minute))
}

// Reservation запрос на запись к врачу
type Reservation struct {
	Date       string // YYYYMMDD
	DoctorCode int64
	Start      types.TimeString
	End        types.TimeString
	FilialID   int64
	OnlineType int
	ScheduleID int64
	DepNum     int64
	RefID      string
}

// Record существующая запись пациента
type Record struct {
	ScheduleID     int64
	FilialID       int64
	Date           string
	Time           string
	DoctorName     string
	DepartmentName string
	FilialName     string
}

// ParseDate разбирает YYYYMMDD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// HumanDate YYYYMMDD -> DD.MM.YYYY; некорректная дата возвращается как есть
func HumanDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("02.01.2006")
}
