package infoclinica

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

// DefaultRecordsPageLength размер страницы /records/list по умолчанию
const DefaultRecordsPageLength = 25

// Filials GET /filial - список филиалов
func (c *Client) Filials(ctx context.Context) (*Result, error) {
	return c.do(ctx, c.anon, request{
		endpoint: "filial",
		method:   http.MethodGet,
		path:     "/filial",
		query:    url.Values{"_": {c.cacheBuster()}},
	})
}

// Departments POST /api/reservation/departments, опционально по филиалу
func (c *Client) Departments(ctx context.Context, filialID *int64) (*Result, error) {
	query := url.Values{}
	if filialID != nil {
		query.Set("f", strconv.FormatInt(*filialID, 10))
	}

	return c.do(ctx, c.anon, request{
		endpoint: "departments",
		method:   http.MethodPost,
		path:     "/api/reservation/departments",
		query:    query,
		body:     struct{}{},
	})
}

// Doctors POST /sdk/specialists/doctors, опционально по филиалу и отделению
func (c *Client) Doctors(ctx context.Context, filialID, departmentID *int64) (*Result, error) {
	query := url.Values{}
	if filialID != nil {
		query.Set("filial", strconv.FormatInt(*filialID, 10))
	}
	if departmentID != nil {
		query.Set("departments", strconv.FormatInt(*departmentID, 10))
	}

	return c.do(ctx, c.anon, request{
		endpoint: "doctors",
		method:   http.MethodPost,
		path:     "/sdk/specialists/doctors",
		query:    query,
		body:     struct{}{},
	})
}

// ScheduleQuery параметры графика работы врача
type ScheduleQuery struct {
	DoctorCode int64
	FilialID   *int64
	Start      time.Time
	End        time.Time // по умолчанию Start + 1 день
}

// Schedule GET /api/reservation/schedule
func (c *Client) Schedule(ctx context.Context, q ScheduleQuery) (*Result, error) {
	if q.Start.IsZero() {
		q.Start = c.now()
	}
	if q.End.IsZero() {
		q.End = q.Start.AddDate(0, 0, 1)
	}

	query := url.Values{
		"st":     {q.Start.Format(domain.DateFormat)},
		"en":     {q.End.Format(domain.DateFormat)},
		"doctor": {""},
	}
	if q.DoctorCode != 0 {
		query.Set("doctor", strconv.FormatInt(q.DoctorCode, 10))
	}
	if q.FilialID != nil {
		query.Set("filialId", strconv.FormatInt(*q.FilialID, 10))
	}

	return c.do(ctx, c.anon, request{
		endpoint: "schedule",
		method:   http.MethodGet,
		path:     "/api/reservation/schedule",
		query:    query,
	})
}

// IntervalsQuery параметры свободных интервалов (даты YYYYMMDD)
type IntervalsQuery struct {
	Start      string
	End        string
	DoctorCode int64
	OnlineMode int
}

// Intervals GET /api/reservation/intervals.
// sess может быть nil: интервалы доступны и без входа.
func (c *Client) Intervals(ctx context.Context, sess *AuthSession, q IntervalsQuery) (*Result, error) {
	hc := c.anon
	if sess != nil {
		hc = sess.http
	}

	return c.do(ctx, hc, request{
		endpoint: "intervals",
		method:   http.MethodGet,
		path:     "/api/reservation/intervals",
		query: url.Values{
			"st":         {q.Start},
			"en":         {q.End},
			"dcode":      {strconv.FormatInt(q.DoctorCode, 10)},
			"onlineMode": {strconv.Itoa(q.OnlineMode)},
			"_":          {c.cacheBuster()},
		},
	})
}

// ReservePayload тело POST /api/reservation/reserve
type ReservePayload struct {
	Date       string `json:"date"`
	DCode      int64  `json:"dcode"`
	En         string `json:"en"`
	Filial     int64  `json:"filial"`
	OnlineType int    `json:"onlineType"`
	SchedIdent int64  `json:"schedident"`
	St         string `json:"st"`
	DepNum     int64  `json:"depnum"`
	RefID      string `json:"refid"`
}

func NewReservePayload(r domain.Reservation) ReservePayload {
	return ReservePayload{
		Date:       r.Date,
		DCode:      r.DoctorCode,
		En:         r.End.String(),
		Filial:     r.FilialID,
		OnlineType: r.OnlineType,
		SchedIdent: r.ScheduleID,
		St:         r.Start.String(),
		DepNum:     r.DepNum,
		RefID:      r.RefID,
	}
}

// Reserve создаёт запись на приём (нужна авторизованная сессия)
func (c *Client) Reserve(ctx context.Context, sess *AuthSession, payload ReservePayload) (*Result, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: Reserve", ErrNotAuthorized)
	}

	return c.do(ctx, sess.http, request{
		endpoint: "reserve",
		method:   http.MethodPost,
		path:     "/api/reservation/reserve",
		body:     payload,
		headers:  map[string]string{"Referer": c.baseURL + "/reservation"},
	})
}

// RecordsQuery период и страница списка записей (даты YYYYMMDD)
type RecordsQuery struct {
	Start  string
	End    string
	Offset int
	Length int
}

// Records GET /records/list - записи пациента
func (c *Client) Records(ctx context.Context, sess *AuthSession, q RecordsQuery) (*Result, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: Records", ErrNotAuthorized)
	}
	if q.Length <= 0 {
		q.Length = DefaultRecordsPageLength
	}

	return c.do(ctx, sess.http, request{
		endpoint: "records_list",
		method:   http.MethodGet,
		path:     "/records/list",
		query: url.Values{
			"st":     {q.Start},
			"en":     {q.End},
			"start":  {strconv.Itoa(q.Offset)},
			"length": {strconv.Itoa(q.Length)},
			"_":      {c.cacheBuster()},
		},
	})
}

// ConfirmRecord GET /record/confirm
func (c *Client) ConfirmRecord(ctx context.Context, sess *AuthSession, schedID, filialID int64) (*Result, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: ConfirmRecord", ErrNotAuthorized)
	}

	return c.do(ctx, sess.http, request{
		endpoint: "record_confirm",
		method:   http.MethodGet,
		path:     "/record/confirm",
		query: url.Values{
			"schedid":  {strconv.FormatInt(schedID, 10)},
			"filialid": {strconv.FormatInt(filialID, 10)},
			"_":        {c.cacheBuster()},
		},
	})
}

// CancelRecord DELETE /record/delete/{schedid}/{filial}
func (c *Client) CancelRecord(ctx context.Context, sess *AuthSession, schedID, filialID int64) (*Result, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: CancelRecord", ErrNotAuthorized)
	}

	return c.do(ctx, sess.http, request{
		endpoint: "record_delete",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/record/delete/%d/%d", schedID, filialID),
	})
}
