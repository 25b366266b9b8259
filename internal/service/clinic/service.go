package clinic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/integrations/infoclinica"
)

// Service операции с МИС: справочники, расписание, запись и её отмена
type Service struct {
	api    ClinicAPI
	cache  DirectoryCache
	opts   Options
	logger Logger

	now      func() time.Time
	newRefID func() string
}

func NewService(api ClinicAPI, cache DirectoryCache, opts Options, logger Logger) *Service {
	if opts.SlotMinutes <= 0 {
		opts.SlotMinutes = 30
	}
	if opts.RecordsDaysAhead <= 0 {
		opts.RecordsDaysAhead = 90
	}

	return &Service{
		api:      api,
		cache:    cache,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		newRefID: uuid.NewString,
	}
}

// Branches список филиалов: сначала кэш, затем МИС
func (s *Service) Branches(ctx context.Context) ([]domain.Branch, error) {
	if s.cache != nil {
		branches, ok, err := s.cache.GetBranches(ctx)
		if err != nil {
			s.logger.Warn("Failed to read branches from cache: %v", err)
		}
		if ok {
			return branches, nil
		}
	}

	return s.RefreshBranches(ctx)
}

// RefreshBranches загружает филиалы из МИС и обновляет кэш
func (s *Service) RefreshBranches(ctx context.Context) ([]domain.Branch, error) {
	res, err := s.api.Filials(ctx)
	if err := checkResult(res, err, "RefreshBranches"); err != nil {
		return nil, err
	}

	branches := infoclinica.ParseBranches(res.JSON)
	if s.cache != nil {
		if err := s.cache.SetBranches(ctx, branches); err != nil {
			s.logger.Warn("Failed to cache branches: %v", err)
		}
	}
	return branches, nil
}

// Departments отделения филиала
func (s *Service) Departments(ctx context.Context, branchID int64) ([]domain.Department, error) {
	res, err := s.api.Departments(ctx, &branchID)
	if err := checkResult(res, err, "Departments"); err != nil {
		return nil, err
	}
	return infoclinica.ParseDepartments(res.JSON), nil
}

// Doctors врачи отделения в филиале
func (s *Service) Doctors(ctx context.Context, branchID, departmentID int64) ([]domain.Doctor, error) {
	res, err := s.api.Doctors(ctx, &branchID, &departmentID)
	if err := checkResult(res, err, "Doctors"); err != nil {
		return nil, err
	}
	return infoclinica.ParseDoctors(res.JSON), nil
}

// FreeSlots свободное время врача на дату (YYYYMMDD), по возрастанию
func (s *Service) FreeSlots(ctx context.Context, doctorCode int64, date string) ([]domain.TimeSlot, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: FreeSlots - %v", ErrInvalidBooking, err)
	}

	res, err := s.api.Intervals(ctx, nil, infoclinica.IntervalsQuery{
		Start:      date,
		End:        date,
		DoctorCode: doctorCode,
		OnlineMode: s.opts.OnlineMode,
	})
	if err := checkResult(res, err, "FreeSlots"); err != nil {
		return nil, err
	}
	return infoclinica.ParseFreeSlots(res.JSON, date, doctorCode), nil
}

// Schedule график работы врача на день date (YYYYMMDD) в том виде, в каком его вернула МИС.
// filialID nil - по всем филиалам.
func (s *Service) Schedule(ctx context.Context, doctorCode int64, filialID *int64, date string) (interface{}, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: Schedule - %v", ErrInvalidBooking, err)
	}

	res, err := s.api.Schedule(ctx, infoclinica.ScheduleQuery{
		DoctorCode: doctorCode,
		FilialID:   filialID,
		Start:      day,
		End:        day.AddDate(0, 0, 1),
	})
	if err := checkResult(res, err, "Schedule"); err != nil {
		return nil, err
	}
	if res.JSON == nil {
		return map[string]interface{}{}, nil
	}
	return res.JSON, nil
}

// Authorize проверяет логин и пароль в МИС и возвращает данные пациента
func (s *Service) Authorize(ctx context.Context, creds domain.Credentials) (*Patient, error) {
	sess, err := s.login(ctx, creds)
	if err != nil {
		return nil, err
	}

	return &Patient{
		PCode:    sess.User.ID,
		FullName: sess.User.FullName,
		Email:    sess.User.Email,
		Phone:    sess.User.Phone,
	}, nil
}

// Reserve записывает пользователя к врачу от его имени
func (s *Service) Reserve(ctx context.Context, user *domain.RegisteredUser, b Booking) (*domain.Reservation, error) {
	reservation, err := s.buildReservation(b)
	if err != nil {
		return nil, err
	}

	sess, err := s.login(ctx, credentialsOf(user))
	if err != nil {
		return nil, err
	}

	res, err := s.api.Reserve(ctx, sess, infoclinica.NewReservePayload(*reservation))
	if err := checkResult(res, err, "Reserve"); err != nil {
		if errors.Is(err, ErrUnexpectedResponse) {
			return nil, &RejectedError{Kind: ErrReservationRejected, Message: rejectMessage(res)}
		}
		return nil, err
	}
	if !infoclinica.Succeeded(res.JSON) {
		return nil, &RejectedError{Kind: ErrReservationRejected, Message: rejectMessage(res)}
	}

	s.logger.Info("Reservation created: user=%d doctor=%d date=%s time=%s refid=%s",
		user.PlatformUserID, reservation.DoctorCode, reservation.Date, reservation.Start, reservation.RefID)

	return reservation, nil
}

func (s *Service) buildReservation(b Booking) (*domain.Reservation, error) {
	if b.Slot.ScheduleID == 0 || b.Doctor.Code == 0 {
		return nil, fmt.Errorf("%w: slot and doctor are required", ErrInvalidBooking)
	}
	if err := b.Slot.Start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}

	end, err := b.Slot.End(time.Duration(s.opts.SlotMinutes) * time.Minute)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}

	date := b.Slot.WorkDate
	if date == "" {
		return nil, fmt.Errorf("%w: slot date is empty", ErrInvalidBooking)
	}

	depNum := b.Doctor.DepNum
	if depNum == 0 {
		depNum = b.Department.ID
	}

	return &domain.Reservation{
		Date:       date,
		DoctorCode: b.Doctor.Code,
		Start:      b.Slot.Start,
		End:        end,
		FilialID:   b.Branch.ID,
		OnlineType: s.opts.OnlineMode,
		ScheduleID: b.Slot.ScheduleID,
		DepNum:     depNum,
		RefID:      s.newRefID(),
	}, nil
}

// Records записи пациента с сегодняшнего дня на RecordsDaysAhead дней вперёд
func (s *Service) Records(ctx context.Context, user *domain.RegisteredUser) ([]domain.Record, error) {
	sess, err := s.login(ctx, credentialsOf(user))
	if err != nil {
		return nil, err
	}

	today := s.now()
	res, err := s.api.Records(ctx, sess, infoclinica.RecordsQuery{
		Start:  today.Format(domain.DateFormat),
		End:    today.AddDate(0, 0, s.opts.RecordsDaysAhead).Format(domain.DateFormat),
		Length: s.opts.RecordsPageLength,
	})
	if err := checkResult(res, err, "Records"); err != nil {
		return nil, err
	}
	return infoclinica.ParseRecords(res.JSON), nil
}

// CancelRecord отменяет запись пациента
func (s *Service) CancelRecord(ctx context.Context, user *domain.RegisteredUser, schedID, filialID int64) error {
	sess, err := s.login(ctx, credentialsOf(user))
	if err != nil {
		return err
	}

	res, err := s.api.CancelRecord(ctx, sess, schedID, filialID)
	if err := checkResult(res, err, "CancelRecord"); err != nil {
		if errors.Is(err, ErrUnexpectedResponse) {
			return &RejectedError{Kind: ErrCancelRejected, Message: rejectMessage(res)}
		}
		return err
	}
	if !infoclinica.Succeeded(res.JSON) {
		return &RejectedError{Kind: ErrCancelRejected, Message: rejectMessage(res)}
	}

	s.logger.Info("Record cancelled: user=%d schedid=%d filial=%d", user.PlatformUserID, schedID, filialID)
	return nil
}

// ConfirmRecord подтверждает явку на запись пациента
func (s *Service) ConfirmRecord(ctx context.Context, user *domain.RegisteredUser, schedID, filialID int64) error {
	sess, err := s.login(ctx, credentialsOf(user))
	if err != nil {
		return err
	}

	res, err := s.api.ConfirmRecord(ctx, sess, schedID, filialID)
	if err := checkResult(res, err, "ConfirmRecord"); err != nil {
		if errors.Is(err, ErrUnexpectedResponse) {
			return &RejectedError{Kind: ErrConfirmRejected, Message: rejectMessage(res)}
		}
		return err
	}
	if !infoclinica.Succeeded(res.JSON) {
		return &RejectedError{Kind: ErrConfirmRejected, Message: rejectMessage(res)}
	}

	s.logger.Info("Record confirmed: user=%d schedid=%d filial=%d", user.PlatformUserID, schedID, filialID)
	return nil
}

func (s *Service) login(ctx context.Context, creds domain.Credentials) (*infoclinica.AuthSession, error) {
	sess, err := s.api.Login(ctx, creds.Login, creds.Password)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, infoclinica.ErrAuthFailed), errors.Is(err, infoclinica.ErrSessionBootstrap):
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	default:
		return nil, fmt.Errorf("%w: login: %v", ErrUnavailable, err)
	}
}

func credentialsOf(user *domain.RegisteredUser) domain.Credentials {
	return domain.Credentials{Login: user.ClinicLogin, Password: user.ClinicPassword}
}

// checkResult ошибки транспорта -> ErrUnavailable, не 2xx -> ErrUnexpectedResponse
func checkResult(res *infoclinica.Result, err error, method string) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, method, err)
	}
	if !res.OK() {
		status := 0
		if res != nil {
			status = res.StatusCode
		}
		return fmt.Errorf("%w: %s - status %d", ErrUnexpectedResponse, method, status)
	}
	return nil
}

func rejectMessage(res *infoclinica.Result) string {
	if res == nil {
		return ""
	}
	return infoclinica.ResponseError(res.JSON)
}
