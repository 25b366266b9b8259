package conversation

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
	"github.com/m04kA/SMC-ClinicBot/internal/ui/keyboards"
	"github.com/m04kA/SMC-ClinicBot/internal/ui/templates"
)

// backSteps кнопки "Назад" мастера записи
var backSteps = map[string]domain.Step{
	keyboards.BackToBranches:    domain.StepBranch,
	keyboards.BackToDepartments: domain.StepDepartment,
	keyboards.BackToDoctors:     domain.StepDoctor,
	keyboards.BackToCalendar:    domain.StepDate,
	keyboards.BackToSchedule:    domain.StepTime,
}

// startBooking первый шаг мастера: список филиалов
func (uc *UseCase) startBooking(ctx context.Context, sess *domain.Session) (domain.OutgoingMessage, error) {
	sess.Reset()

	branches, err := uc.clinic.Branches(ctx)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}
	if len(branches) == 0 {
		return keyboards.Back(templates.NoBranches, keyboards.BackToMain), nil
	}

	sess.Branches = branches
	if err := sess.Advance(domain.StepBranch); err != nil {
		return domain.OutgoingMessage{}, err
	}
	return uc.render(sess), nil
}

func (uc *UseCase) onWizard(ctx context.Context, ev Event, sess *domain.Session, p keyboards.Payload) (domain.OutgoingMessage, error) {
	switch p.Action {
	case keyboards.ActionBranchesPage:
		return uc.turnPage(ctx, ev, sess, domain.StepBranch, &sess.BranchPage, p.Page), nil
	case keyboards.ActionDepartmentsPage:
		return uc.turnPage(ctx, ev, sess, domain.StepDepartment, &sess.DepartmentPage, p.Page), nil
	case keyboards.ActionDoctorsPage:
		return uc.turnPage(ctx, ev, sess, domain.StepDoctor, &sess.DoctorPage, p.Page), nil
	case keyboards.ActionBranch:
		return uc.selectBranch(ctx, ev, sess, p.ID)
	case keyboards.ActionDepartment:
		return uc.selectDepartment(ctx, ev, sess, p.ID)
	case keyboards.ActionDoctor:
		return uc.selectDoctor(ctx, ev, sess, p.ID)
	case keyboards.ActionDate:
		return uc.selectDate(ctx, ev, sess, p.Date)
	case keyboards.ActionTime:
		return uc.selectTime(ctx, ev, sess, p)
	case keyboards.ActionRecordCancel:
		return uc.cancelRecord(ctx, ev, sess, p.ScheduleID, p.FilialID)
	default:
		return uc.stale(ctx, ev, sess), nil
	}
}

func (uc *UseCase) turnPage(ctx context.Context, ev Event, sess *domain.Session, step domain.Step, page *int, to int) domain.OutgoingMessage {
	if sess.Step != step {
		return uc.stale(ctx, ev, sess)
	}
	if to < 0 {
		to = 0
	}
	*page = to
	return uc.render(sess)
}

func (uc *UseCase) selectBranch(ctx context.Context, ev Event, sess *domain.Session, id int64) (domain.OutgoingMessage, error) {
	if sess.Step != domain.StepBranch {
		return uc.stale(ctx, ev, sess), nil
	}

	var branch *domain.Branch
	for i := range sess.Branches {
		if sess.Branches[i].ID == id {
			branch = &sess.Branches[i]
			break
		}
	}
	if branch == nil {
		return withNotice(templates.NotFound, uc.render(sess)), nil
	}

	departments, err := uc.clinic.Departments(ctx, branch.ID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}

	selected := *branch
	sess.Branch = &selected
	sess.Departments, sess.DepartmentPage = departments, 0
	if err := sess.Advance(domain.StepDepartment); err != nil {
		return domain.OutgoingMessage{}, err
	}
	return uc.render(sess), nil
}

func (uc *UseCase) selectDepartment(ctx context.Context, ev Event, sess *domain.Session, id int64) (domain.OutgoingMessage, error) {
	if sess.Step != domain.StepDepartment {
		return uc.stale(ctx, ev, sess), nil
	}

	var department *domain.Department
	for i := range sess.Departments {
		if sess.Departments[i].ID == id {
			department = &sess.Departments[i]
			break
		}
	}
	if department == nil {
		return withNotice(templates.NotFound, uc.render(sess)), nil
	}

	doctors, err := uc.clinic.Doctors(ctx, sess.Branch.ID, department.ID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}

	selected := *department
	sess.Department = &selected
	sess.Doctors, sess.DoctorPage = doctors, 0
	if err := sess.Advance(domain.StepDoctor); err != nil {
		return domain.OutgoingMessage{}, err
	}
	return uc.render(sess), nil
}

func (uc *UseCase) selectDoctor(ctx context.Context, ev Event, sess *domain.Session, code int64) (domain.OutgoingMessage, error) {
	if sess.Step != domain.StepDoctor {
		return uc.stale(ctx, ev, sess), nil
	}

	for _, d := range sess.Doctors {
		if d.Code != code {
			continue
		}
		doctor := d
		sess.Doctor = &doctor
		if err := sess.Advance(domain.StepDate); err != nil {
			return domain.OutgoingMessage{}, err
		}
		return uc.render(sess), nil
	}

	return withNotice(templates.NotFound, uc.render(sess)), nil
}

// selectDate дата должна попадать в показанный календарь
func (uc *UseCase) selectDate(ctx context.Context, ev Event, sess *domain.Session, date string) (domain.OutgoingMessage, error) {
	if sess.Step != domain.StepDate {
		return uc.stale(ctx, ev, sess), nil
	}

	today := uc.today()
	first := today.Format(domain.DateFormat)
	last := today.AddDate(0, 0, uc.opts.DaysAhead-1).Format(domain.DateFormat)
	if date < first || date > last {
		return withNotice(templates.NotFound, uc.render(sess)), nil
	}

	slots, err := uc.clinic.FreeSlots(ctx, sess.Doctor.Code, date)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}

	sess.Date, sess.Slots, sess.Slot = date, slots, nil
	if err := sess.Advance(domain.StepTime); err != nil {
		return domain.OutgoingMessage{}, err
	}
	return uc.render(sess), nil
}

func (uc *UseCase) selectTime(ctx context.Context, ev Event, sess *domain.Session, p keyboards.Payload) (domain.OutgoingMessage, error) {
	if sess.Step != domain.StepTime {
		return uc.stale(ctx, ev, sess), nil
	}

	for _, s := range sess.Slots {
		if s.Start != p.Time || s.ScheduleID != p.ScheduleID || s.WorkDate != p.Date {
			continue
		}
		slot := s
		sess.Slot = &slot
		if err := sess.Advance(domain.StepConfirm); err != nil {
			return domain.OutgoingMessage{}, err
		}
		return uc.render(sess), nil
	}

	return withNotice(templates.NotFound, uc.render(sess)), nil
}

// back показывает предыдущий шаг из закэшированных списков, без запросов в МИС
func (uc *UseCase) back(ctx context.Context, ev Event, sess *domain.Session, to domain.Step) domain.OutgoingMessage {
	if !sess.Step.CanTransition(to) || sess.Step < to {
		return uc.stale(ctx, ev, sess)
	}

	dropAfter(sess, to)
	if err := sess.Advance(to); err != nil {
		return uc.stale(ctx, ev, sess)
	}
	if err := sess.Validate(); err != nil {
		return uc.stale(ctx, ev, sess)
	}
	return uc.render(sess)
}

// dropAfter забывает выбор, сделанный на шагах после step; списки шага step остаются
func dropAfter(sess *domain.Session, step domain.Step) {
	sess.PendingBooking = false
	if step <= domain.StepTime {
		sess.Slot = nil
	}
	if step <= domain.StepDate {
		sess.Date, sess.Slots = "", nil
	}
	if step <= domain.StepDoctor {
		sess.Doctor = nil
	}
	if step <= domain.StepDepartment {
		sess.Department = nil
		sess.Doctors, sess.DoctorPage = nil, 0
	}
	if step <= domain.StepBranch {
		sess.Branch = nil
		sess.Departments, sess.DepartmentPage = nil, 0
	}
}

// confirmReservation без личного кабинета предлагает регистрацию или вход,
// после них пользователь вернётся к подтверждению
func (uc *UseCase) confirmReservation(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	if sess.Step != domain.StepConfirm || !sess.HasBookingDraft() {
		return uc.stale(ctx, ev, sess), nil
	}

	user, err := uc.currentUser(ctx, ev.UserID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}
	if user == nil {
		return keyboards.AuthChoice(), nil
	}

	_, err = uc.clinic.Reserve(ctx, user, clinic.Booking{
		Branch:     *sess.Branch,
		Department: *sess.Department,
		Doctor:     *sess.Doctor,
		Slot:       *sess.Slot,
	})

	var rejected *clinic.RejectedError
	switch {
	case errors.As(err, &rejected):
		uc.logger.Warn("conversation: reservation for user %d rejected: %v", ev.UserID, err)
		return keyboards.Back(templates.ReservationRejected(rejected.Message), keyboards.BackToSchedule), nil
	case errors.Is(err, clinic.ErrAuthFailed):
		sess.Reset()
		return withNotice(templates.StoredCredentialsRejected, keyboards.MainMenu(true)), nil
	case err != nil:
		return domain.OutgoingMessage{}, err
	}

	sel := selection(sess)
	sess.Reset()
	return keyboards.BookingDone(sel), nil
}

// render сообщение текущего шага мастера
func (uc *UseCase) render(sess *domain.Session) domain.OutgoingMessage {
	sel := selection(sess)

	switch sess.Step {
	case domain.StepBranch:
		return keyboards.Branches(sess.Branches, sess.BranchPage, uc.opts.BranchesPerPage)
	case domain.StepDepartment:
		return keyboards.Departments(sess.Departments, sess.DepartmentPage, uc.opts.DepartmentsPerPage)
	case domain.StepDoctor:
		return keyboards.Doctors(sess.Doctors, sess.DoctorPage, uc.opts.DoctorsPerPage, sel)
	case domain.StepDate:
		return keyboards.Calendar(uc.today(), uc.opts.DaysAhead, sel)
	case domain.StepTime:
		return keyboards.TimeSlots(sess.Slots, sel)
	case domain.StepConfirm:
		return keyboards.ConfirmBooking(sel)
	default:
		return keyboards.MainMenu(false)
	}
}

func selection(sess *domain.Session) templates.Selection {
	sel := templates.Selection{Date: sess.Date}
	if sess.Branch != nil {
		sel.Branch = sess.Branch.Name
	}
	if sess.Department != nil {
		sel.Department = sess.Department.Name
	}
	if sess.Doctor != nil {
		sel.Doctor = sess.Doctor.Name
	}
	if sess.Slot != nil {
		sel.Time = sess.Slot.Time
	}
	return sel
}
