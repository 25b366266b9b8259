package conversation

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
	"github.com/m04kA/SMC-ClinicBot/internal/service/users"
	"github.com/m04kA/SMC-ClinicBot/internal/ui/keyboards"
	"github.com/m04kA/SMC-ClinicBot/internal/ui/templates"
)

func (uc *UseCase) onCallback(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	p, err := keyboards.Parse(ev.Payload)
	if err != nil {
		return uc.stale(ctx, ev, sess), nil
	}
	if p.Action != keyboards.ActionStatic {
		return uc.onWizard(ctx, ev, sess, p)
	}

	if to, ok := backSteps[p.Static]; ok {
		return uc.back(ctx, ev, sess, to), nil
	}

	switch p.Static {
	case keyboards.BackToMain:
		sess.Reset()
		return uc.mainMenu(ctx, ev.UserID), nil
	case keyboards.PayloadMakeAppointment:
		return uc.startBooking(ctx, sess)
	case keyboards.PayloadConfirmReservation:
		return uc.confirmReservation(ctx, ev, sess)
	case keyboards.PayloadCurrentAppointment:
		return uc.showRecords(ctx, ev, sess, "")
	case keyboards.PayloadPersonalCabinet:
		return uc.showCabinet(ctx, ev, sess)
	case keyboards.PayloadRegistration:
		return uc.startRegistration(ctx, ev, sess)
	case keyboards.PayloadLogin:
		return uc.startLogin(ctx, ev, sess)
	case keyboards.PayloadChangeCredentials:
		return uc.startChangeCredentials(ctx, ev, sess)
	case keyboards.PayloadDeleteAccount:
		return uc.askDelete(ctx, ev, sess)
	case keyboards.PayloadDeleteConfirm:
		return uc.deleteAccount(ctx, ev, sess)
	default:
		return uc.stale(ctx, ev, sess), nil
	}
}

// showRecords предстоящие записи пациента; notice выводится над списком
func (uc *UseCase) showRecords(ctx context.Context, ev Event, sess *domain.Session, notice string) (domain.OutgoingMessage, error) {
	user, err := uc.currentUser(ctx, ev.UserID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}
	if user == nil {
		return uc.notRegistered(sess), nil
	}

	sess.Reset()
	records, err := uc.clinic.Records(ctx, user)
	if errors.Is(err, clinic.ErrAuthFailed) {
		return withNotice(templates.StoredCredentialsRejected, keyboards.MainMenu(true)), nil
	}
	if err != nil {
		return domain.OutgoingMessage{}, err
	}

	return withNotice(notice, keyboards.Records(records)), nil
}

func (uc *UseCase) cancelRecord(ctx context.Context, ev Event, sess *domain.Session, schedID, filialID int64) (domain.OutgoingMessage, error) {
	user, err := uc.currentUser(ctx, ev.UserID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}
	if user == nil {
		return uc.notRegistered(sess), nil
	}

	notice := templates.RecordCancelled
	err = uc.clinic.CancelRecord(ctx, user, schedID, filialID)

	var rejected *clinic.RejectedError
	switch {
	case errors.As(err, &rejected):
		uc.logger.Warn("conversation: cancel of record %d for user %d rejected: %v", schedID, ev.UserID, err)
		notice = templates.CancelFailed
	case errors.Is(err, clinic.ErrAuthFailed):
		sess.Reset()
		return withNotice(templates.StoredCredentialsRejected, keyboards.MainMenu(true)), nil
	case err != nil:
		return domain.OutgoingMessage{}, err
	}

	return uc.showRecords(ctx, ev, sess, notice)
}

func (uc *UseCase) showCabinet(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	user, err := uc.currentUser(ctx, ev.UserID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}
	if user == nil {
		return uc.notRegistered(sess), nil
	}

	sess.Reset()
	return keyboards.PersonalCabinet(user), nil
}

func (uc *UseCase) startRegistration(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	user, err := uc.currentUser(ctx, ev.UserID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}
	if user != nil {
		sess.Reset()
		return withNotice(templates.AlreadyRegistered, keyboards.MainMenu(true)), nil
	}

	if err := enterAuthStep(sess, domain.StepAwaitRegistration); err != nil {
		return domain.OutgoingMessage{}, err
	}
	sess.Registration = nil
	return keyboards.Back(templates.RegistrationPrompt, keyboards.BackToMain), nil
}

func (uc *UseCase) startLogin(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	user, err := uc.currentUser(ctx, ev.UserID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}
	if user != nil {
		sess.Reset()
		return withNotice(templates.AlreadyRegistered, keyboards.MainMenu(true)), nil
	}

	if err := enterAuthStep(sess, domain.StepAwaitLogin); err != nil {
		return domain.OutgoingMessage{}, err
	}
	sess.Registration = nil
	return keyboards.Back(templates.LoginPrompt, keyboards.BackToMain), nil
}

// enterAuthStep переход к регистрации или входу. Со страницы подтверждения
// выбранная запись сохраняется, из остальных мест диалог начинается заново.
func enterAuthStep(sess *domain.Session, to domain.Step) error {
	pending := sess.PendingBooking || sess.Step == domain.StepConfirm
	if !pending || !sess.HasBookingDraft() || !sess.Step.CanTransition(to) {
		sess.Reset()
		return sess.Advance(to)
	}

	sess.PendingBooking = true
	return sess.Advance(to)
}

func (uc *UseCase) startChangeCredentials(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	user, err := uc.currentUser(ctx, ev.UserID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}
	if user == nil {
		return uc.notRegistered(sess), nil
	}

	sess.Reset()
	if err := sess.Advance(domain.StepAwaitNewCredentials); err != nil {
		return domain.OutgoingMessage{}, err
	}
	return keyboards.Back(templates.NewCredentialsPrompt, keyboards.PayloadPersonalCabinet), nil
}

func (uc *UseCase) askDelete(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	user, err := uc.currentUser(ctx, ev.UserID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}
	if user == nil {
		return uc.notRegistered(sess), nil
	}

	sess.Reset()
	if err := sess.Advance(domain.StepDeleteConfirm); err != nil {
		return domain.OutgoingMessage{}, err
	}
	return keyboards.DeleteConfirm(), nil
}

// deleteAccount удаляет только локальную запись, пациентская карта в МИС остаётся
func (uc *UseCase) deleteAccount(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	if sess.Step != domain.StepDeleteConfirm {
		return uc.stale(ctx, ev, sess), nil
	}

	err := uc.users.Delete(ctx, ev.UserID)
	if errors.Is(err, users.ErrNotRegistered) {
		return uc.notRegistered(sess), nil
	}
	if err != nil {
		return domain.OutgoingMessage{}, err
	}

	sess.Reset()
	return withNotice(templates.AccountDeleted, keyboards.MainMenu(false)), nil
}
