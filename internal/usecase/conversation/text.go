package conversation

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
	"github.com/m04kA/SMC-ClinicBot/internal/service/users"
	"github.com/m04kA/SMC-ClinicBot/internal/ui/keyboards"
	"github.com/m04kA/SMC-ClinicBot/internal/ui/templates"
	"github.com/m04kA/SMC-ClinicBot/internal/usecase/validate"
)

// onText свободный текст принимается только на шагах ввода данных.
// Некорректный ввод повторяет подсказку, шаг не меняется.
func (uc *UseCase) onText(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	switch sess.Step {
	case domain.StepAwaitRegistration:
		return uc.onRegistrationData(sess, ev.Text)
	case domain.StepAwaitPhone:
		return uc.onPhone(ctx, ev, sess)
	case domain.StepAwaitLogin:
		return uc.onLogin(ctx, ev, sess)
	case domain.StepAwaitNewCredentials:
		return uc.onNewCredentials(ctx, ev, sess)
	default:
		return withNotice(templates.UseMenu, uc.mainMenu(ctx, ev.UserID)), nil
	}
}

func (uc *UseCase) onRegistrationData(sess *domain.Session, text string) (domain.OutgoingMessage, error) {
	draft, err := validate.ParseRegistration(text)
	if err != nil {
		return keyboards.Back(templates.WithNotice(templates.RegistrationInvalid, templates.RegistrationPrompt), keyboards.BackToMain), nil
	}

	sess.Registration = &draft
	if err := sess.Advance(domain.StepAwaitPhone); err != nil {
		return domain.OutgoingMessage{}, err
	}
	return keyboards.Back(templates.PhonePrompt, keyboards.BackToMain), nil
}

func (uc *UseCase) onPhone(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	if sess.Registration == nil {
		return uc.stale(ctx, ev, sess), nil
	}
	if err := validate.Phone(ev.Text); err != nil {
		return keyboards.Back(templates.PhoneInvalid, keyboards.BackToMain), nil
	}

	draft := *sess.Registration
	draft.Phone = ev.Text

	_, err := uc.users.Register(ctx, ev.UserID, draft)
	switch {
	case errors.Is(err, users.ErrAlreadyRegistered):
		sess.Reset()
		return withNotice(templates.AlreadyRegistered, keyboards.MainMenu(true)), nil
	case errors.Is(err, users.ErrPatientsAPI), errors.Is(err, users.ErrInvalidInput):
		uc.logger.Warn("conversation: registration of user %d failed: %v", ev.UserID, err)
		sess.Reset()
		return withNotice(templates.RegistrationFailed, keyboards.MainMenu(false)), nil
	case err != nil:
		return domain.OutgoingMessage{}, err
	}

	sess.Registration = nil
	return uc.afterAuth(sess, templates.RegistrationDone)
}

// onLogin вход с существующими логином и паролем личного кабинета МИС
func (uc *UseCase) onLogin(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	creds, err := validate.ParseCredentials(ev.Text)
	if err != nil {
		return keyboards.Back(templates.WithNotice(templates.CredentialsInvalid, templates.LoginPrompt), keyboards.BackToMain), nil
	}

	patient, err := uc.clinic.Authorize(ctx, creds)
	if errors.Is(err, clinic.ErrAuthFailed) {
		return keyboards.Back(templates.WithNotice(templates.LoginFailed, templates.LoginPrompt), keyboards.BackToMain), nil
	}
	if err != nil {
		return domain.OutgoingMessage{}, err
	}

	_, err = uc.users.Link(ctx, users.LinkInput{
		PlatformUserID: ev.UserID,
		PCode:          patient.PCode,
		FullName:       patient.FullName,
		Credentials:    creds,
	})
	if errors.Is(err, users.ErrAlreadyRegistered) {
		sess.Reset()
		return withNotice(templates.AlreadyRegistered, keyboards.MainMenu(true)), nil
	}
	if err != nil {
		return domain.OutgoingMessage{}, err
	}

	return uc.afterAuth(sess, templates.LoginDone)
}

// afterAuth после регистрации или входа возвращает к подтверждению отложенной записи
func (uc *UseCase) afterAuth(sess *domain.Session, notice string) (domain.OutgoingMessage, error) {
	if !sess.PendingBooking || !sess.HasBookingDraft() {
		sess.Reset()
		return withNotice(notice, keyboards.MainMenu(true)), nil
	}

	sess.PendingBooking = false
	if err := sess.Advance(domain.StepConfirm); err != nil {
		return domain.OutgoingMessage{}, err
	}
	return withNotice(notice, uc.render(sess)), nil
}

func (uc *UseCase) onNewCredentials(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	user, err := uc.currentUser(ctx, ev.UserID)
	if err != nil {
		return domain.OutgoingMessage{}, err
	}
	if user == nil {
		return uc.notRegistered(sess), nil
	}

	creds, err := validate.ParseCredentials(ev.Text)
	if err != nil {
		return keyboards.Back(templates.WithNotice(templates.CredentialsInvalid, templates.NewCredentialsPrompt), keyboards.PayloadPersonalCabinet), nil
	}

	err = uc.users.ChangeCredentials(ctx, ev.UserID, creds)
	switch {
	case errors.Is(err, users.ErrNotRegistered):
		return uc.notRegistered(sess), nil
	case errors.Is(err, users.ErrPatientsAPI):
		uc.logger.Warn("conversation: change credentials of user %d failed: %v", ev.UserID, err)
		sess.Reset()
		return withNotice(templates.CredentialsChangeFailed, keyboards.PersonalCabinet(user)), nil
	case err != nil:
		return domain.OutgoingMessage{}, err
	}

	user.ClinicLogin, user.ClinicPassword = creds.Login, creds.Password
	sess.Reset()
	return withNotice(templates.CredentialsChanged, keyboards.PersonalCabinet(user)), nil
}
