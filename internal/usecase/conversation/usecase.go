package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
	"github.com/m04kA/SMC-ClinicBot/internal/service/users"
	"github.com/m04kA/SMC-ClinicBot/internal/ui/keyboards"
	"github.com/m04kA/SMC-ClinicBot/internal/ui/templates"
)

const (
	CommandStart = "start"
	CommandClear = "clear"
)

const (
	defaultPerPage   = 5
	defaultDaysAhead = 14
)

// Options размеры страниц мастера записи и глубина календаря
type Options struct {
	BranchesPerPage    int
	DepartmentsPerPage int
	DoctorsPerPage     int
	DaysAhead          int
}

// UseCase ведёт диалог с пользователем: команды, кнопки и ввод текста
type UseCase struct {
	messenger Messenger
	sessions  SessionStore
	clinic    ClinicService
	users     UserService
	metrics   MetricsCollector
	logger    Logger
	opts      Options
	now       func() time.Time
}

// New metrics может быть nil
func New(
	messenger Messenger,
	sessions SessionStore,
	clinicService ClinicService,
	userService UserService,
	metrics MetricsCollector,
	logger Logger,
	opts Options,
) *UseCase {
	for _, size := range []*int{&opts.BranchesPerPage, &opts.DepartmentsPerPage, &opts.DoctorsPerPage} {
		if *size <= 0 {
			*size = defaultPerPage
		}
	}
	if opts.DaysAhead <= 0 {
		opts.DaysAhead = defaultDaysAhead
	}

	return &UseCase{
		messenger: messenger,
		sessions:  sessions,
		clinic:    clinicService,
		users:     userService,
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

// HandleUpdate обрабатывает одно обновление мессенджера.
// Ошибка обработчика уже показана пользователю; возвращается для логирования выше.
func (uc *UseCase) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	ev, ok := EventFromUpdate(update)
	if !ok {
		return nil
	}

	err := uc.Handle(ctx, ev)

	if uc.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		uc.metrics.ObserveBotUpdate(string(ev.Kind), status)
	}
	return err
}

// Handle загружает сессию, выполняет обработчик, сохраняет сессию и отправляет ответ
func (uc *UseCase) Handle(ctx context.Context, ev Event) error {
	if ev.Kind == EventCallback {
		if err := uc.messenger.AnswerCallback(ev.CallbackID, ""); err != nil {
			uc.logger.Warn("conversation: answer callback %s: %v", ev.CallbackID, err)
		}
	}

	sess, err := uc.sessions.Get(ctx, ev.UserID)
	if err != nil {
		loadErr := fmt.Errorf("%w: user %d: %v", ErrLoadSession, ev.UserID, err)
		uc.deliver(ev, uc.failure(ctx, ev.UserID, loadErr))
		return loadErr
	}

	reply, handleErr := uc.dispatch(ctx, ev, sess)
	if handleErr != nil {
		handleErr = fmt.Errorf("usecase.conversation: %s from user %d: %w", ev.Kind, ev.UserID, handleErr)
		reply = uc.failure(ctx, ev.UserID, handleErr)
		sess.Reset()
	}

	var saveErr error
	if err := uc.sessions.Save(ctx, ev.UserID, sess); err != nil {
		saveErr = fmt.Errorf("%w: user %d: %v", ErrSaveSession, ev.UserID, err)
	}

	deliverErr := uc.deliver(ev, reply)

	switch {
	case handleErr != nil:
		return handleErr
	case saveErr != nil:
		return saveErr
	default:
		return deliverErr
	}
}

func (uc *UseCase) dispatch(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	switch ev.Kind {
	case EventCommand:
		return uc.onCommand(ctx, ev, sess)
	case EventCallback:
		return uc.onCallback(ctx, ev, sess)
	default:
		return uc.onText(ctx, ev, sess)
	}
}

// deliver кнопка редактирует своё сообщение, текст получает новое.
// Если сообщение отредактировать нельзя (слишком старое, удалено), отправляется новое.
func (uc *UseCase) deliver(ev Event, msg domain.OutgoingMessage) error {
	if ev.Kind == EventCallback && ev.MessageID != 0 {
		err := uc.messenger.EditMessage(ev.ChatID, ev.MessageID, msg)
		if err == nil {
			return nil
		}
		uc.logger.Warn("conversation: edit message %d in chat %d: %v", ev.MessageID, ev.ChatID, err)
	}

	if err := uc.messenger.SendMessage(ev.ChatID, msg); err != nil {
		return fmt.Errorf("%w: chat %d: %v", ErrReply, ev.ChatID, err)
	}
	return nil
}

// failure текст ошибки над главным меню
func (uc *UseCase) failure(ctx context.Context, userID int64, err error) domain.OutgoingMessage {
	uc.logger.Error("conversation: %v", err)

	notice := templates.GenericError
	if errors.Is(err, clinic.ErrUnavailable) || errors.Is(err, clinic.ErrUnexpectedResponse) {
		notice = templates.ClinicUnavailable
	}
	return withNotice(notice, uc.mainMenu(ctx, userID))
}

func (uc *UseCase) onCommand(ctx context.Context, ev Event, sess *domain.Session) (domain.OutgoingMessage, error) {
	switch ev.Command {
	case CommandStart:
		sess.Reset()
		return uc.mainMenu(ctx, ev.UserID), nil
	case CommandClear:
		sess.Reset()
		return withNotice(templates.SessionCleared, uc.mainMenu(ctx, ev.UserID)), nil
	default:
		return domain.OutgoingMessage{Text: templates.UnknownCommand}, nil
	}
}

// currentUser nil без ошибки, если пользователь не зарегистрирован
func (uc *UseCase) currentUser(ctx context.Context, userID int64) (*domain.RegisteredUser, error) {
	user, err := uc.users.Get(ctx, userID)
	if errors.Is(err, users.ErrNotRegistered) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// mainMenu при недоступной базе показывает меню незарегистрированного пользователя
func (uc *UseCase) mainMenu(ctx context.Context, userID int64) domain.OutgoingMessage {
	user, err := uc.currentUser(ctx, userID)
	if err != nil {
		uc.logger.Warn("conversation: check registration of user %d: %v", userID, err)
	}
	return keyboards.MainMenu(user != nil)
}

// stale кнопка не подходит к текущему шагу: сброс в главное меню
func (uc *UseCase) stale(ctx context.Context, ev Event, sess *domain.Session) domain.OutgoingMessage {
	uc.logger.Warn("conversation: user %d pressed %q on step %s", ev.UserID, ev.Payload, sess.Step)
	sess.Reset()
	return withNotice(templates.StaleButton, uc.mainMenu(ctx, ev.UserID))
}

func (uc *UseCase) notRegistered(sess *domain.Session) domain.OutgoingMessage {
	sess.Reset()
	return withNotice(templates.NotRegistered, keyboards.MainMenu(false))
}

func (uc *UseCase) today() time.Time {
	now := uc.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func withNotice(notice string, msg domain.OutgoingMessage) domain.OutgoingMessage {
	msg.Text = templates.WithNotice(notice, msg.Text)
	return msg
}
