package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	userRepo "github.com/m04kA/SMC-ClinicBot/internal/infra/storage/registereduser"
	"github.com/m04kA/SMC-ClinicBot/internal/integrations/patientsapi"
	"github.com/m04kA/SMC-ClinicBot/pkg/ptr"
)

// Service учёт пользователей, зарегистрированных в МИС через бота
type Service struct {
	repo     UserRepository
	patients PatientsAPI
	tx       TxManager
	logger   Logger
}

func NewService(repo UserRepository, patients PatientsAPI, tx TxManager, logger Logger) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		tx:       tx,
		logger:   logger,
	}
}

// Get возвращает пользователя по ID в мессенджере
func (s *Service) Get(ctx context.Context, platformUserID int64) (*domain.RegisteredUser, error) {
	user, err := s.repo.GetByPlatformID(ctx, platformUserID)
	if errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, ErrNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - repository: %v", ErrInternal, err)
	}
	return user, nil
}

func (s *Service) IsRegistered(ctx context.Context, platformUserID int64) (bool, error) {
	_, err := s.Get(ctx, platformUserID)
	if errors.Is(err, ErrNotRegistered) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Register создаёт пациента в МИС и сохраняет его локально.
// Обе операции выполняются в одной транзакции: при ошибке сохранения запись в БД не остаётся.
func (s *Service) Register(ctx context.Context, platformUserID int64, draft domain.RegistrationDraft) (*domain.RegisteredUser, error) {
	if draft.LastName == "" || draft.FirstName == "" || draft.Login == "" || draft.Password == "" {
		return nil, fmt.Errorf("%w: lastname, firstname, login and password are required", ErrInvalidInput)
	}

	var user *domain.RegisteredUser
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		registered, err := s.IsRegistered(ctx, platformUserID)
		if err != nil {
			return err
		}
		if registered {
			return ErrAlreadyRegistered
		}

		pcode, err := s.patients.CreatePatient(ctx, patientsapi.CreatePatientRequest{
			LastName:   draft.LastName,
			FirstName:  draft.FirstName,
			MiddleName: draft.MiddleName,
			BirthDate:  draft.BirthDate,
			Login:      draft.Login,
			Password:   draft.Password,
			Phone:      draft.Phone,
		})
		if err != nil {
			return fmt.Errorf("%w: Register - create patient: %v", ErrPatientsAPI, err)
		}

		user = &domain.RegisteredUser{
			PlatformUserID: platformUserID,
			PCode:          pcode,
			LastName:       draft.LastName,
			FirstName:      draft.FirstName,
			MiddleName:     ptr.NonEmpty(draft.MiddleName),
			BirthDate:      draft.BirthDate,
			ClinicLogin:    draft.Login,
			ClinicPassword: draft.Password,
		}
		return s.create(ctx, user, "Register")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User %d registered in clinic system, pcode=%s", platformUserID, user.PCode)
	return user, nil
}

// Link привязывает пользователя мессенджера к существующему кабинету МИС.
// Если эти логин и пароль уже есть в локальной базе, анкета копируется оттуда.
func (s *Service) Link(ctx context.Context, in LinkInput) (*domain.RegisteredUser, error) {
	if in.Credentials.Login == "" || in.Credentials.Password == "" {
		return nil, fmt.Errorf("%w: login and password are required", ErrInvalidInput)
	}

	user := &domain.RegisteredUser{
		PlatformUserID: in.PlatformUserID,
		PCode:          in.PCode,
		ClinicLogin:    in.Credentials.Login,
		ClinicPassword: in.Credentials.Password,
	}

	known, err := s.repo.GetByCredentials(ctx, in.Credentials.Login, in.Credentials.Password)
	switch {
	case err == nil:
		if known.PlatformUserID == in.PlatformUserID {
			return known, nil
		}
		user.LastName, user.FirstName, user.MiddleName = known.LastName, known.FirstName, known.MiddleName
		user.BirthDate = known.BirthDate
		if user.PCode == "" {
			user.PCode = known.PCode
		}
	case errors.Is(err, userRepo.ErrUserNotFound):
		user.LastName, user.FirstName, user.MiddleName = splitFullName(in.FullName)
	default:
		return nil, fmt.Errorf("%w: Link - repository: %v", ErrInternal, err)
	}

	if err := s.create(ctx, user, "Link"); err != nil {
		return nil, err
	}

	s.logger.Info("User %d linked to clinic account, pcode=%s", in.PlatformUserID, user.PCode)
	return user, nil
}

// ChangeCredentials меняет логин и пароль в МИС и в локальной базе
func (s *Service) ChangeCredentials(ctx context.Context, platformUserID int64, creds domain.Credentials) error {
	if creds.Login == "" || creds.Password == "" {
		return fmt.Errorf("%w: login and password are required", ErrInvalidInput)
	}

	user, err := s.Get(ctx, platformUserID)
	if err != nil {
		return err
	}

	err = s.patients.UpdateCredentials(ctx, user.PCode, patientsapi.UpdateCredentialsRequest{
		Login:    creds.Login,
		Password: creds.Password,
	})
	if err != nil {
		return fmt.Errorf("%w: ChangeCredentials - update patient: %v", ErrPatientsAPI, err)
	}

	err = s.repo.UpdateCredentials(ctx, platformUserID, creds)
	if errors.Is(err, userRepo.ErrUserNotFound) {
		return ErrNotRegistered
	}
	if err != nil {
		// в МИС данные уже изменены, локальная запись разошлась
		s.logger.Warn("Credentials of user %d changed in clinic system but not saved locally: %v", platformUserID, err)
		return fmt.Errorf("%w: ChangeCredentials - repository: %v", ErrInternal, err)
	}
	return nil
}

// Delete удаляет локальную запись пользователя; пациент в МИС остаётся
func (s *Service) Delete(ctx context.Context, platformUserID int64) error {
	err := s.repo.DeleteByPlatformID(ctx, platformUserID)
	if errors.Is(err, userRepo.ErrUserNotFound) {
		return ErrNotRegistered
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - repository: %v", ErrInternal, err)
	}

	s.logger.Info("User %d deleted", platformUserID)
	return nil
}

func (s *Service) create(ctx context.Context, user *domain.RegisteredUser, method string) error {
	err := s.repo.Create(ctx, user)
	if errors.Is(err, userRepo.ErrUserAlreadyExists) {
		return ErrAlreadyRegistered
	}
	if err != nil {
		return fmt.Errorf("%w: %s - repository: %v", ErrInternal, method, err)
	}
	return nil
}

// splitFullName "Фамилия Имя Отчество..." -> фамилия, имя, отчество (остаток)
func splitFullName(full string) (last, first string, middle *string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", "", nil
	case 1:
		return parts[0], "", nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return parts[0], parts[1], ptr.Ptr(strings.Join(parts[2:], " "))
	}
}
