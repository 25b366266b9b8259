package templates

// Тексты сообщений бота
const (
	MainMenu = "Чат-бот клиники 💙\n\nВыберите действие:"

	SessionCleared = "Ваш контекст был очищен!"
	UnknownCommand = "Неизвестная команда. Отправьте /start"
	UseMenu        = "Пожалуйста, воспользуйтесь кнопками меню."

	GenericError      = "😔 Произошла ошибка. Попробуйте позже."
	ClinicUnavailable = "⚠️ Сервис записи временно недоступен. Попробуйте позже."
	NotFound          = "❗ Выбранный пункт не найден. Выберите из списка."
	StaleButton       = "Меню устарело, начните заново."
	NoBranches        = "Список филиалов пуст. Попробуйте позже."

	RegistrationPrompt = `📝 Регистрация в личном кабинете

Отправьте одним сообщением 6 строк:
1. Фамилия
2. Имя
3. Отчество
4. Дата рождения (ГГГГ-ММ-ДД)
5. Логин
6. Пароль

Пример:
Иванов
Иван
Иванович
1990-05-01
ivanov
MyPassword1`
	RegistrationInvalid = "❗ Не удалось разобрать данные. Нужно 6 строк, дата рождения в формате ГГГГ-ММ-ДД."
	PhonePrompt         = "📱 Введите номер телефона в формате +7(XXX)XXX-XX-XX"
	PhoneInvalid        = "❗ Неверный формат телефона. Пример: +7(999)123-45-67"
	RegistrationDone    = "✅ Регистрация завершена! Теперь вы можете записываться на приём."
	AlreadyRegistered   = "Вы уже зарегистрированы."
	RegistrationFailed  = "❌ Не удалось зарегистрироваться в клинике. Попробуйте позже."

	LoginPrompt = `🔑 Вход в личный кабинет

Отправьте одним сообщением 2 строки:
1. Логин
2. Пароль`
	CredentialsInvalid = "❗ Отправьте логин и пароль двумя строками."
	LoginFailed        = "❌ Неверный логин или пароль. Попробуйте ещё раз."
	LoginDone          = "✅ Вы вошли в личный кабинет."

	StoredCredentialsRejected = "❌ Клиника не приняла сохранённые логин и пароль. Обновите их в личном кабинете."

	AuthRequired = "Для записи на приём нужен личный кабинет клиники.\n\nЗарегистрируйтесь или войдите с существующим логином и паролем."

	NewCredentialsPrompt = `🔐 Отправьте новый логин и пароль двумя строками:
1. Логин
2. Пароль`
	CredentialsChanged      = "✅ Логин и пароль изменены."
	CredentialsChangeFailed = "❌ Не удалось изменить логин и пароль. Попробуйте позже."

	DeleteConfirm  = "🗑 Удалить аккаунт? Данные будут удалены из бота, пациентская карта в клинике сохранится."
	AccountDeleted = "✅ Аккаунт удалён."
	NotRegistered  = "Вы ещё не зарегистрированы. Пройдите регистрацию в главном меню."

	RecordsEmpty    = "📅 У вас нет предстоящих записей."
	RecordCancelled = "✅ Запись отменена."
	CancelFailed    = "❌ Не удалось отменить запись."

	ReservationFailed = "❌ Не удалось записаться. Выберите другое время."

	NoFreeTime = "\n⏰ На выбранную дату свободное время отсутствует.\nПопробуйте выбрать другую дату."
)
