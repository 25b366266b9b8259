package keyboards

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/ui/templates"
	"github.com/m04kA/SMC-ClinicBot/pkg/pagination"
)

const (
	nameLimit = 30

	calendarRowSize = 3
	timeRowSize     = 2

	placeholderName   = "Без названия"
	placeholderDoctor = "Врач"
)

var weekdays = map[time.Weekday]string{
	time.Monday:    "Пн",
	time.Tuesday:   "Вт",
	time.Wednesday: "Ср",
	time.Thursday:  "Чт",
	time.Friday:    "Пт",
	time.Saturday:  "Сб",
	time.Sunday:    "Вс",
}

func btn(text, payload string) domain.Button {
	return domain.Button{Text: text, Payload: payload}
}

func row(buttons ...domain.Button) []domain.Button {
	return buttons
}

// truncate обрезает название до 30 символов с "..."; пустое заменяется placeholder
func truncate(name, placeholder string) string {
	if strings.TrimSpace(name) == "" {
		return placeholder
	}
	runes := []rune(name)
	if len(runes) > nameLimit {
		return string(runes[:nameLimit]) + "..."
	}
	return name
}

// MainMenu главное меню; последняя кнопка зависит от регистрации
func MainMenu(registered bool) domain.OutgoingMessage {
	kb := domain.Keyboard{
		row(btn("📅 Текущая запись", PayloadCurrentAppointment)),
		row(btn("➕ Записаться на прием", PayloadMakeAppointment)),
	}
	if registered {
		kb = append(kb, row(btn("👤 Личный кабинет", PayloadPersonalCabinet)))
	} else {
		kb = append(kb, row(btn("📝 Регистрация", PayloadRegistration)))
	}

	return domain.OutgoingMessage{Text: templates.MainMenu, Keyboard: kb}
}

func PersonalCabinet(user *domain.RegisteredUser) domain.OutgoingMessage {
	return domain.OutgoingMessage{
		Text: templates.PersonalCabinet(user),
		Keyboard: domain.Keyboard{
			row(btn("🔙 Назад", BackToMain)),
			row(btn("🔐 Поменять логин и пароль", PayloadChangeCredentials)),
			row(btn("🗑 Удалить аккаунт", PayloadDeleteAccount)),
		},
	}
}

func DeleteConfirm() domain.OutgoingMessage {
	return domain.OutgoingMessage{
		Text: templates.DeleteConfirm,
		Keyboard: domain.Keyboard{
			row(btn("✅ Да, удалить", PayloadDeleteConfirm)),
			row(btn("🔙 Назад", PayloadPersonalCabinet)),
		},
	}
}

// AuthChoice запись требует кабинета: регистрация или вход
func AuthChoice() domain.OutgoingMessage {
	return domain.OutgoingMessage{
		Text: templates.AuthRequired,
		Keyboard: domain.Keyboard{
			row(btn("📝 Регистрация", PayloadRegistration)),
			row(btn("🔑 Войти", PayloadLogin)),
			row(btn("🔙 Назад к выбору даты", BackToSchedule)),
		},
	}
}

// Back сообщение с единственной кнопкой "Назад"
func Back(text, payload string) domain.OutgoingMessage {
	return domain.OutgoingMessage{
		Text:     text,
		Keyboard: domain.Keyboard{row(btn("🔙 Назад", payload))},
	}
}

// pageNav кнопки "◀ Назад" / "Вперед ▶"; nil, если страница одна
func pageNav(page pagination.Page[domain.Button], encode func(int) string) []domain.Button {
	var nav []domain.Button
	if page.HasPrev {
		nav = append(nav, btn("◀ Назад", encode(page.Page-1)))
	}
	if page.HasNext {
		nav = append(nav, btn("Вперед ▶", encode(page.Page+1)))
	}
	return nav
}

// paginated раскладывает кнопки по одной в ряд, добавляет навигацию и "Назад"
func paginated(items []domain.Button, page, size int, encode func(int) string, back domain.Button) (domain.Keyboard, pagination.Page[domain.Button]) {
	p := pagination.Paginate(items, page, size)

	kb := make(domain.Keyboard, 0, len(p.Items)+2)
	for _, b := range p.Items {
		kb = append(kb, row(b))
	}
	if nav := pageNav(p, encode); len(nav) > 0 {
		kb = append(kb, nav)
	}
	kb = append(kb, row(back))

	return kb, p
}

func Branches(branches []domain.Branch, page, size int) domain.OutgoingMessage {
	items := make([]domain.Button, 0, len(branches))
	for _, b := range branches {
		items = append(items, btn(truncate(b.Name, placeholderName), BranchPayload(b.ID)))
	}

	kb, p := paginated(items, page, size, BranchesPagePayload, btn("🔙 Назад", BackToMain))
	return domain.OutgoingMessage{Text: templates.Branches(p.Page, p.TotalPages), Keyboard: kb}
}

func Departments(departments []domain.Department, page, size int) domain.OutgoingMessage {
	items := make([]domain.Button, 0, len(departments))
	for _, d := range departments {
		items = append(items, btn(truncate(d.Name, placeholderName), DepartmentPayload(d.ID)))
	}

	kb, p := paginated(items, page, size, DepartmentsPagePayload, btn("🔙 Назад к филиалам", BackToBranches))
	return domain.OutgoingMessage{Text: templates.Departments(p.Page, p.TotalPages), Keyboard: kb}
}

func Doctors(doctors []domain.Doctor, page, size int, sel templates.Selection) domain.OutgoingMessage {
	items := make([]domain.Button, 0, len(doctors))
	for _, d := range doctors {
		items = append(items, btn(truncate(d.Name, placeholderDoctor), DoctorPayload(d.Code)))
	}

	kb, p := paginated(items, page, size, DoctorsPagePayload, btn("🔙 Назад к отделениям", BackToDepartments))
	return domain.OutgoingMessage{Text: templates.Doctors(sel, p.Page, p.TotalPages), Keyboard: kb}
}

// Calendar days дней начиная с today, по 3 в ряд: "dd.mm Пн" -> date_YYYYMMDD
func Calendar(today time.Time, days int, sel templates.Selection) domain.OutgoingMessage {
	kb := make(domain.Keyboard, 0, days/calendarRowSize+2)

	var current []domain.Button
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, i)
		current = append(current, btn(d.Format("02.01")+" "+weekdays[d.Weekday()], DatePayload(d.Format(domain.DateFormat))))
		if len(current) == calendarRowSize {
			kb = append(kb, current)
			current = nil
		}
	}
	if len(current) > 0 {
		kb = append(kb, current)
	}
	kb = append(kb, row(btn("🔙 Назад к врачам", BackToDoctors)))

	return domain.OutgoingMessage{Text: templates.Calendar(sel), Keyboard: kb}
}

// TimeSlots свободное время по 2 в ряд
func TimeSlots(slots []domain.TimeSlot, sel templates.Selection) domain.OutgoingMessage {
	kb := make(domain.Keyboard, 0, len(slots)/timeRowSize+2)

	for i := 0; i < len(slots); i += timeRowSize {
		end := i + timeRowSize
		if end > len(slots) {
			end = len(slots)
		}
		r := make([]domain.Button, 0, timeRowSize)
		for _, s := range slots[i:end] {
			r = append(r, btn(s.Time, TimePayload(s)))
		}
		kb = append(kb, r)
	}
	kb = append(kb, row(btn("🔙 Назад к выбору даты", BackToCalendar)))

	return domain.OutgoingMessage{Text: templates.TimeSlots(sel, len(slots) == 0), Keyboard: kb}
}

func ConfirmBooking(sel templates.Selection) domain.OutgoingMessage {
	return domain.OutgoingMessage{
		Text: templates.ConfirmBooking(sel),
		Keyboard: domain.Keyboard{
			row(btn("✅ Подтвердить запись", PayloadConfirmReservation)),
			row(btn("🔙 Назад к выбору даты", BackToSchedule)),
		},
	}
}

func BookingDone(sel templates.Selection) domain.OutgoingMessage {
	return domain.OutgoingMessage{
		Text:     templates.BookingDone(sel),
		Keyboard: domain.Keyboard{row(btn("🔙 В главное меню", BackToMain))},
	}
}

// Records список записей с кнопкой отмены у каждой
func Records(records []domain.Record) domain.OutgoingMessage {
	kb := make(domain.Keyboard, 0, len(records)+1)
	for _, r := range records {
		label := "❌ Отменить " + shortDate(r.Date)
		if start := strings.TrimSpace(r.Time); start != "" {
			label += " " + start
		}
		kb = append(kb, row(btn(label, RecordCancelPayload(r))))
	}
	kb = append(kb, row(btn("🔙 В главное меню", BackToMain)))

	return domain.OutgoingMessage{Text: templates.Records(records), Keyboard: kb}
}

// shortDate YYYYMMDD -> dd.mm
func shortDate(date string) string {
	t, err := domain.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("02.01")
}
