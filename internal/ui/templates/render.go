package templates

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

// Selection выбор пользователя для сводок
type Selection struct {
	Branch     string
	Department string
	Doctor     string
	Date       string // YYYYMMDD
	Time       string
}

func pageLine(page, total int) string {
	return fmt.Sprintf("Страница %d из %d", page+1, total)
}

func Branches(page, totalPages int) string {
	return "Выберите филиал:\n\n" + pageLine(page, totalPages)
}

func Departments(page, totalPages int) string {
	return "Выберите отделение:\n\n" + pageLine(page, totalPages)
}

func Doctors(sel Selection, page, totalPages int) string {
	return fmt.Sprintf("Выберите врача:\n\n📍 Филиал: %s\n🏥 Отделение: %s\n\n%s",
		sel.Branch, sel.Department, pageLine(page, totalPages))
}

func selectedLines(sel Selection) []string {
	return []string{
		"✅ Вы выбрали:",
		"📍 Филиал: " + sel.Branch,
		"🏥 Отделение: " + sel.Department,
		"👨‍⚕️ Врач: " + sel.Doctor,
	}
}

func Calendar(sel Selection) string {
	return strings.Join(selectedLines(sel), "\n") + "\n\n📅 Выберите дату:"
}

// TimeSlots текст выбора времени; empty - свободного времени нет
func TimeSlots(sel Selection, empty bool) string {
	lines := append(selectedLines(sel),
		"📅 Дата: "+domain.HumanDate(sel.Date),
		"",
		"🕐 Доступное время:",
	)
	if empty {
		lines = append(lines, NoFreeTime)
	} else {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func ConfirmBooking(sel Selection) string {
	lines := append(selectedLines(sel),
		"📅 Дата: "+domain.HumanDate(sel.Date),
		"🕐 Время: "+sel.Time,
		"",
		"Подтвердите запись.",
	)
	return strings.Join(lines, "\n")
}

func BookingDone(sel Selection) string {
	return fmt.Sprintf("🎉 Вы успешно записаны!\n\n📍 Филиал: %s\n🏥 Отделение: %s\n👨‍⚕️ Врач: %s\n📅 Дата: %s\n🕐 Время: %s",
		sel.Branch, sel.Department, sel.Doctor, domain.HumanDate(sel.Date), sel.Time)
}

// ReservationRejected отказ МИС; reason может быть пустым
func ReservationRejected(reason string) string {
	if reason == "" {
		return ReservationFailed
	}
	return "❌ Не удалось записаться: " + reason
}

func PersonalCabinet(u *domain.RegisteredUser) string {
	var b strings.Builder
	b.WriteString("👤 Личный кабинет\n\n")
	fmt.Fprintf(&b, "ФИО: %s\n", u.FullName())
	if u.BirthDate != "" {
		fmt.Fprintf(&b, "Дата рождения: %s\n", u.BirthDate)
	}
	fmt.Fprintf(&b, "Логин: %s", u.ClinicLogin)
	return b.String()
}

// Records список предстоящих записей
func Records(records []domain.Record) string {
	if len(records) == 0 {
		return RecordsEmpty
	}

	var b strings.Builder
	b.WriteString("📅 Ваши записи:\n")
	for i, r := range records {
		fmt.Fprintf(&b, "\n%d. %s %s", i+1, domain.HumanDate(r.Date), r.Time)
		if r.DoctorName != "" {
			fmt.Fprintf(&b, "\n👨‍⚕️ %s", r.DoctorName)
		}
		if r.DepartmentName != "" {
			fmt.Fprintf(&b, "\n🏥 %s", r.DepartmentName)
		}
		if r.FilialName != "" {
			fmt.Fprintf(&b, "\n📍 %s", r.FilialName)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// WithNotice текст уведомления над основным текстом
func WithNotice(notice, text string) string {
	if notice == "" {
		return text
	}
	return notice + "\n\n" + text
}
