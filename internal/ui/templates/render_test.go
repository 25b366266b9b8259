package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/pkg/ptr"
)

var sel = Selection{Branch: "Центральный", Department: "Терапия", Doctor: "Петров П.П.", Date: "20260125", Time: "09:00-09:30"}

func TestPaginatedTexts(t *testing.T) {
	assert.Equal(t, "Выберите филиал:\n\nСтраница 2 из 3", Branches(1, 3))
	assert.Equal(t, "Выберите отделение:\n\nСтраница 1 из 1", Departments(0, 1))
	assert.Equal(t, "Выберите врача:\n\n📍 Филиал: Центральный\n🏥 Отделение: Терапия\n\nСтраница 1 из 2", Doctors(sel, 0, 2))
}

func TestCalendar(t *testing.T) {
	assert.Equal(t,
		"✅ Вы выбрали:\n📍 Филиал: Центральный\n🏥 Отделение: Терапия\n👨‍⚕️ Врач: Петров П.П.\n\n📅 Выберите дату:",
		Calendar(sel))
}

func TestTimeSlots(t *testing.T) {
	empty := TimeSlots(sel, true)
	assert.Contains(t, empty, "📅 Дата: 25.01.2026")
	assert.Contains(t, empty, "свободное время отсутствует")

	assert.NotContains(t, TimeSlots(sel, false), "отсутствует")
}

func TestBookingDone(t *testing.T) {
	text := BookingDone(sel)
	assert.Contains(t, text, "🕐 Время: 09:00-09:30")
	assert.Contains(t, text, "25.01.2026")
}

func TestReservationRejected(t *testing.T) {
	assert.Equal(t, ReservationFailed, ReservationRejected(""))
	assert.Equal(t, "❌ Не удалось записаться: Время занято", ReservationRejected("Время занято"))
}

func TestPersonalCabinet(t *testing.T) {
	text := PersonalCabinet(&domain.RegisteredUser{
		LastName: "Иванов", FirstName: "Иван", MiddleName: ptr.Ptr("Иванович"),
		BirthDate: "1990-05-01", ClinicLogin: "ivanov",
	})
	assert.Equal(t, "👤 Личный кабинет\n\nФИО: Иванов Иван Иванович\nДата рождения: 1990-05-01\nЛогин: ivanov", text)
}

func TestRecords(t *testing.T) {
	assert.Equal(t, RecordsEmpty, Records(nil))

	text := Records([]domain.Record{
		{Date: "20260130", Time: "10:00", DoctorName: "Петров П.П.", FilialName: "Центральный"},
		{Date: "20260201", Time: "11:30"},
	})
	assert.Equal(t, "📅 Ваши записи:\n\n1. 30.01.2026 10:00\n👨‍⚕️ Петров П.П.\n📍 Центральный\n\n2. 01.02.2026 11:30", text)
}

func TestWithNotice(t *testing.T) {
	assert.Equal(t, "text", WithNotice("", "text"))
	assert.Equal(t, "❗\n\ntext", WithNotice("❗", "text"))
}
