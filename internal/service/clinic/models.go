package clinic

import "github.com/m04kA/SMC-ClinicBot/internal/domain"

// Options параметры записи и выборки записей
type Options struct {
	SlotMinutes       int
	OnlineMode        int
	RecordsDaysAhead  int
	RecordsPageLength int
}

// Booking выбор пользователя в мастере записи
type Booking struct {
	Branch     domain.Branch
	Department domain.Department
	Doctor     domain.Doctor
	Slot       domain.TimeSlot
}

// Patient пациент, вошедший в личный кабинет МИС
type Patient struct {
	PCode    string
	FullName string
	Email    string
	Phone    string
}
