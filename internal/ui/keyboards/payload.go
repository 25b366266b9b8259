package keyboards

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/pkg/types"
)

// Фиксированные payload кнопок
const (
	PayloadCurrentAppointment = "btn_current_appointment"
	PayloadMakeAppointment    = "btn_make_appointment"
	PayloadPersonalCabinet    = "btn_personal_cabinet"
	PayloadRegistration       = "btn_lk_registration"
	PayloadLogin              = "btn_lk_login"
	PayloadChangeCredentials  = "btn_change_credentials"
	PayloadDeleteAccount      = "btn_delete_account"
	PayloadDeleteConfirm      = "btn_delete_confirm"
	PayloadConfirmReservation = "btn_confirm_reservation"

	BackToMain        = "back_to_main"
	BackToBranches    = "back_to_branches"
	BackToDepartments = "back_to_departments"
	BackToDoctors     = "back_to_doctors"
	BackToCalendar    = "back_to_calendar"
	BackToSchedule    = "back_to_schedule"
)

const (
	prefixBranch          = "branch_"
	prefixBranchesPage    = "branches_page_"
	prefixDepartment      = "department_"
	prefixDepartmentsPage = "departments_page_"
	prefixDoctor          = "doctor_"
	prefixDoctorsPage     = "doctors_page_"
	prefixDate            = "date_"
	prefixTime            = "time_"
	prefixRecordCancel    = "record_cancel_"
)

// ErrUnknownPayload payload не распознан
var ErrUnknownPayload = errors.New("keyboards: unknown payload")

// Action тип нажатой кнопки
type Action int

const (
	ActionUnknown Action = iota
	// ActionStatic фиксированный payload, см. Payload.Static
	ActionStatic
	ActionBranch
	ActionBranchesPage
	ActionDepartment
	ActionDepartmentsPage
	ActionDoctor
	ActionDoctorsPage
	ActionDate
	ActionTime
	ActionRecordCancel
)

// Payload разобранные данные кнопки
type Payload struct {
	Action Action
	Static string

	ID         int64 // филиал, отделение, врач или schedid записи
	Page       int
	Date       string // YYYYMMDD
	Time       types.TimeString
	ScheduleID int64
	FilialID   int64
}

var staticPayloads = map[string]struct{}{
	PayloadCurrentAppointment: {},
	PayloadMakeAppointment:    {},
	PayloadPersonalCabinet:    {},
	PayloadRegistration:       {},
	PayloadLogin:              {},
	PayloadChangeCredentials:  {},
	PayloadDeleteAccount:      {},
	PayloadDeleteConfirm:      {},
	PayloadConfirmReservation: {},
	BackToMain:                {},
	BackToBranches:            {},
	BackToDepartments:         {},
	BackToDoctors:             {},
	BackToCalendar:            {},
	BackToSchedule:            {},
}

func BranchPayload(id int64) string { return prefixBranch + strconv.FormatInt(id, 10) }
func BranchesPagePayload(page int) string { return prefixBranchesPage + strconv.Itoa(page) }
func DepartmentPayload(id int64) string { return prefixDepartment + strconv.FormatInt(id, 10) }
func DepartmentsPagePayload(page int) string { return prefixDepartmentsPage + strconv.Itoa(page) }
func DoctorPayload(code int64) string { return prefixDoctor + strconv.FormatInt(code, 10) }
func DoctorsPagePayload(page int) string { return prefixDoctorsPage + strconv.Itoa(page) }
func DatePayload(date string) string { return prefixDate + date }

// TimePayload time_<HHMM>_<schedident>_<YYYYMMDD>
func TimePayload(slot domain.TimeSlot) string {
	return fmt.Sprintf("%s%s_%d_%s", prefixTime, slot.Start.Compact(), slot.ScheduleID, slot.WorkDate)
}

// RecordCancelPayload record_cancel_<schedid>_<filial>
func RecordCancelPayload(r domain.Record) string {
	return fmt.Sprintf("%s%d_%d", prefixRecordCancel, r.ScheduleID, r.FilialID)
}

// Parse разбирает payload кнопки.
// Страничные префиксы проверяются раньше одиночных: "branches_page_" не должен попасть в "branch_".
func Parse(s string) (Payload, error) {
	if _, ok := staticPayloads[s]; ok {
		return Payload{Action: ActionStatic, Static: s}, nil
	}

	switch {
	case strings.HasPrefix(s, prefixBranchesPage):
		return parsePage(s, prefixBranchesPage, ActionBranchesPage)
	case strings.HasPrefix(s, prefixDepartmentsPage):
		return parsePage(s, prefixDepartmentsPage, ActionDepartmentsPage)
	case strings.HasPrefix(s, prefixDoctorsPage):
		return parsePage(s, prefixDoctorsPage, ActionDoctorsPage)
	case strings.HasPrefix(s, prefixBranch):
		return parseID(s, prefixBranch, ActionBranch)
	case strings.HasPrefix(s, prefixDepartment):
		return parseID(s, prefixDepartment, ActionDepartment)
	case strings.HasPrefix(s, prefixDoctor):
		return parseID(s, prefixDoctor, ActionDoctor)
	case strings.HasPrefix(s, prefixDate):
		date := strings.TrimPrefix(s, prefixDate)
		if _, err := domain.ParseDate(date); err != nil {
			return Payload{}, fmt.Errorf("%w: %q", ErrUnknownPayload, s)
		}
		return Payload{Action: ActionDate, Date: date}, nil
	case strings.HasPrefix(s, prefixTime):
		return parseTime(s)
	case strings.HasPrefix(s, prefixRecordCancel):
		return parseRecordCancel(s)
	}

	return Payload{}, fmt.Errorf("%w: %q", ErrUnknownPayload, s)
}

func parsePage(s, prefix string, action Action) (Payload, error) {
	page, err := strconv.Atoi(strings.TrimPrefix(s, prefix))
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownPayload, s)
	}
	return Payload{Action: action, Page: page}, nil
}

func parseID(s, prefix string, action Action) (Payload, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, prefix), 10, 64)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownPayload, s)
	}
	return Payload{Action: action, ID: id}, nil
}

func parseTime(s string) (Payload, error) {
	parts := strings.Split(strings.TrimPrefix(s, prefixTime), "_")
	if len(parts) != 3 {
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownPayload, s)
	}

	start, err := types.ParseCompact(parts[0])
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %q: %v", ErrUnknownPayload, s, err)
	}
	schedID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownPayload, s)
	}
	if _, err := domain.ParseDate(parts[2]); err != nil {
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownPayload, s)
	}

	return Payload{Action: ActionTime, Time: start, ScheduleID: schedID, Date: parts[2]}, nil
}

func parseRecordCancel(s string) (Payload, error) {
	parts := strings.Split(strings.TrimPrefix(s, prefixRecordCancel), "_")
	if len(parts) != 2 {
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownPayload, s)
	}

	schedID, err1 := strconv.ParseInt(parts[0], 10, 64)
	filialID, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownPayload, s)
	}

	return Payload{Action: ActionRecordCancel, ID: schedID, ScheduleID: schedID, FilialID: filialID}, nil
}
