package keyboards

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/integrations/infoclinica"
	"github.com/m04kA/SMC-ClinicBot/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		payload string
		want    Payload
	}{
		{payload: "btn_make_appointment", want: Payload{Action: ActionStatic, Static: PayloadMakeAppointment}},
		{payload: "back_to_doctors", want: Payload{Action: ActionStatic, Static: BackToDoctors}},
		{payload: "branch_4", want: Payload{Action: ActionBranch, ID: 4}},
		{payload: "branches_page_2", want: Payload{Action: ActionBranchesPage, Page: 2}},
		{payload: "department_990034235", want: Payload{Action: ActionDepartment, ID: 990034235}},
		{payload: "departments_page_0", want: Payload{Action: ActionDepartmentsPage}},
		{payload: "doctor_990102079", want: Payload{Action: ActionDoctor, ID: 990102079}},
		{payload: "doctors_page_1", want: Payload{Action: ActionDoctorsPage, Page: 1}},
		{payload: "date_20260125", want: Payload{Action: ActionDate, Date: "20260125"}},
		{payload: "time_0930_40075624_20260125", want: Payload{Action: ActionTime, Time: "09:30", ScheduleID: 40075624, Date: "20260125"}},
		{payload: "record_cancel_555_4", want: Payload{Action: ActionRecordCancel, ID: 555, ScheduleID: 555, FilialID: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got, err := Parse(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, payload := range []string{
		"",
		"btn_info",
		"branch_abc",
		"branches_page_x",
		"date_2026-01-25",
		"time_0930_1",
		"time_2599_1_20260125",
		"time_0930_x_20260125",
		"record_cancel_1",
	} {
		_, err := Parse(payload)
		assert.ErrorIs(t, err, ErrUnknownPayload, payload)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	slot := domain.TimeSlot{Start: "14:00", ScheduleID: 77, WorkDate: "20260201"}
	assert.Equal(t, "time_1400_77_20260201", TimePayload(slot))

	p, err := Parse(TimePayload(slot))
	require.NoError(t, err)
	assert.Equal(t, slot.Start, p.Time)
	assert.Equal(t, slot.WorkDate, p.Date)

	record := domain.Record{ScheduleID: 9, FilialID: 3}
	p, err = Parse(RecordCancelPayload(record))
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.FilialID)
}

func TestTimePayload_SingleDigitHourFromClinic(t *testing.T) {
	var body interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"data":[{"workdates":[{"20260120":[
		{"dcode":7,"schedident":12,"intervals":[{"time":"9:00-9:30","isFree":true}]}
	]}]}]}`), &body))

	slots := infoclinica.ParseFreeSlots(body, "20260120", 7)
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("09:00"), slots[0].Start)

	payload := TimePayload(slots[0])
	assert.Equal(t, "time_0900_12_20260120", payload)

	p, err := Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, ActionTime, p.Action)
	assert.Equal(t, slots[0].Start, p.Time)
	assert.Equal(t, int64(12), p.ScheduleID)
	assert.Equal(t, "20260120", p.Date)
}
