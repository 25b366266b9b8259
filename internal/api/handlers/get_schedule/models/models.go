package models

// ScheduleQuery врач, необязательный филиал и день YYYYMMDD
type ScheduleQuery struct {
	DoctorCode int64
	FilialID   *int64
	Date       string
}

// ScheduleResponse график в исходном виде МИС
type ScheduleResponse struct {
	DoctorCode int64       `json:"doctor"`
	FilialID   *int64      `json:"filial,omitempty"`
	Date       string      `json:"date"`
	Schedule   interface{} `json:"schedule"`
}
