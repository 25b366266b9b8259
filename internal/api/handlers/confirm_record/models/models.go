package models

type ConfirmResponse struct {
	ScheduleID int64 `json:"schedid"`
	FilialID   int64 `json:"filial"`
	Confirmed  bool  `json:"confirmed"`
}
