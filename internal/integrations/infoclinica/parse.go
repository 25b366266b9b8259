package infoclinica

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/pkg/types"
)

// Ответы МИС разбираются "мягко": неизвестная форма даёт пустой результат,
// имена полей перебираются в порядке, в котором они встречаются у МИС.

func ParseBranches(v interface{}) []domain.Branch {
	items := dataList(v)
	out := make([]domain.Branch, 0, len(items))
	for _, item := range items {
		id, ok := firstInt64(item, "id")
		if !ok {
			continue
		}
		out = append(out, domain.Branch{ID: id, Name: firstString(item, "name")})
	}
	return out
}

func ParseDepartments(v interface{}) []domain.Department {
	items := dataList(v)
	out := make([]domain.Department, 0, len(items))
	for _, item := range items {
		id, ok := firstInt64(item, "id", "depnum", "depNum")
		if !ok {
			continue
		}
		out = append(out, domain.Department{ID: id, Name: firstString(item, "name")})
	}
	return out
}

func ParseDoctors(v interface{}) []domain.Doctor {
	items := dataList(v)
	out := make([]domain.Doctor, 0, len(items))
	for _, item := range items {
		code, ok := firstInt64(item, "dcode", "id")
		if !ok {
			continue
		}
		depNum, _ := firstInt64(item, "depnum", "depNum")
		out = append(out, domain.Doctor{
			Code:   code,
			Name:   firstString(item, "name"),
			DepNum: depNum,
		})
	}
	return out
}

func ParseRecords(v interface{}) []domain.Record {
	items := dataList(v)
	out := make([]domain.Record, 0, len(items))
	for _, item := range items {
		schedID, ok := firstInt64(item, "schedid", "schedId", "schedident", "id")
		if !ok {
			continue
		}
		filialID, _ := firstInt64(item, "filial", "filialId", "filialid")
		out = append(out, domain.Record{
			ScheduleID:     schedID,
			FilialID:       filialID,
			Date:           firstString(item, "workDate", "workdate", "date"),
			Time:           intervalTime(item),
			DoctorName:     firstString(item, "dname", "doctorName", "doctor"),
			DepartmentName: firstString(item, "depname", "departmentName", "department"),
			FilialName:     firstString(item, "filialName", "fname"),
		})
	}
	return out
}

func ParseLoggedIn(v interface{}) LoggedInUser {
	m, ok := v.(map[string]interface{})
	if !ok {
		return LoggedInUser{}
	}
	return LoggedInUser{
		Authenticated: isTrue(m["authenticated"]),
		ID:            firstString(m, "id"),
		FullName:      firstString(m, "fullName"),
		Email:         firstString(m, "email"),
		Phone:         firstString(m, "phone"),
		CheckToken:    firstString(m, "checkToken"),
	}
}

// ResponseError текст ошибки из ответа МИС (error/message/msg)
func ResponseError(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	return firstString(m, "error", "message", "msg")
}

// Succeeded ответ не содержит явного success=false
func Succeeded(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok {
		return true
	}
	success, present := m["success"]
	if !present {
		return ResponseError(v) == ""
	}
	return isTrue(success)
}

// ParseFreeSlots свободные интервалы врача на дату из ответа /api/reservation/intervals:
// data[].workdates[]{<YYYYMMDD>: [{dcode, schedident, intervals[]}]}.
// Интервалы с одинаковым началом схлопываются, результат отсортирован по началу.
func ParseFreeSlots(v interface{}, date string, doctorCode int64) []domain.TimeSlot {
	want := strconv.FormatInt(doctorCode, 10)
	seen := make(map[types.TimeString]struct{})
	slots := make([]domain.TimeSlot, 0)

	for _, item := range dataList(v) {
		workdates, _ := item["workdates"].([]interface{})
		for _, wd := range workdates {
			byDate, ok := wd.(map[string]interface{})
			if !ok {
				continue
			}
			entries, ok := byDate[date].([]interface{})
			if !ok {
				continue
			}

			for _, e := range entries {
				entry, ok := e.(map[string]interface{})
				if !ok || asString(entry["dcode"]) != want {
					continue
				}
				schedIdent, _ := asInt64(entry["schedident"])
				intervals, _ := entry["intervals"].([]interface{})

				for _, iv := range intervals {
					interval, ok := iv.(map[string]interface{})
					if !ok || !isTrue(interval["isFree"]) {
						continue
					}
					text := intervalTime(interval)
					start := types.StartOf(text)
					if start.IsZero() {
						continue
					}
					if _, dup := seen[start]; dup {
						continue
					}
					seen[start] = struct{}{}

					slots = append(slots, domain.TimeSlot{
						Time:       text,
						Start:      start,
						ScheduleID: schedIdent,
						WorkDate:   date,
						DoctorCode: doctorCode,
					})
				}
			}
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.IsBefore(slots[j].Start)
	})
	return slots
}

// intervalTime "time", иначе startInterval/start и endInterval/end
func intervalTime(m map[string]interface{}) string {
	if t := firstString(m, "time"); t != "" {
		return t
	}
	start := firstString(m, "startInterval", "start")
	if start == "" {
		return ""
	}
	if end := firstString(m, "endInterval", "end"); end != "" {
		return start + "-" + end
	}
	return start
}

// dataList элементы-объекты из {"data": [...]} или из голого массива
func dataList(v interface{}) []map[string]interface{} {
	var list []interface{}
	switch t := v.(type) {
	case map[string]interface{}:
		list, _ = t["data"].([]interface{})
	case []interface{}:
		list = t
	}

	out := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(asString(m[k])); s != "" {
			return s
		}
	}
	return ""
}

func firstInt64(m map[string]interface{}, keys ...string) (int64, bool) {
	for _, k := range keys {
		if n, ok := asInt64(m[k]); ok {
			return n, true
		}
	}
	return 0, false
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func asInt64(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		if f, err := t.Float64(); err == nil {
			return int64(f), true
		}
	case float64:
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func isTrue(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	case json.Number:
		return t.String() != "0"
	default:
		return false
	}
}
