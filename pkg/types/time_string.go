package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeString время приёма в формате "HH:MM" (например "09:30")
type TimeString string

const (
	TimeFormat            = "15:04"
	TimeWithSecondsFormat = "15:04:05"

	// CompactTimeFormat формат времени в payload кнопок ("0930")
	CompactTimeFormat = "1504"
)

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

	// ErrInvalidTimeValue возвращается для пустого времени
	ErrInvalidTimeValue = errors.New("invalid time value")
)

// StartOf выделяет начало интервала: "09:00-09:30" -> "09:00", "09:00:00" -> "09:00".
// Результат всегда в каноническом виде HH:MM ("9:00" -> "09:00").
// Возвращает пустую строку, если начало не похоже на время.
func StartOf(interval string) TimeString {
	start := strings.TrimSpace(interval)
	if idx := strings.Index(start, "-"); idx >= 0 {
		start = strings.TrimSpace(start[:idx])
	}
	if start == "" {
		return ""
	}

	for _, layout := range []string{TimeFormat, TimeWithSecondsFormat} {
		if parsed, err := time.Parse(layout, start); err == nil {
			return TimeString(parsed.Format(TimeFormat))
		}
	}
	return ""
}

// ParseCompact разбирает "0930" в "09:30"
func ParseCompact(s string) (TimeString, error) {
	parsed, err := time.Parse(CompactTimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	return TimeString(parsed.Format(TimeFormat)), nil
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) Validate() error {
	if t.IsZero() {
		return nil
	}

	if _, err := time.Parse(TimeFormat, string(t)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}

	return nil
}

// Compact "09:30" -> "0930"
func (t TimeString) Compact() string {
	return strings.ReplaceAll(string(t), ":", "")
}

// Minutes количество минут от полуночи, -1 для некорректного значения
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

func (t TimeString) IsBefore(other TimeString) bool {
	a, b := t.Minutes(), other.Minutes()
	if a < 0 || b < 0 {
		return false
	}
	return a < b
}

// AddMinutes прибавляет минуты; результат переходит через полночь ("23:45"+30 = "00:15")
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if t.IsZero() {
		return "", ErrInvalidTimeValue
	}

	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}

	return TimeString(parsed.Add(time.Duration(minutes) * time.Minute).Format(TimeFormat)), nil
}

func (t TimeString) MarshalJSON() ([]byte, error) {
	if t == "" {
		return json.Marshal(nil)
	}
	return json.Marshal(string(t))
}

func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == nil {
		*t = ""
		return nil
	}

	*t = TimeString(*s)
	return nil
}
