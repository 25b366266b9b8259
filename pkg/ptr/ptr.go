package ptr

import "strings"

func Ptr[T any](v T) *T {
	return &v
}

// PtrGet значение по указателю или нулевое значение для nil
func PtrGet[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}

	return *v
}

// NonEmpty указатель на строку без пробелов по краям, nil для пустой строки.
// Используется для необязательных колонок (отчество и т.п.).
func NonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
