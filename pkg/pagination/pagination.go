package pagination

// Page срез списка для одной страницы
type Page[T any] struct {
	Items      []T
	Page       int // номер страницы с нуля, уже после ограничения диапазоном
	TotalPages int
	Total      int
	HasPrev    bool
	HasNext    bool
}

// TotalPages ceil(total/size), для пустого списка 1
func TotalPages(total, size int) int {
	if size <= 0 {
		size = 1
	}
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Clamp ограничивает номер страницы диапазоном [0, totalPages-1]
func Clamp(page, totalPages int) int {
	if page < 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}

// Paginate возвращает страницу page размера size
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = 1
	}

	total := len(items)
	totalPages := TotalPages(total, size)
	page = Clamp(page, totalPages)

	start := page * size
	end := start + size
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    page > 0,
		HasNext:    page < totalPages-1,
	}
}
