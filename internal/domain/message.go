package domain

// Button inline-кнопка с callback payload
type Button struct {
	Text    string
	Payload string
}

// Keyboard ряды кнопок
type Keyboard [][]Button

// Buttons все кнопки клавиатуры по порядку
func (k Keyboard) Buttons() []Button {
	var out []Button
	for _, row := range k {
		out = append(out, row...)
	}
	return out
}

// OutgoingMessage ответ бота, не зависящий от мессенджера
type OutgoingMessage struct {
	Text     string
	Keyboard Keyboard
}

func (m OutgoingMessage) HasButtons() bool {
	return len(m.Keyboard) > 0
}
