package websocket

// Типы сообщений live-ленты результатов
const (
	// RESULT_NEW сообщает о новом результате в викторине
	RESULT_NEW = "RESULT_NEW"

	// SUBSCRIBED подтверждает подписку на ленту викторины
	SUBSCRIBED = "SUBSCRIBED"
)

// Message — конверт всех исходящих сообщений
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
