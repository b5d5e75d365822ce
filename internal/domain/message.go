package domain

// InboundMessage — одно входящее сообщение чата, доставленное вебхуком.
type InboundMessage struct {
	SenderName string
	Text       string
}
