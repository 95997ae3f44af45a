package model

type MessageType string

const (
	MessageTypeRegister    MessageType = "register"
	MessageTypeRegistered  MessageType = "registered"
	MessageTypeUnregister  MessageType = "unregister"
	MessageTypePing        MessageType = "ping"
	MessageTypePong        MessageType = "pong"
	MessageTypePrintOrder  MessageType = "print_order"
	MessageTypePrinted     MessageType = "printed"
	MessageTypePrintFailed MessageType = "print_failed"
)

// --- WebSocket Messages ---

type WSMessage struct {
	Type           MessageType `json:"type"`
	DeviceID       string      `json:"deviceId,omitempty"`
	OrderID        string      `json:"orderId,omitempty"`
	AlreadyPrinted bool        `json:"alreadyPrinted,omitempty"`
	Error          string      `json:"error,omitempty"`
}
