package server

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjacktable/internal/game"
)

// MessageType identifies the payload carried by a websocket message
type MessageType string

// Client → server intents
const (
	MessageTypeSubmitBet     MessageType = "submit_bet"
	MessageTypeStartDealing  MessageType = "start_dealing"
	MessageTypeStopDealing   MessageType = "stop_dealing"
	MessageTypeDealNext      MessageType = "deal_next"
	MessageTypeHit           MessageType = "hit"
	MessageTypeStand         MessageType = "stand"
	MessageTypeDouble        MessageType = "double"
	MessageTypeRestart       MessageType = "restart"
	MessageTypeStartAutoPlay MessageType = "start_auto_play"
	MessageTypeStopAutoPlay  MessageType = "stop_auto_play"
)

// Server → client messages
const (
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeError    MessageType = "error"
)

// Message is the websocket envelope shared by both directions
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	var dataBytes json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		dataBytes = b
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// SubmitBetData addresses a bet to a seat. Amount stays a string; the
// table owns the parse-and-coerce rule.
type SubmitBetData struct {
	SeatID int    `json:"seatId"`
	Amount string `json:"amount"`
}

// SeatActionData addresses hit, stand or double to a seat
type SeatActionData struct {
	SeatID int `json:"seatId"`
}

// ErrorData reports a rejected or malformed message to the sender
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SnapshotMessage wraps the current table snapshot for broadcast
func SnapshotMessage(snap game.Snapshot) (*Message, error) {
	return NewMessage(MessageTypeSnapshot, snap)
}
