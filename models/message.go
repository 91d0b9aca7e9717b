package models

import "time"

type MessageKind string

const (
	MessageText  MessageKind = "text"
	MessageImage MessageKind = "image"
)

// MessageBody is the kind-discriminated message payload. Exactly one of
// Text or ImageRef is populated, matching Kind.
type MessageBody struct {
	Kind     MessageKind `json:"kind"`
	Text     string      `json:"text,omitempty"`
	ImageRef string      `json:"image_ref,omitempty"`
}

type Message struct {
	ID          string      `json:"id"`
	SenderID    string      `json:"sender_id"`
	RecipientID string      `json:"recipient_id"`
	Body        MessageBody `json:"body"`
	SentAt      time.Time   `json:"sent_at"`
}

// SenderInfo is the minimal sender projection attached to conversation
// listings for display.
type SenderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ConversationMessage struct {
	ID          string      `json:"id"`
	Sender      SenderInfo  `json:"sender"`
	RecipientID string      `json:"recipient_id"`
	Body        MessageBody `json:"body"`
	SentAt      time.Time   `json:"sent_at"`
}
