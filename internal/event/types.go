package event

import "time"

// Type is the Matrix event type carried in the "type" field.
type Type string

const (
	TypeMessage   Type = "m.room.message"
	TypeMember    Type = "m.room.member"
	TypeEncrypted Type = "m.room.encrypted"
)

// Types returns the closed set of event types the renderer understands.
func Types() []Type {
	return []Type{TypeEncrypted, TypeMember, TypeMessage}
}

// Event is a decoded room event. The set of implementations is closed:
// only *EncryptedEvent, *MemberEvent and *MessageEvent satisfy it.
type Event interface {
	Type() Type
	EventID() string
	SenderID() string
	sealed()
}

// Base is the envelope shared by every event.
type Base struct {
	ID        string
	RoomID    string
	Sender    string
	Timestamp time.Time
}

func (b Base) EventID() string  { return b.ID }
func (b Base) SenderID() string { return b.Sender }
func (Base) sealed()            {}

// EncryptedEvent is an m.room.encrypted event. Its payload is opaque here.
type EncryptedEvent struct {
	Base
	Algorithm  string
	SenderKey  string
	DeviceID   string
	SessionID  string
	Ciphertext string
}

func (*EncryptedEvent) Type() Type { return TypeEncrypted }

// MemberEvent records a change of a user's membership in a room.
// StateKey is the user ID whose membership changed.
type MemberEvent struct {
	Base
	StateKey string
	Content  MemberContent
}

func (*MemberEvent) Type() Type { return TypeMember }

type MemberContent struct {
	Membership  MembershipState
	Displayname *string
	AvatarURL   *string
}

// MessageEvent is an m.room.message event.
type MessageEvent struct {
	Base
	Content MessageContent
}

func (*MessageEvent) Type() Type { return TypeMessage }
