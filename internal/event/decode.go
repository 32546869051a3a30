package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	// ErrInvalidEvent reports malformed JSON or a payload that breaks the event contract.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrUnsupportedEvent reports an event type or msgtype outside the known set.
	ErrUnsupportedEvent = errors.New("unsupported event kind")
)

var validate = validator.New()

type wireEvent struct {
	Type           string          `json:"type" validate:"required"`
	EventID        string          `json:"event_id"`
	RoomID         string          `json:"room_id"`
	Sender         string          `json:"sender" validate:"required"`
	OriginServerTS int64           `json:"origin_server_ts"`
	StateKey       *string         `json:"state_key"`
	Content        json.RawMessage `json:"content" validate:"required"`
}

type wireMember struct {
	Membership  string  `json:"membership" validate:"required"`
	Displayname *string `json:"displayname"`
	AvatarURL   *string `json:"avatar_url"`
}

type wireEncrypted struct {
	Algorithm  string `json:"algorithm" validate:"required"`
	SenderKey  string `json:"sender_key"`
	DeviceID   string `json:"device_id"`
	SessionID  string `json:"session_id"`
	Ciphertext any    `json:"ciphertext"`
}

type wireMessage struct {
	MsgType string `json:"msgtype" validate:"required"`
	Body    string `json:"body"`
}

type wireText struct {
	Body          string  `json:"body"`
	Format        string  `json:"format"`
	FormattedBody *string `json:"formatted_body"`
}

type wireMedia struct {
	Body     string         `json:"body"`
	Filename string         `json:"filename"`
	URL      *string        `json:"url" validate:"required_without=File"`
	File     *wireFile      `json:"file" validate:"required_without=URL"`
	Info     *wireMediaInfo `json:"info"`
}

type wireFile struct {
	URL     string            `json:"url" validate:"required"`
	Key     wireJWK           `json:"key"`
	IV      string            `json:"iv"`
	Hashes  map[string]string `json:"hashes"`
	Version string            `json:"v"`
}

type wireJWK struct {
	Kty    string   `json:"kty"`
	KeyOps []string `json:"key_ops"`
	Alg    string   `json:"alg"`
	K      string   `json:"k"`
	Ext    bool     `json:"ext"`
}

type wireMediaInfo struct {
	MimeType string `json:"mimetype"`
	Size     int64  `json:"size"`
	Width    int    `json:"w"`
	Height   int    `json:"h"`
	Duration int64  `json:"duration"`
}

type wireLocation struct {
	Body   string `json:"body"`
	GeoURI string `json:"geo_uri" validate:"required"`
}

type wireServerNotice struct {
	Body             string `json:"body"`
	ServerNoticeType string `json:"server_notice_type"`
	AdminContact     string `json:"admin_contact"`
	LimitType        string `json:"limit_type"`
}

// Decode parses one event in the Matrix client-server JSON format.
func Decode(data []byte) (Event, error) {
	var raw wireEvent
	if err := unmarshal(data, &raw); err != nil {
		return nil, err
	}
	base := Base{
		ID:     raw.EventID,
		RoomID: raw.RoomID,
		Sender: raw.Sender,
	}
	if base.ID == "" {
		base.ID = "$" + uuid.NewString()
	}
	if raw.OriginServerTS > 0 {
		base.Timestamp = time.UnixMilli(raw.OriginServerTS).UTC()
	}

	switch Type(raw.Type) {
	case TypeEncrypted:
		return decodeEncrypted(base, raw.Content)
	case TypeMember:
		return decodeMember(base, raw.StateKey, raw.Content)
	case TypeMessage:
		return decodeMessage(base, raw.Content)
	default:
		return nil, fmt.Errorf("%w: event type %q", ErrUnsupportedEvent, raw.Type)
	}
}

func decodeEncrypted(base Base, content json.RawMessage) (Event, error) {
	var c wireEncrypted
	if err := unmarshal(content, &c); err != nil {
		return nil, err
	}
	ciphertext := ""
	switch v := c.Ciphertext.(type) {
	case string:
		ciphertext = v
	case nil:
	default:
		// olm ciphertext is keyed by device; keep it opaque.
		if b, err := json.Marshal(v); err == nil {
			ciphertext = string(b)
		}
	}
	return &EncryptedEvent{
		Base:       base,
		Algorithm:  c.Algorithm,
		SenderKey:  c.SenderKey,
		DeviceID:   c.DeviceID,
		SessionID:  c.SessionID,
		Ciphertext: ciphertext,
	}, nil
}

func decodeMember(base Base, stateKey *string, content json.RawMessage) (Event, error) {
	if stateKey == nil || *stateKey == "" {
		return nil, fmt.Errorf("%w: member event %s has no state_key", ErrInvalidEvent, base.ID)
	}
	var c wireMember
	if err := unmarshal(content, &c); err != nil {
		return nil, err
	}
	membership, err := ParseMembership(c.Membership)
	if err != nil {
		return nil, err
	}
	return &MemberEvent{
		Base:     base,
		StateKey: *stateKey,
		Content: MemberContent{
			Membership:  membership,
			Displayname: c.Displayname,
			AvatarURL:   c.AvatarURL,
		},
	}, nil
}

func decodeMessage(base Base, content json.RawMessage) (Event, error) {
	var head wireMessage
	if err := unmarshal(content, &head); err != nil {
		return nil, err
	}
	c, err := decodeContent(MessageKind(head.MsgType), content)
	if err != nil {
		return nil, err
	}
	return &MessageEvent{Base: base, Content: c}, nil
}

func decodeContent(kind MessageKind, content json.RawMessage) (MessageContent, error) {
	switch kind {
	case KindText, KindEmote, KindNotice:
		var w wireText
		if err := unmarshal(content, &w); err != nil {
			return nil, err
		}
		body := TextBody{Body: w.Body, Format: w.Format, FormattedBody: w.FormattedBody}
		if lo.FromPtr(body.FormattedBody) == "" {
			body.FormattedBody = nil
		}
		switch kind {
		case KindEmote:
			return EmoteContent{body}, nil
		case KindNotice:
			return NoticeContent{body}, nil
		default:
			return TextContent{body}, nil
		}
	case KindAudio, KindFile, KindImage, KindVideo:
		var w wireMedia
		if err := unmarshal(content, &w); err != nil {
			return nil, err
		}
		media := w.toMedia()
		switch kind {
		case KindAudio:
			return AudioContent{media}, nil
		case KindFile:
			return FileContent{Media: media, Filename: w.Filename}, nil
		case KindImage:
			return ImageContent{media}, nil
		default:
			return VideoContent{media}, nil
		}
	case KindLocation:
		var w wireLocation
		if err := unmarshal(content, &w); err != nil {
			return nil, err
		}
		return LocationContent{Body: w.Body, GeoURI: w.GeoURI}, nil
	case KindServerNotice:
		var w wireServerNotice
		if err := unmarshal(content, &w); err != nil {
			return nil, err
		}
		return ServerNoticeContent{
			Body:             w.Body,
			ServerNoticeType: w.ServerNoticeType,
			AdminContact:     w.AdminContact,
			LimitType:        w.LimitType,
		}, nil
	default:
		return nil, fmt.Errorf("%w: msgtype %q", ErrUnsupportedEvent, kind)
	}
}

func (w wireMedia) toMedia() Media {
	m := Media{Body: w.Body, URL: w.URL}
	if w.File != nil {
		m.File = &EncryptedFile{
			URL: w.File.URL,
			Key: JWK{
				Kty:    w.File.Key.Kty,
				KeyOps: w.File.Key.KeyOps,
				Alg:    w.File.Key.Alg,
				K:      w.File.Key.K,
				Ext:    w.File.Key.Ext,
			},
			IV:      w.File.IV,
			Hashes:  w.File.Hashes,
			Version: w.File.Version,
		}
	}
	if w.Info != nil {
		m.Info = &MediaInfo{
			MimeType: w.Info.MimeType,
			Size:     w.Info.Size,
			Width:    w.Info.Width,
			Height:   w.Info.Height,
			Duration: w.Info.Duration,
		}
	}
	return m
}

// unmarshal decodes data into v and runs the struct's validation tags.
func unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return nil
}
