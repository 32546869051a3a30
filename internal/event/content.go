package event

// MessageKind is the msgtype of an m.room.message event.
type MessageKind string

const (
	KindText         MessageKind = "m.text"
	KindEmote        MessageKind = "m.emote"
	KindNotice       MessageKind = "m.notice"
	KindAudio        MessageKind = "m.audio"
	KindFile         MessageKind = "m.file"
	KindImage        MessageKind = "m.image"
	KindVideo        MessageKind = "m.video"
	KindLocation     MessageKind = "m.location"
	KindServerNotice MessageKind = "m.server_notice"
)

// MessageKinds returns the closed set of message kinds, in wire order.
func MessageKinds() []MessageKind {
	return []MessageKind{
		KindText, KindEmote, KindNotice,
		KindAudio, KindFile, KindImage, KindVideo,
		KindLocation, KindServerNotice,
	}
}

// MessageContent is the content of an m.room.message event. Like Event,
// the set of implementations is closed.
type MessageContent interface {
	Kind() MessageKind
	messageContent()
}

// TextBody is shared by the kinds that carry an optional formatted body
// next to the mandatory plain one.
type TextBody struct {
	Body          string
	Format        string
	FormattedBody *string
}

func (b TextBody) PlainBody() string { return b.Body }

// Formatted reports the formatted body, if one was sent.
func (b TextBody) Formatted() (string, bool) {
	if b.FormattedBody == nil {
		return "", false
	}
	return *b.FormattedBody, true
}

// Media is shared by the kinds that reference uploaded content. Exactly one
// of URL and File is set: File when the upload is encrypted.
type Media struct {
	Body string
	URL  *string
	File *EncryptedFile
	Info *MediaInfo
}

func (m Media) PlainBody() string { return m.Body }

func (m Media) DirectURL() (string, bool) {
	if m.URL == nil {
		return "", false
	}
	return *m.URL, true
}

func (m Media) EncryptedURL() (string, bool) {
	if m.File == nil {
		return "", false
	}
	return m.File.URL, true
}

// EncryptedFile holds the locator and key material of an encrypted upload.
type EncryptedFile struct {
	URL     string
	Key     JWK
	IV      string
	Hashes  map[string]string
	Version string
}

type JWK struct {
	Kty    string
	KeyOps []string
	Alg    string
	K      string
	Ext    bool
}

type MediaInfo struct {
	MimeType string
	Size     int64
	Width    int
	Height   int
	Duration int64
}

type TextContent struct{ TextBody }
type EmoteContent struct{ TextBody }
type NoticeContent struct{ TextBody }

type AudioContent struct{ Media }
type FileContent struct {
	Media
	Filename string
}
type ImageContent struct{ Media }
type VideoContent struct{ Media }

type LocationContent struct {
	Body   string
	GeoURI string
}

// ServerNoticeContent is sent by the homeserver itself, e.g. for usage limits.
type ServerNoticeContent struct {
	Body             string
	ServerNoticeType string
	AdminContact     string
	LimitType        string
}

func (TextContent) Kind() MessageKind         { return KindText }
func (EmoteContent) Kind() MessageKind        { return KindEmote }
func (NoticeContent) Kind() MessageKind       { return KindNotice }
func (AudioContent) Kind() MessageKind        { return KindAudio }
func (FileContent) Kind() MessageKind         { return KindFile }
func (ImageContent) Kind() MessageKind        { return KindImage }
func (VideoContent) Kind() MessageKind        { return KindVideo }
func (LocationContent) Kind() MessageKind     { return KindLocation }
func (ServerNoticeContent) Kind() MessageKind { return KindServerNotice }

func (TextContent) messageContent()         {}
func (EmoteContent) messageContent()        {}
func (NoticeContent) messageContent()       {}
func (AudioContent) messageContent()        {}
func (FileContent) messageContent()         {}
func (ImageContent) messageContent()        {}
func (VideoContent) messageContent()        {}
func (LocationContent) messageContent()     {}
func (ServerNoticeContent) messageContent() {}
