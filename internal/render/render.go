// Package render turns decoded room events into single terminal lines.
//
// Every line has the form "<sender>\t<content>", except membership changes,
// which are a plain sentence, and server notices, whose sender is always
// ServerSender.
package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/samber/lo"

	"matrix-render/internal/event"
)

// ServerSender replaces the display name on server notices.
const ServerSender = "SERVER"

const undecryptable = "Unable to decrypt message"

// EventRenderer renders a single event Type.
type EventRenderer interface {
	Type() event.Type
	Render(evt event.Event, displayname string) (string, error)
}

// MessageRenderer renders a single message kind. Layout describes the line it
// produces.
type MessageRenderer interface {
	Kind() event.MessageKind
	Layout() string
	Render(content event.MessageContent, displayname string) (string, error)
}

// Renderer dispatches events to their renderers. The tables are filled by New
// and never change afterwards, so a Renderer is safe for concurrent use.
type Renderer struct {
	events   map[event.Type]EventRenderer
	messages map[event.MessageKind]MessageRenderer
}

// New returns a Renderer with the built-in renderers for every known event
// type and message kind.
func New() *Renderer {
	messages := map[event.MessageKind]MessageRenderer{}
	for _, mr := range defaultMessageRenderers() {
		messages[mr.Kind()] = mr
	}
	events := map[event.Type]EventRenderer{}
	for _, er := range []EventRenderer{
		encryptedRenderer{},
		memberRenderer{},
		messageEventRenderer{kinds: messages},
	} {
		events[er.Type()] = er
	}
	return &Renderer{events: events, messages: messages}
}

func defaultMessageRenderers() []MessageRenderer {
	return []MessageRenderer{
		bodyRenderer{kind: event.KindText},
		bodyRenderer{kind: event.KindEmote},
		bodyRenderer{kind: event.KindNotice},
		mediaRenderer{kind: event.KindAudio},
		mediaRenderer{kind: event.KindFile},
		mediaRenderer{kind: event.KindImage},
		mediaRenderer{kind: event.KindVideo},
		locationRenderer{},
		serverNoticeRenderer{},
	}
}

var defaultRenderer = New()

// Render renders evt with the default Renderer.
func Render(evt event.Event, displayname string) (string, error) {
	return defaultRenderer.Render(evt, displayname)
}

// Render produces the line for evt. displayname is the already resolved name
// of the event's sender.
func (r *Renderer) Render(evt event.Event, displayname string) (string, error) {
	if evt == nil {
		return "", fmt.Errorf("%w: nil event", ErrUnsupportedEvent)
	}
	er, ok := r.events[evt.Type()]
	if !ok {
		return "", fmt.Errorf("%w: event type %q", ErrUnsupportedEvent, evt.Type())
	}
	return er.Render(evt, sanitizeName(displayname))
}

// sanitizeName keeps the first TAB of a line as the sender/content separator.
func sanitizeName(name string) string {
	return strings.ReplaceAll(name, "\t", " ")
}

func unexpected(v any) error {
	return fmt.Errorf("%w: %T", ErrUnsupportedEvent, v)
}

// MembershipVerb maps a membership state onto the verb used in the rendered
// sentence.
func MembershipVerb(state event.MembershipState) (string, error) {
	switch state {
	case event.MembershipJoin:
		return "joined", nil
	case event.MembershipLeave:
		return "left", nil
	case event.MembershipBan:
		return "banned", nil
	case event.MembershipInvite:
		return "invited", nil
	case event.MembershipKnock:
		return "knocked on", nil
	default:
		return "", fmt.Errorf("%w: membership %q", ErrUnsupportedEvent, state)
	}
}

type encryptedRenderer struct{}

func (encryptedRenderer) Type() event.Type { return event.TypeEncrypted }

// Render never looks at the payload: decryption happens elsewhere, if at all.
func (encryptedRenderer) Render(evt event.Event, displayname string) (string, error) {
	if e, ok := evt.(*event.EncryptedEvent); !ok || e == nil {
		return "", unexpected(evt)
	}
	return displayname + "\t" + undecryptable, nil
}

type memberRenderer struct{}

func (memberRenderer) Type() event.Type { return event.TypeMember }

// Render shows the raw state key, not the affected user's display name.
func (memberRenderer) Render(evt event.Event, displayname string) (string, error) {
	m, ok := evt.(*event.MemberEvent)
	if !ok || m == nil {
		return "", unexpected(evt)
	}
	verb, err := MembershipVerb(m.Content.Membership)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s) has %s the room", displayname, m.StateKey, verb), nil
}

type messageEventRenderer struct {
	kinds map[event.MessageKind]MessageRenderer
}

func (messageEventRenderer) Type() event.Type { return event.TypeMessage }

func (r messageEventRenderer) Render(evt event.Event, displayname string) (string, error) {
	m, ok := evt.(*event.MessageEvent)
	if !ok || m == nil {
		return "", unexpected(evt)
	}
	if noContent(m.Content) {
		return "", fmt.Errorf("%w: message %s has no content", ErrUnsupportedEvent, m.ID)
	}
	mr, ok := r.kinds[m.Content.Kind()]
	if !ok {
		return "", fmt.Errorf("%w: msgtype %q", ErrUnsupportedEvent, m.Content.Kind())
	}
	return mr.Render(m.Content, displayname)
}

// noContent reports a nil interface or a typed nil pointer. Content types have
// value receivers, so Kind on a nil pointer would panic.
func noContent(c event.MessageContent) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// bodyRenderer serves every kind that implements HasFormattedBody.
// Emotes render like text; no "* name" styling is applied.
type bodyRenderer struct {
	kind event.MessageKind
}

func (r bodyRenderer) Kind() event.MessageKind { return r.kind }
func (bodyRenderer) Layout() string            { return `{displayname}\t{formatted_body|body}` }

func (bodyRenderer) Render(content event.MessageContent, displayname string) (string, error) {
	c, ok := content.(HasFormattedBody)
	if !ok {
		return "", unexpected(content)
	}
	return displayname + "\t" + ResolveBody(c), nil
}

type mediaContent interface {
	PlainBody() string
	HasURLOrFile
}

// mediaRenderer serves every kind that implements HasURLOrFile.
type mediaRenderer struct {
	kind event.MessageKind
}

func (r mediaRenderer) Kind() event.MessageKind { return r.kind }
func (mediaRenderer) Layout() string            { return `{displayname}\t{body}: {url|file.url}` }

func (r mediaRenderer) Render(content event.MessageContent, displayname string) (string, error) {
	c, ok := content.(mediaContent)
	if !ok {
		return "", unexpected(content)
	}
	url, err := ResolveURL(c)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", r.kind, err)
	}
	return fmt.Sprintf("%s\t%s: %s", displayname, c.PlainBody(), url), nil
}

type locationRenderer struct{}

func (locationRenderer) Kind() event.MessageKind { return event.KindLocation }
func (locationRenderer) Layout() string          { return `{displayname}\t{body}: {geo_uri}` }

func (locationRenderer) Render(content event.MessageContent, displayname string) (string, error) {
	var c event.LocationContent
	switch v := content.(type) {
	case event.LocationContent:
		c = v
	case *event.LocationContent:
		c = lo.FromPtr(v)
	default:
		return "", unexpected(content)
	}
	return fmt.Sprintf("%s\t%s: %s", displayname, c.Body, c.GeoURI), nil
}

// serverNoticeRenderer drops the sender: notices come from the homeserver.
type serverNoticeRenderer struct{}

func (serverNoticeRenderer) Kind() event.MessageKind { return event.KindServerNotice }
func (serverNoticeRenderer) Layout() string          { return ServerSender + `\t{body}` }

func (serverNoticeRenderer) Render(content event.MessageContent, _ string) (string, error) {
	var c event.ServerNoticeContent
	switch v := content.(type) {
	case event.ServerNoticeContent:
		c = v
	case *event.ServerNoticeContent:
		c = lo.FromPtr(v)
	default:
		return "", unexpected(content)
	}
	return ServerSender + "\t" + c.Body, nil
}
