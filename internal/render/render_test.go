package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matrix-render/internal/event"
)

func message(c event.MessageContent) *event.MessageEvent {
	return &event.MessageEvent{
		Base:    event.Base{ID: "$1", Sender: "@alice:example.org"},
		Content: c,
	}
}

func text(body string) event.TextContent {
	return event.TextContent{TextBody: event.TextBody{Body: body}}
}

func media(body string, url *string, file *event.EncryptedFile) event.Media {
	return event.Media{Body: body, URL: url, File: file}
}

// sampleContent builds a valid content value for every known kind.
func sampleContent(t *testing.T, kind event.MessageKind) event.MessageContent {
	t.Helper()
	m := media("thing", lo.ToPtr("mxc://example.org/thing"), nil)
	switch kind {
	case event.KindText:
		return text("hi")
	case event.KindEmote:
		return event.EmoteContent{TextBody: event.TextBody{Body: "waves"}}
	case event.KindNotice:
		return event.NoticeContent{TextBody: event.TextBody{Body: "bot says"}}
	case event.KindAudio:
		return event.AudioContent{Media: m}
	case event.KindFile:
		return event.FileContent{Media: m}
	case event.KindImage:
		return event.ImageContent{Media: m}
	case event.KindVideo:
		return event.VideoContent{Media: m}
	case event.KindLocation:
		return event.LocationContent{Body: "here", GeoURI: "geo:0,0"}
	case event.KindServerNotice:
		return event.ServerNoticeContent{Body: "notice"}
	}
	t.Fatalf("no sample content for kind %q; add one when adding a kind", kind)
	return nil
}

func TestEveryKindIsRegistered(t *testing.T) {
	r := New()
	for _, typ := range event.Types() {
		assert.Contains(t, r.events, typ, "event type %s has no renderer", typ)
	}
	for _, kind := range event.MessageKinds() {
		assert.Contains(t, r.messages, kind, "message kind %s has no renderer", kind)
	}
	for _, state := range event.MembershipStates() {
		verb, err := MembershipVerb(state)
		require.NoError(t, err, "membership %s has no verb", state)
		assert.NotEmpty(t, verb)
	}
}

func TestEveryKindRendersNonEmpty(t *testing.T) {
	for _, kind := range event.MessageKinds() {
		t.Run(string(kind), func(t *testing.T) {
			line, err := Render(message(sampleContent(t, kind)), "Alice")
			require.NoError(t, err)
			assert.NotEmpty(t, line)
			assert.Contains(t, line, "\t")
		})
	}
}

func TestRender_Text(t *testing.T) {
	line, err := Render(message(text("hi")), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice\thi", line)
}

func TestRender_TextPrefersFormattedBody(t *testing.T) {
	c := event.TextContent{TextBody: event.TextBody{Body: "hi", FormattedBody: lo.ToPtr("<em>hi</em> & <script>")}}
	line, err := Render(message(c), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice\t<em>hi</em> & <script>", line)
}

func TestRender_EmoteAndNoticeLikeText(t *testing.T) {
	body := event.TextBody{Body: "waves"}

	line, err := Render(message(event.EmoteContent{TextBody: body}), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice\twaves", line)

	line, err = Render(message(event.NoticeContent{TextBody: body}), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice\twaves", line)
}

func TestRender_Media(t *testing.T) {
	enc := &event.EncryptedFile{URL: "mxc://example.org/enc", IV: "iv", Version: "v2"}
	cases := []struct {
		name    string
		content event.MessageContent
		want    string
	}{
		{"audio url", event.AudioContent{Media: media("voice.ogg", lo.ToPtr("mxc://x/a"), nil)}, "Alice\tvoice.ogg: mxc://x/a"},
		{"file encrypted", event.FileContent{Media: media("doc.pdf", nil, enc)}, "Alice\tdoc.pdf: mxc://example.org/enc"},
		{"image url", event.ImageContent{Media: media("cat.png", lo.ToPtr("mxc://x/c"), nil)}, "Alice\tcat.png: mxc://x/c"},
		{"video encrypted", event.VideoContent{Media: media("clip.mp4", nil, enc)}, "Alice\tclip.mp4: mxc://example.org/enc"},
		{"url wins over file", event.ImageContent{Media: media("both.png", lo.ToPtr("mxc://x/plain"), enc)}, "Alice\tboth.png: mxc://x/plain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line, err := Render(message(tc.content), "Alice")
			require.NoError(t, err)
			assert.Equal(t, tc.want, line)
		})
	}
}

func TestRender_MediaWithoutLocatorFails(t *testing.T) {
	for _, c := range []event.MessageContent{
		event.AudioContent{Media: media("a", nil, nil)},
		event.FileContent{Media: media("f", nil, nil)},
		event.ImageContent{Media: media("i", nil, nil)},
		event.VideoContent{Media: media("v", nil, nil)},
	} {
		line, err := Render(message(c), "Alice")
		assert.ErrorIs(t, err, ErrContractViolation, "kind %s", c.Kind())
		assert.Empty(t, line)
	}
}

func TestRender_Location(t *testing.T) {
	line, err := Render(message(event.LocationContent{Body: "Big Ben", GeoURI: "geo:51.5008,0.1247"}), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice\tBig Ben: geo:51.5008,0.1247", line)

	line, err = Render(message(&event.LocationContent{Body: "ptr", GeoURI: "geo:1,2"}), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice\tptr: geo:1,2", line)
}

func TestRender_ServerNoticeIgnoresDisplayname(t *testing.T) {
	for _, name := range []string{"Alice", "", "Mallory"} {
		line, err := Render(message(event.ServerNoticeContent{Body: "Maintenance at 5pm"}), name)
		require.NoError(t, err)
		assert.Equal(t, "SERVER\tMaintenance at 5pm", line)
	}
}

func TestRender_Membership(t *testing.T) {
	cases := []struct {
		state event.MembershipState
		want  string
	}{
		{event.MembershipJoin, "Bob (@bob:example.org) has joined the room"},
		{event.MembershipLeave, "Bob (@bob:example.org) has left the room"},
		{event.MembershipBan, "Bob (@bob:example.org) has banned the room"},
		{event.MembershipInvite, "Bob (@bob:example.org) has invited the room"},
		{event.MembershipKnock, "Bob (@bob:example.org) has knocked on the room"},
	}
	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			evt := &event.MemberEvent{
				Base:     event.Base{ID: "$m", Sender: "@bob:example.org"},
				StateKey: "@bob:example.org",
				Content:  event.MemberContent{Membership: tc.state},
			}
			line, err := Render(evt, "Bob")
			require.NoError(t, err)
			assert.Equal(t, tc.want, line)
			assert.NotContains(t, line, "\t")
		})
	}
}

func TestRender_MembershipUsesRawStateKey(t *testing.T) {
	evt := &event.MemberEvent{
		Base:     event.Base{Sender: "@mod:example.org"},
		StateKey: "@carol:example.org",
		Content:  event.MemberContent{Membership: event.MembershipBan, Displayname: lo.ToPtr("Carol")},
	}
	line, err := Render(evt, "Moderator")
	require.NoError(t, err)
	assert.Equal(t, "Moderator (@carol:example.org) has banned the room", line)
}

func TestRender_Undecryptable(t *testing.T) {
	evt := &event.EncryptedEvent{Base: event.Base{Sender: "@x:example.org"}, Algorithm: "m.megolm.v1.aes-sha2", Ciphertext: "garbage"}
	line, err := Render(evt, "X")
	require.NoError(t, err)
	assert.Equal(t, "X\tUnable to decrypt message", line)
}

func TestRender_TabInDisplaynameIsReplaced(t *testing.T) {
	line, err := Render(message(text("body\twith tab")), "Evil\tName")
	require.NoError(t, err)
	assert.Equal(t, "Evil Name\tbody\twith tab", line)
	assert.Equal(t, "Evil Name", strings.SplitN(line, "\t", 2)[0])
}

func TestRender_Unsupported(t *testing.T) {
	_, err := Render(nil, "Alice")
	assert.ErrorIs(t, err, ErrUnsupportedEvent)

	_, err = Render(message(nil), "Alice")
	assert.ErrorIs(t, err, ErrUnsupportedEvent)

	_, err = Render(&event.MemberEvent{StateKey: "@b:x", Content: event.MemberContent{Membership: "wave"}}, "B")
	assert.ErrorIs(t, err, ErrUnsupportedEvent)

	var nilMember *event.MemberEvent
	_, err = Render(nilMember, "B")
	assert.ErrorIs(t, err, ErrUnsupportedEvent)
}

func TestRender_NilContentPointer(t *testing.T) {
	for _, c := range []event.MessageContent{
		(*event.TextContent)(nil),
		(*event.LocationContent)(nil),
		(*event.ServerNoticeContent)(nil),
		(*event.ImageContent)(nil),
	} {
		var line string
		var err error
		require.NotPanics(t, func() { line, err = Render(message(c), "Alice") }, "%T", c)
		assert.ErrorIs(t, err, ErrUnsupportedEvent, "%T", c)
		assert.Empty(t, line)
	}

	line, err := Render(message(&event.ServerNoticeContent{Body: "ptr"}), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "SERVER\tptr", line)
}

func TestRenderer_MissingTableEntryIsAnError(t *testing.T) {
	r := &Renderer{events: map[event.Type]EventRenderer{}, messages: map[event.MessageKind]MessageRenderer{}}
	_, err := r.Render(message(text("hi")), "Alice")
	assert.ErrorIs(t, err, ErrUnsupportedEvent)

	r = &Renderer{events: map[event.Type]EventRenderer{
		event.TypeMessage: messageEventRenderer{kinds: map[event.MessageKind]MessageRenderer{}},
	}}
	_, err = r.Render(message(text("hi")), "Alice")
	assert.ErrorIs(t, err, ErrUnsupportedEvent)
}

func TestRender_Idempotent(t *testing.T) {
	evt := message(event.ImageContent{Media: media("cat.png", nil, &event.EncryptedFile{URL: "mxc://x/enc"})})
	first, err := Render(evt, "Alice")
	require.NoError(t, err)
	second, err := Render(evt, "Alice")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_ConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	lines := make([]string, 32)
	for i := range lines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lines[i], _ = Render(message(text("hi")), "Alice")
		}(i)
	}
	wg.Wait()
	for _, l := range lines {
		assert.Equal(t, "Alice\thi", l)
	}
}

func TestLayouts(t *testing.T) {
	layouts := Layouts()
	require.Len(t, layouts, 2+len(event.MessageKinds()))
	assert.Equal(t, "encrypted", layouts[0].Family)
	assert.Equal(t, "membership", layouts[1].Family)
	kinds := lo.Map(layouts[2:], func(l Layout, _ int) string { return l.Kind })
	assert.Equal(t, lo.Map(event.MessageKinds(), func(k event.MessageKind, _ int) string { return string(k) }), kinds)
	for _, l := range layouts {
		assert.NotEmpty(t, l.Format, "kind %s", l.Kind)
	}
}
