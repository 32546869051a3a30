package render

import (
	"github.com/samber/lo"

	"matrix-render/internal/event"
)

// Layout describes the line rendered for one event family/kind.
type Layout struct {
	Family string
	Kind   string
	Format string
}

// Layouts lists the dispatch table of the default Renderer.
func Layouts() []Layout {
	return defaultRenderer.Layouts()
}

// Layouts lists every family and kind r can render, in a stable order.
func (r *Renderer) Layouts() []Layout {
	out := []Layout{
		{Family: "encrypted", Kind: string(event.TypeEncrypted), Format: `{displayname}\t` + undecryptable},
		{Family: "membership", Kind: string(event.TypeMember), Format: "{displayname} ({state_key}) has {verb} the room"},
	}
	kinds := lo.Filter(event.MessageKinds(), func(k event.MessageKind, _ int) bool {
		_, ok := r.messages[k]
		return ok
	})
	return append(out, lo.Map(kinds, func(k event.MessageKind, _ int) Layout {
		return Layout{Family: "message", Kind: string(k), Format: r.messages[k].Layout()}
	})...)
}
