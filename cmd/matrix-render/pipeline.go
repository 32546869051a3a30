package main

import (
	"errors"
	"fmt"
	"io"

	"matrix-render/internal/event"
	"matrix-render/internal/feed"
	"matrix-render/internal/logger"
	"matrix-render/internal/render"
	"matrix-render/internal/roster"
)

type stats struct {
	Rendered int
	Skipped  int
}

// pipeline resolves sender names from the membership events it has seen and
// renders every event of a feed.
type pipeline struct {
	renderer *render.Renderer
	names    *roster.Directory
	log      *logger.LogEntry
}

func newPipeline(entry *logger.LogEntry) *pipeline {
	if entry == nil {
		entry = log
	}
	return &pipeline{
		renderer: render.New(),
		names:    roster.New(),
		log:      entry,
	}
}

// run renders every event read from in and hands each line to emit. Lines
// that cannot be decoded or rendered are logged and skipped; a broken event
// contract stops the run.
func (p *pipeline) run(in io.Reader, emit func(string) error) (stats, error) {
	var st stats
	reader := feed.NewReader(in)
	for {
		item, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return st, nil
		}
		if err != nil {
			return st, fmt.Errorf("read events: %w", err)
		}
		line, ok, err := p.handle(item)
		if err != nil {
			return st, err
		}
		if !ok {
			st.Skipped++
			continue
		}
		if err := emit(line); err != nil {
			return st, err
		}
		st.Rendered++
	}
}

// handle renders one feed item. ok is false when the item was skipped.
func (p *pipeline) handle(item feed.Item) (line string, ok bool, err error) {
	entry := p.log.WithField("line", item.Line)
	if item.Err != nil {
		entry.Warnf("skipped input: %v", item.Err)
		return "", false, nil
	}
	evt := item.Event
	if member, isMember := evt.(*event.MemberEvent); isMember {
		p.names.Apply(member)
	}
	line, err = p.renderer.Render(evt, p.names.Displayname(evt.SenderID()))
	entry = entry.WithField("event_id", evt.EventID())
	if errors.Is(err, render.ErrContractViolation) {
		return "", false, fmt.Errorf("line %d: event %s: %w", item.Line, evt.EventID(), err)
	}
	if err != nil {
		entry.Warnf("skipped event: %v", err)
		return "", false, nil
	}
	entry.WithField("type", evt.Type()).Debug("rendered event")
	return line, true, nil
}
