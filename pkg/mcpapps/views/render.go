// Package views defines the render contract shared by the per-app view
// implementations: a pure render function from view state to a UI
// description, recomputed wholesale on every state change instead of
// patching previous output.
package views

import "github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"

// Status summarizes what a render model shows.
type Status int

const (
	// StatusWaiting renders the neutral "waiting for data" placeholder,
	// shown before any content arrives and after a protocol hiccup.
	StatusWaiting Status = iota

	// StatusRendered shows decoded envelope content.
	StatusRendered

	// StatusFallback shows a plain text block verbatim because no
	// envelope matched the view's marker.
	StatusFallback

	// StatusCancelled shows the neutral cancelled placeholder.
	StatusCancelled
)

// Section is one heading plus its lines.
type Section struct {
	Heading string
	Lines   []string
}

// RenderModel is the complete UI description one render produces.
type RenderModel struct {
	Title    string
	Status   Status
	Theme    string
	Sections []Section
}

// Height counts rendered lines; views report it to the host after every
// render so the host can size the frame.
func (m RenderModel) Height() int {
	h := 1 // title
	for _, s := range m.Sections {
		if s.Heading != "" {
			h++
		}
		h += len(s.Lines)
	}

	return h
}

// View is one app's embedded UI instance. Implementations keep the last
// received envelope as local state and render from it alone.
type View interface {
	// Marker returns the app marker key this view consumes.
	Marker() string

	// ApplyContent replaces the view's render state with a freshly
	// delivered tool result content list. Any local edit overlay is
	// discarded: server truth wins on delivery.
	ApplyContent(blocks []envelope.Block)

	// Cancel clears the view to the neutral cancelled state.
	Cancel()

	// ApplyTheme re-applies host theme information. Idempotent; may be
	// invoked repeatedly with the same value.
	ApplyTheme(theme string)

	// Render produces the UI description for the current state.
	Render() RenderModel
}
