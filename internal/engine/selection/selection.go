// Package selection tracks which designs are selected, the search filter over
// their notes and the metrics on the plot axes.
package selection

import (
	"slices"
	"strings"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/zerr"
)

type entry struct {
	id    string
	notes string
}

// State is a snapshot of the engine.
type State struct {
	// Selected holds design ids in the order they were selected.
	Selected []string
	Search   string
	Cursor   string
	XMetric  string
	YMetric  string
}

// Engine owns the selection, the search filter and the axes. It is not safe
// for concurrent use; the interactive loop is its only caller.
type Engine struct {
	designs  []entry
	search   string
	selected []string
	cursor   string

	defined []string
	x, y    string
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{}
}

// SetDesigns replaces the known designs. Selections of designs that are gone are dropped.
func (e *Engine) SetDesigns(designs []*domain.Design) {
	e.designs = e.designs[:0]
	for _, d := range designs {
		e.designs = append(e.designs, entry{id: d.ID(), notes: d.Notes})
	}
	slices.SortFunc(e.designs, func(a, b entry) int { return strings.Compare(a.id, b.id) })

	e.selected = slices.DeleteFunc(e.selected, func(id string) bool { return !e.known(id) })
	if !e.known(e.cursor) {
		e.cursor = ""
	}
}

// SetNotes updates the description a design is searched by.
func (e *Engine) SetNotes(id, notes string) {
	if i, ok := e.index(id); ok {
		e.designs[i].notes = notes
	}
}

func (e *Engine) index(id string) (int, bool) {
	return slices.BinarySearchFunc(e.designs, id, func(en entry, target string) int {
		return strings.Compare(en.id, target)
	})
}

func (e *Engine) known(id string) bool {
	_, ok := e.index(id)
	return ok
}

// SetSearch changes the filter. Selections are kept.
func (e *Engine) SetSearch(text string) {
	e.search = text
}

// Search returns the current filter text.
func (e *Engine) Search() string {
	return e.search
}

// Matches reports whether notes match the current search: a case-insensitive
// substring test, where an empty query matches everything.
func (e *Engine) Matches(notes string) bool {
	if e.search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(notes), strings.ToLower(e.search))
}

// Filtered returns the ids of the designs matching the search, ordered by id.
func (e *Engine) Filtered() []string {
	var ids []string
	for _, en := range e.designs {
		if e.Matches(en.notes) {
			ids = append(ids, en.id)
		}
	}
	return ids
}

// ToggleSelection adds or removes a design from the selection and moves the cursor to it.
func (e *Engine) ToggleSelection(id string) error {
	if !e.known(id) {
		return zerr.With(domain.ErrDesignNotFound, "design", id)
	}
	e.cursor = id
	if i := slices.Index(e.selected, id); i >= 0 {
		e.selected = slices.Delete(e.selected, i, i+1)
		return nil
	}
	e.selected = append(e.selected, id)
	return nil
}

// IsSelected reports whether a design is selected.
func (e *Engine) IsSelected(id string) bool {
	return slices.Contains(e.selected, id)
}

// Selected returns the selected design ids in selection order.
func (e *Engine) Selected() []string {
	return slices.Clone(e.selected)
}

// Cursor returns the id of the design navigation last landed on.
func (e *Engine) Cursor() string {
	return e.cursor
}

// SelectNext moves to the next design in the filtered list. See move.
func (e *Engine) SelectNext() {
	e.move(1)
}

// SelectPrevious moves to the previous design in the filtered list. See move.
func (e *Engine) SelectPrevious() {
	e.move(-1)
}

// move steps through the filtered list from the cursor, or from the last
// visible selection when the cursor is filtered out, stopping at the ends.
// The design landed on becomes the only visible selection; selections hidden
// by the filter are kept. Without an anchor it lands on the first design
// going forward and on the last going backward.
func (e *Engine) move(step int) {
	filtered := e.Filtered()
	if len(filtered) == 0 {
		return
	}

	anchor := slices.Index(filtered, e.cursor)
	if anchor < 0 {
		for i := len(e.selected) - 1; i >= 0 && anchor < 0; i-- {
			anchor = slices.Index(filtered, e.selected[i])
		}
	}

	var target int
	switch {
	case anchor < 0 && step > 0:
		target = 0
	case anchor < 0:
		target = len(filtered) - 1
	default:
		target = min(max(anchor+step, 0), len(filtered)-1)
	}

	landed := filtered[target]
	e.selected = slices.DeleteFunc(e.selected, func(id string) bool {
		return slices.Contains(filtered, id)
	})
	e.selected = append(e.selected, landed)
	e.cursor = landed
}

// SetDefinedMetrics records the metrics every design provides and fixes the
// axes up: an axis whose metric is no longer defined falls back to the default.
func (e *Engine) SetDefinedMetrics(defined []string) {
	e.defined = slices.Clone(defined)
	dx, dy := domain.DefaultAxes(e.defined)
	if !slices.Contains(e.defined, e.x) {
		e.x = dx
	}
	if !slices.Contains(e.defined, e.y) {
		e.y = dy
	}
}

// DefinedMetrics returns the metrics available for the axes.
func (e *Engine) DefinedMetrics() []string {
	return slices.Clone(e.defined)
}

// SetAxes sets both axis metrics. Empty names keep the current axis.
func (e *Engine) SetAxes(x, y string) error {
	for _, name := range []string{x, y} {
		if name != "" && !slices.Contains(e.defined, name) {
			return zerr.With(domain.ErrUnknownMetric, "metric", name)
		}
	}
	if x != "" {
		e.x = x
	}
	if y != "" {
		e.y = y
	}
	return nil
}

// Axes returns the x and y metric names.
func (e *Engine) Axes() (x, y string) {
	return e.x, e.y
}

// CycleX moves the x axis to the next defined metric, skipping the y metric.
func (e *Engine) CycleX() {
	e.x = cycle(e.defined, e.x, e.y)
}

// CycleY moves the y axis to the next defined metric, skipping the x metric.
func (e *Engine) CycleY() {
	e.y = cycle(e.defined, e.y, e.x)
}

func cycle(defined []string, current, other string) string {
	n := len(defined)
	if n == 0 {
		return current
	}
	i := (slices.Index(defined, current) + 1) % n
	if defined[i] == other {
		i = (i + 1) % n
	}
	return defined[i]
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	return State{
		Selected: e.Selected(),
		Search:   e.search,
		Cursor:   e.cursor,
		XMetric:  e.x,
		YMetric:  e.y,
	}
}
