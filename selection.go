package main

// elementIndex is what selection needs from the session.
type elementIndex interface {
	Element(id string) *Element
	ElementAt(p Point) *Element
}

type SelectionManager struct {
	selected string
	onChange func(id string)
}

func (s *SelectionManager) Selected() string {
	return s.selected
}

// OnChange registers the listener called whenever the selected id changes.
// An empty id means nothing is selected.
func (s *SelectionManager) OnChange(fn func(id string)) {
	s.onChange = fn
}

// SelectAt selects the top-most element containing p, or clears the
// selection when p hits empty canvas.
func (s *SelectionManager) SelectAt(idx elementIndex, p Point) string {
	if el := idx.ElementAt(p); el != nil {
		s.Select(idx, el.ID)
	} else {
		s.Select(idx, "")
	}
	return s.selected
}

// Select makes id the selection. Restoring the old element always happens
// before highlighting the new one.
func (s *SelectionManager) Select(idx elementIndex, id string) {
	if id != "" && idx.Element(id) == nil {
		id = ""
	}
	if prev := idx.Element(s.selected); prev != nil {
		unhighlight(prev)
	}
	if el := idx.Element(id); el != nil {
		highlight(el)
	}
	changed := id != s.selected
	s.selected = id
	if changed && s.onChange != nil {
		s.onChange(id)
	}
}

func (s *SelectionManager) Clear(idx elementIndex) {
	s.Select(idx, "")
}

// forget drops the selection without touching element styles, for when the
// element itself is gone.
func (s *SelectionManager) forget() {
	if s.selected == "" {
		return
	}
	s.selected = ""
	if s.onChange != nil {
		s.onChange("")
	}
}

// highlight snapshots the style only when no snapshot exists, so selecting
// an element twice keeps the first snapshot.
func highlight(el *Element) {
	if el.Original == nil {
		orig := el.Style
		el.Original = &orig
	}
	applyHighlight(el)
	el.Selected = true
}

func applyHighlight(el *Element) {
	if el.isTextual() {
		el.Style.FillColor = highlightColor
		return
	}
	el.Style.StrokeColor = highlightColor
	el.Style.StrokeWidth = highlightStrokeWidth
}

func unhighlight(el *Element) {
	if el.Original != nil {
		el.Style = *el.Original
		el.Original = nil
	}
	el.Selected = false
}
