package complete

// Menu is the open popup: the current matches and a selection.
type Menu struct {
	Prefix   string
	Items    []string
	Selected int
	wrap     bool
}

// Open returns the menu for prefix, or nil when nothing matches.
func (c *Completer) Open(prefix string) *Menu {
	items := c.Matches(prefix)
	if len(items) == 0 {
		return nil
	}
	return &Menu{Prefix: prefix, Items: items, wrap: c.opts.WrapAround}
}

func (m *Menu) Next() {
	m.move(1)
}

func (m *Menu) Prev() {
	m.move(-1)
}

func (m *Menu) move(delta int) {
	n := len(m.Items)
	if n == 0 {
		return
	}
	i := m.Selected + delta
	switch {
	case i < 0 && m.wrap:
		i = n - 1
	case i < 0:
		i = 0
	case i >= n && m.wrap:
		i = 0
	case i >= n:
		i = n - 1
	}
	m.Selected = i
}

func (m *Menu) Current() string {
	if m == nil || len(m.Items) == 0 {
		return ""
	}
	return m.Items[m.Selected]
}
