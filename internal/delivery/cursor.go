package delivery

// Cursor walks a dataset's companies cyclically. Position survives a
// Reset only when the same company is still present, otherwise the
// cursor returns to the first company.
type Cursor struct {
	names []string
	pos   int
}

// NewCursor builds a cursor over the dataset's sorted company names.
func NewCursor(ds Dataset) *Cursor {
	return &Cursor{names: ds.CompanyNames()}
}

// Reset points the cursor at a fresh dataset, keeping the current
// company selected when it still exists.
func (c *Cursor) Reset(ds Dataset) {
	current := c.Current()
	c.names = ds.CompanyNames()
	c.pos = 0
	if current == "" {
		return
	}
	for i, name := range c.names {
		if name == current {
			c.pos = i
			return
		}
	}
}

// Len returns the number of companies under the cursor.
func (c *Cursor) Len() int { return len(c.names) }

// Current returns the selected company name, or "" when the dataset
// is empty.
func (c *Cursor) Current() string {
	if len(c.names) == 0 {
		return ""
	}
	return c.names[c.pos]
}

// Position returns the zero-based index of the selected company.
func (c *Cursor) Position() int { return c.pos }

// Next advances to the following company, wrapping from the last back
// to the first. A no-op on an empty dataset.
func (c *Cursor) Next() {
	if len(c.names) == 0 {
		return
	}
	c.pos = (c.pos + 1) % len(c.names)
}

// Prev moves to the preceding company, wrapping from the first to the
// last. A no-op on an empty dataset.
func (c *Cursor) Prev() {
	if len(c.names) == 0 {
		return
	}
	c.pos = (c.pos - 1 + len(c.names)) % len(c.names)
}

// Select jumps directly to the named company. Unknown names leave the
// cursor where it is and report false.
func (c *Cursor) Select(name string) bool {
	for i, n := range c.names {
		if n == name {
			c.pos = i
			return true
		}
	}
	return false
}
