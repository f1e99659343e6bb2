package macro

import "strings"

// Capture collects the text typed during one Insert session.
type Capture struct {
	active bool
	text   []rune
}

// Begin starts a new capture, discarding the previous one.
func (c *Capture) Begin() {
	c.active = true
	c.text = c.text[:0]
}

// Active reports whether a capture is running.
func (c *Capture) Active() bool {
	return c.active
}

// Add appends a typed character.
func (c *Capture) Add(r rune) {
	if c.active {
		c.text = append(c.text, r)
	}
}

// Backspace removes the last captured character.
func (c *Capture) Backspace() {
	if c.active && len(c.text) > 0 {
		c.text = c.text[:len(c.text)-1]
	}
}

// Finish ends the capture and returns the typed text. strip is the
// number of trailing characters that belong to a soft escape alias and
// are not part of the inserted text.
func (c *Capture) Finish(strip int) string {
	if !c.active {
		return ""
	}
	c.active = false
	if strip > len(c.text) {
		strip = len(c.text)
	}
	if strip > 0 {
		c.text = c.text[:len(c.text)-strip]
	}
	var b strings.Builder
	for _, r := range c.text {
		b.WriteRune(r)
	}
	return b.String()
}
