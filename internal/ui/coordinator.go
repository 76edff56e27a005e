package ui

import log "github.com/sirupsen/logrus"

// Coordinator tracks which pane is active. Focus moving into a pane's
// location bar or listing activates that pane; focus moving to the tree
// leaves the previous pane active. Exactly one pane is active at a time.
type Coordinator struct {
	left, right *Pane
	active      *Pane
	listeners   []func(*Pane)
}

// NewCoordinator activates left and subscribes to focus changes.
func NewCoordinator(left, right *Pane, focus *FocusManager) *Coordinator {
	c := &Coordinator{left: left, right: right}
	c.SetActive(left)
	if focus != nil {
		focus.Subscribe(c.focusChanged)
	}
	return c
}

// OnActivate registers fn to run whenever the active pane changes,
// including re-activation of the same pane.
func (c *Coordinator) OnActivate(fn func(*Pane)) {
	c.listeners = append(c.listeners, fn)
}

func (c *Coordinator) focusChanged(_, to FocusID) {
	if p := c.Owner(to); p != nil {
		c.SetActive(p)
	}
}

// Owner returns the pane a focus target belongs to, nil for the tree.
func (c *Coordinator) Owner(id FocusID) *Pane {
	switch id.Region() {
	case LeftSide.String():
		return c.left
	case RightSide.String():
		return c.right
	}
	return nil
}

// SetActive makes p the active pane and deactivates the other.
func (c *Coordinator) SetActive(p *Pane) {
	if p != c.left && p != c.right {
		return
	}
	changed := c.active != p
	c.active = p
	p.SetActive(true)
	c.Other(p).SetActive(false)
	if changed {
		log.WithField("pane", p.Side.String()).Debug("active pane changed")
	}
	for _, fn := range c.listeners {
		fn(p)
	}
}

// Active is the pane that receives new folder and terminal commands.
func (c *Coordinator) Active() *Pane { return c.active }

// Other returns the pane that is not p.
func (c *Coordinator) Other(p *Pane) *Pane {
	if p == c.left {
		return c.right
	}
	return c.left
}

// Pane returns the pane on side.
func (c *Coordinator) Pane(side PaneSide) *Pane {
	if side == RightSide {
		return c.right
	}
	return c.left
}

// Panes returns left then right.
func (c *Coordinator) Panes() []*Pane {
	return []*Pane{c.left, c.right}
}
