package dashboard

// ResizeSession scopes one pointer drag of the pane divider. At most one
// session exists per controller; End must be called on release, and
// ReleaseResize covers teardown.
type ResizeSession struct {
	c    *Controller
	done bool
}

// BeginResize starts a drag. It fails while another drag is active, while
// nothing is selected, or in the mobile layout, where there is no divider.
func (c *Controller) BeginResize() (*ResizeSession, bool) {
	if c.resize != nil || c.state.Mobile {
		return nil, false
	}
	if _, ok := c.Selected(); !ok {
		return nil, false
	}
	c.resize = &ResizeSession{c: c}
	c.state.Resizing = true
	return c.resize, true
}

// ReleaseResize ends the active drag, if any.
func (c *Controller) ReleaseResize() {
	if c.resize != nil {
		c.resize.End()
	}
}

// Move converts a pointer position into a split ratio. left and width
// describe the container the divider splits. Moves after End are ignored.
func (s *ResizeSession) Move(pointerX, left, width float64) {
	if s.done || width <= 0 {
		return
	}
	s.c.state.SplitRatio = ClampSplit((pointerX - left) / width * 100)
}

// End releases the session. Calling it more than once is harmless.
func (s *ResizeSession) End() {
	if s.done {
		return
	}
	s.done = true
	if s.c.resize == s {
		s.c.resize = nil
		s.c.state.Resizing = false
	}
}

// Active reports whether the session has not ended.
func (s *ResizeSession) Active() bool {
	return !s.done
}
