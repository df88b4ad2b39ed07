package panolens

// Widget is the on-screen overlay collaborator: a control bar with optional
// video transport controls. The viewer never draws the widget; it only sends
// notifications at the appropriate interaction points.
type Widget interface {
	// ShowVideoControls surfaces the video transport overlay. Sent when a
	// video panorama becomes current.
	ShowVideoControls()
	// HideVideoControls hides the video transport overlay. Sent when a video
	// panorama is left.
	HideVideoControls()
	// SetVideoProgress reports playback progress in [0, 1].
	SetVideoProgress(pct float64)
	// ToggleControlBar flips control-bar visibility. Sent on unconsumed
	// clicks that hit no interactive target.
	ToggleControlBar()
}

// SetWidget registers the widget collaborator. A second registration is
// ignored with a warning; the first widget stays attached.
func (v *Viewer) SetWidget(w Widget) {
	if v.widget != nil {
		log.Warn("widget already registered, ignoring second registration")
		return
	}
	v.widget = w
}

// Widget returns the registered widget collaborator, or nil.
func (v *Viewer) Widget() Widget {
	return v.widget
}

// ToggleControlBar asks the widget to flip control-bar visibility. No-op
// without a widget.
func (v *Viewer) ToggleControlBar() {
	if v.widget != nil {
		v.widget.ToggleControlBar()
	}
}
