package panolens

// VRDevice is the virtual-reality collaborator: mode switching and per-frame
// head-pose tracking. Stereo projection and device detection live entirely
// behind this interface.
type VRDevice interface {
	// Mode reports the current rendering mode.
	Mode() VRMode
	// Enter switches the device to stereo mode.
	Enter()
	// Exit returns the device to normal mode.
	Exit()
	// UpdatePose writes the tracked head pose into the camera. Called once
	// per frame while the device is in stereo mode.
	UpdatePose(cam *Camera)
}

// SetVRDevice registers the VR collaborator.
func (v *Viewer) SetVRDevice(d VRDevice) {
	v.vr = d
}

// EnterVR asks the VR collaborator to enter stereo mode and activates the VR
// control scheme to match. No-op without a device or when the viewer was
// built without VR support.
func (v *Viewer) EnterVR() {
	if v.vr == nil {
		return
	}
	v.vr.Enter()
	if idx := v.controlIndexOf(ControlVR); idx >= 0 {
		v.EnableControl(idx)
	}
}

// ExitVR asks the VR collaborator to leave stereo mode and falls back to the
// first control scheme. No-op without a device.
func (v *Viewer) ExitVR() {
	if v.vr == nil {
		return
	}
	v.vr.Exit()
	if v.activeControl().Kind() == ControlVR {
		v.EnableControl(0)
	}
}

// controlIndexOf returns the index of the first scheme of the given kind,
// or -1 when the fixed set does not include it.
func (v *Viewer) controlIndexOf(kind ControlKind) int {
	for i, c := range v.controls {
		if c.Kind() == kind {
			return i
		}
	}
	return -1
}
