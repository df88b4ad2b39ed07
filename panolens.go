package panolens

import "math"

// Vec3 is a 3D vector used for positions, ray directions, and offsets
// throughout the API. World space is right-handed with Y up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector. The zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// GestureType classifies the state of a pointer session.
type GestureType uint8

const (
	GestureNone  GestureType = iota // no active session
	GestureDown                     // pointer pressed this event
	GestureMove                     // pointer moved (pressed or hovering)
	GestureUp                       // pointer released outside the click tolerance
	GestureClick                    // pointer released within the click tolerance
)

// ObjectKind distinguishes interaction behavior for an Object.
type ObjectKind uint8

const (
	ObjectPlain  ObjectKind = iota // ordinary hit-testable primitive
	ObjectMarker                   // interactive marker with hover/click callbacks and pointer cursor
)

// PanoramaKind is the closed set of panorama scene types.
type PanoramaKind uint8

const (
	PanoramaImage PanoramaKind = iota // static equirectangular or cube panorama
	PanoramaVideo                     // video-backed panorama with transport controls
)

// ControlKind identifies a camera-control scheme.
type ControlKind uint8

const (
	ControlOrbit             ControlKind = iota // drag to orbit the view around the panorama center
	ControlDeviceOrientation                    // device gyroscope drives the view
	ControlVR                                   // head pose from a VR device drives the view
)

// String returns the scheme name.
func (k ControlKind) String() string {
	switch k {
	case ControlOrbit:
		return "orbit"
	case ControlDeviceOrientation:
		return "device-orientation"
	case ControlVR:
		return "vr"
	default:
		return "unknown"
	}
}

// VRMode is the current mode of the VR collaborator.
type VRMode uint8

const (
	VRModeNormal VRMode = iota // monoscopic rendering, pose ignored
	VRModeStereo               // stereo rendering, device pose applied each frame
)

// EventType identifies a viewer-level subscription category.
// Used by CallbackHandle to locate the handler list on removal.
type EventType uint8

const (
	EventSceneClick     EventType = iota // classified click on the current panorama
	EventSceneHover                      // pointer move over the current panorama
	EventResize                          // host viewport size change
	EventPanoramaChange                  // current panorama switched
	EventFrame                           // per-frame tick callback
)
