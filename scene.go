package panolens

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// defaultPanoramaRadius is the hit-sphere radius of a panorama's root object.
// Large enough that the camera always sits inside it.
const defaultPanoramaRadius = 5000.0

// Panorama is one immersive scene: a root object carrying the panorama's hit
// sphere and its interactive children (markers, primitives). At most one
// panorama is current on a viewer at a time.
type Panorama struct {
	Name string
	Kind PanoramaKind

	// Root is the panorama's scene subtree. The root itself is pass-through:
	// it contributes its intersection to every hit list (so empty-space
	// clicks still carry a surface point) without stealing interaction focus
	// from children.
	Root *Object

	// Lifecycle hooks (nil by default). OnLeave on the outgoing panorama
	// always runs strictly before OnEnter on the incoming one.
	OnEnter func()
	OnLeave func()

	// Scene-level notifications dispatched by the pointer machine.
	OnClick func(ClickContext)
	OnHover func(HoverContext)

	alpha float64
	fade  *gween.Tween
}

// NewPanorama creates a panorama of the given kind with a pass-through hit
// sphere at the world origin.
func NewPanorama(name string, kind PanoramaKind) *Panorama {
	root := NewObject(name, SphereVolume{Radius: defaultPanoramaRadius})
	root.PassThrough = true
	return &Panorama{
		Name:  name,
		Kind:  kind,
		Root:  root,
		alpha: 1,
	}
}

// Position returns the panorama's world position.
func (p *Panorama) Position() Vec3 {
	return p.Root.WorldPosition()
}

// SetPosition moves the panorama (and with it, its children) in world space.
func (p *Panorama) SetPosition(pos Vec3) {
	p.Root.Position = pos
}

// Add attaches an interactive object to the panorama subtree.
func (p *Panorama) Add(o *Object) {
	p.Root.AddChild(o)
}

// Alpha returns the current enter-fade opacity in [0, 1].
func (p *Panorama) Alpha() float64 {
	return p.alpha
}

// startFade begins the enter fade from transparent to opaque.
func (p *Panorama) startFade(duration float64) {
	if duration <= 0 {
		p.alpha = 1
		p.fade = nil
		return
	}
	p.alpha = 0
	p.fade = gween.New(0, 1, float32(duration), ease.Linear)
}

// update advances the enter fade. Called from Viewer.Update each tick.
func (p *Panorama) update(dt float64) {
	if p.fade == nil {
		return
	}
	val, done := p.fade.Update(float32(dt))
	p.alpha = float64(val)
	if done {
		p.fade = nil
	}
}

// --- Scene transitions ---

// Add registers an item with the viewer. Panoramas join the scene; the first
// panorama added automatically becomes current. Plain objects attach to the
// world root. Anything else is ignored with a warning.
func (v *Viewer) Add(item any) {
	switch obj := item.(type) {
	case *Panorama:
		v.addPanorama(obj)
	case *Object:
		v.world.AddChild(obj)
	default:
		log.Warn("unsupported scene object ignored", zap.Any("item", item))
	}
}

func (v *Viewer) addPanorama(p *Panorama) {
	for _, existing := range v.panoramas {
		if existing == p {
			return
		}
	}
	v.panoramas = append(v.panoramas, p)
	v.world.AddChild(p.Root)
	if v.panorama == nil {
		v.SetPanorama(p)
	}
}

// SetPanorama switches the current panorama. The outgoing panorama's leave
// lifecycle runs strictly before the incoming enter lifecycle; entering
// applies the active control's camera pose before the enter fade starts, so
// the camera is placed at the earliest point of scene entry. Switching to the
// already-current panorama is a no-op.
func (v *Viewer) SetPanorama(p *Panorama) {
	if p == nil || p == v.panorama {
		return
	}
	if old := v.panorama; old != nil {
		v.leavePanorama(old)
	}
	v.panorama = p
	v.enterPanorama(p)

	for _, h := range v.handlers.panoramaChange {
		h.fn(p)
	}
}

// CurrentPanorama returns the currently displayed panorama, or nil.
func (v *Viewer) CurrentPanorama() *Panorama {
	return v.panorama
}

func (v *Viewer) leavePanorama(p *Panorama) {
	if p.Kind == PanoramaVideo && v.widget != nil {
		v.widget.HideVideoControls()
	}
	if p.OnLeave != nil {
		p.OnLeave()
	}
}

func (v *Viewer) enterPanorama(p *Panorama) {
	// Camera placement first, before any enter animation.
	v.applyControlPose(v.activeControl())
	p.startFade(v.cfg.FadeDuration)
	if p.Kind == PanoramaVideo && v.widget != nil {
		v.widget.ShowVideoControls()
	}
	if p.OnEnter != nil {
		p.OnEnter()
	}
}

// SetVideoProgress forwards playback progress of the current video panorama
// to the widget collaborator. Ignored for non-video panoramas.
func (v *Viewer) SetVideoProgress(pct float64) {
	if v.panorama == nil || v.panorama.Kind != PanoramaVideo || v.widget == nil {
		return
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	v.widget.SetVideoProgress(pct)
}
