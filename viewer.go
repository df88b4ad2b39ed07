package panolens

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Renderer draws the current panorama. Rendering is an external concern: the
// viewer owns interaction and camera state and hands both to the renderer
// once per frame.
type Renderer interface {
	// SetSize is called whenever the host viewport size changes.
	SetSize(width, height int)
	// RenderFrame draws one frame of the panorama as seen by cam.
	RenderFrame(screen *ebiten.Image, panorama *Panorama, cam *Camera)
}

// Viewer is the interaction core of a panoramic scene: it owns the camera,
// the fixed set of control schemes, the current panorama, and the pointer
// state machine, and drives them all from a single cooperative frame tick.
//
// All methods must be called from the game loop goroutine; the viewer is
// single-threaded by design and holds no locks.
type Viewer struct {
	cfg Config

	camera    *Camera
	raycaster Raycaster
	renderer  Renderer
	widget    Widget
	vr        VRDevice

	world     *Object
	panoramas []*Panorama
	panorama  *Panorama

	controls     []Control
	controlIndex int

	session       pointerSession
	handlers      handlerRegistry
	injectQueue   []pointerEvent
	cursorPointer bool

	// Raw input bookkeeping
	pointerDown  bool
	lastX, lastY float64
	touchIDs     []ebiten.TouchID
	touchActive  bool
	touchX       float64
	touchY       float64

	width  int
	height int

	debug bool

	// ScreenshotDir is where Screenshot writes PNG captures.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewViewer creates a viewer from the given configuration. Zero-value config
// fields fall back to DefaultConfig values. The control set is fixed at
// construction: orbit, device-orientation, and (when EnableVR is set) VR;
// orbit starts active.
func NewViewer(cfg Config) *Viewer {
	cfg = cfg.withDefaults()

	cam := NewCamera(cfg.FOV, cfg.Width, cfg.Height)
	v := &Viewer{
		cfg:           cfg,
		camera:        cam,
		raycaster:     VolumeRaycaster{},
		world:         NewObject("world", nil),
		width:         cfg.Width,
		height:        cfg.Height,
		ScreenshotDir: "screenshots",
	}

	v.controls = []Control{
		NewOrbitControl(cam),
		NewDeviceOrientationControl(cam),
	}
	if cfg.EnableVR {
		v.controls = append(v.controls, NewVRControl())
	}
	v.controls[0].Enable()

	return v
}

// Update advances the viewer by one frame tick: animation timers first, then
// registered per-frame callbacks in registration order, then the active
// control, then input. All steps run synchronously; a stalled callback stalls
// the frame.
func (v *Viewer) Update() {
	dt := 1.0 / float64(ebiten.TPS())

	v.camera.update(dt)
	if v.panorama != nil {
		v.panorama.update(dt)
	}
	for _, h := range v.handlers.frame {
		h.fn(dt)
	}
	v.updateControls(dt)
	v.pollInput()
}

// Draw requests a render of the current panorama from the renderer
// collaborator, then the debug overlay and any queued screenshots. The render
// itself is skipped without a renderer or panorama.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.renderer != nil && v.panorama != nil {
		v.renderer.RenderFrame(screen, v.panorama, v.camera)
	}
	if v.debug && screen != nil {
		v.drawDebug(screen)
	}
	v.flushScreenshots(screen)
}

// Layout records the host viewport size, propagating it to the camera and
// renderer and firing the window-resize notification on change.
func (v *Viewer) Layout(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	v.camera.SetSize(width, height)
	if v.renderer != nil {
		v.renderer.SetSize(width, height)
	}
	for _, h := range v.handlers.resize {
		h.fn(width, height)
	}
}

// SetRenderer sets the renderer collaborator.
func (v *Viewer) SetRenderer(r Renderer) {
	v.renderer = r
	if r != nil {
		r.SetSize(v.width, v.height)
	}
}

// SetRaycaster replaces the hit-test implementation. Passing nil restores the
// built-in volume raycaster.
func (v *Viewer) SetRaycaster(r Raycaster) {
	if r == nil {
		r = VolumeRaycaster{}
	}
	v.raycaster = r
}

// Camera returns the viewer's camera.
func (v *Viewer) Camera() *Camera {
	return v.camera
}

// LookAt turns the camera toward the object's world position over the given
// duration in seconds. The camera stays in place; only the view direction
// changes. A non-positive duration snaps immediately.
func (v *Viewer) LookAt(o *Object, duration float64) {
	if o == nil {
		return
	}
	v.camera.LookTo(v.camera.Position, o.WorldPosition(), float32(duration), ease.InOutQuad)
}

// Renderer returns the renderer collaborator, or nil.
func (v *Viewer) Renderer() Renderer {
	return v.renderer
}

// World returns the scene root containing every panorama subtree and any
// free-standing objects. Useful as a whole-scene raycast root.
func (v *Viewer) World() *Object {
	return v.world
}

// Size returns the current viewport size in pixels.
func (v *Viewer) Size() (width, height int) {
	return v.width, v.height
}

// --- Run helper ---

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// game adapts a Viewer to ebiten.Game.
type game struct {
	viewer *Viewer
}

func (g *game) Update() error {
	g.viewer.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.viewer.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewer.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run creates a window and drives the viewer's frame loop until the window
// closes. For full control over the loop, implement ebiten.Game yourself and
// call Viewer.Update, Viewer.Draw, and Viewer.Layout directly.
func Run(v *Viewer, cfg RunConfig) error {
	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		width, height = v.width, v.height
	}
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&game{viewer: v})
}
