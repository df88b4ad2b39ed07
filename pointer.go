package panolens

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultClickTolerance is the per-axis pixel tolerance for classifying a
// press/release pair as a click.
const defaultClickTolerance = 10.0

// --- Pointer session ---

// pointerEventKind is the raw input event category fed to the state machine.
type pointerEventKind uint8

const (
	pointerDown pointerEventKind = iota
	pointerMove
	pointerUp
)

// pointerEvent is a single raw input event in screen pixels.
type pointerEvent struct {
	kind pointerEventKind
	x, y float64
}

// pointerSession is the transient per-pointer state between raw events:
// one down→up cycle plus the cross-frame hover references. Owned exclusively
// by the pointer state machine; never shared.
type pointerSession struct {
	down    bool
	startX  float64
	startY  float64
	gesture GestureType

	hoverEntity *Entity
	pressEntity *Entity
	pressObject *Object
	hoverMarker *Object
}

// --- Handler registry ---

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type hoverHandler struct {
	id uint32
	fn func(HoverContext)
}

type resizeHandler struct {
	id uint32
	fn func(width, height int)
}

type panoramaHandler struct {
	id uint32
	fn func(*Panorama)
}

type frameHandler struct {
	id uint32
	fn func(dt float64)
}

type handlerRegistry struct {
	sceneClick     []clickHandler
	sceneHover     []hoverHandler
	resize         []resizeHandler
	panoramaChange []panoramaHandler
	frame          []frameHandler
	nextID         uint32
}

// CallbackHandle allows removing a registered viewer-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventSceneClick:
		h.reg.sceneClick = removeClickHandler(h.reg.sceneClick, h.id)
	case EventSceneHover:
		h.reg.sceneHover = removeHoverHandler(h.reg.sceneHover, h.id)
	case EventResize:
		h.reg.resize = removeResizeHandler(h.reg.resize, h.id)
	case EventPanoramaChange:
		h.reg.panoramaChange = removePanoramaHandler(h.reg.panoramaChange, h.id)
	case EventFrame:
		h.reg.frame = removeFrameHandler(h.reg.frame, h.id)
	}
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeHoverHandler(s []hoverHandler, id uint32) []hoverHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = hoverHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeResizeHandler(s []resizeHandler, id uint32) []resizeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = resizeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removePanoramaHandler(s []panoramaHandler, id uint32) []panoramaHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = panoramaHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeFrameHandler(s []frameHandler, id uint32) []frameHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = frameHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Viewer-level event registration ---

// OnSceneClick registers a callback for classified clicks on the current
// panorama. The context carries the full ordered intersection list.
func (v *Viewer) OnSceneClick(fn func(ClickContext)) CallbackHandle {
	v.handlers.nextID++
	id := v.handlers.nextID
	v.handlers.sceneClick = append(v.handlers.sceneClick, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &v.handlers, event: EventSceneClick}
}

// OnSceneHover registers a callback for pointer moves over the current panorama.
func (v *Viewer) OnSceneHover(fn func(HoverContext)) CallbackHandle {
	v.handlers.nextID++
	id := v.handlers.nextID
	v.handlers.sceneHover = append(v.handlers.sceneHover, hoverHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &v.handlers, event: EventSceneHover}
}

// OnResize registers a callback for host viewport size changes.
func (v *Viewer) OnResize(fn func(width, height int)) CallbackHandle {
	v.handlers.nextID++
	id := v.handlers.nextID
	v.handlers.resize = append(v.handlers.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &v.handlers, event: EventResize}
}

// OnPanoramaChange registers a callback fired after the current panorama switches.
func (v *Viewer) OnPanoramaChange(fn func(*Panorama)) CallbackHandle {
	v.handlers.nextID++
	id := v.handlers.nextID
	v.handlers.panoramaChange = append(v.handlers.panoramaChange, panoramaHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &v.handlers, event: EventPanoramaChange}
}

// OnUpdate registers a per-frame callback, invoked every tick in registration
// order before the active control updates.
func (v *Viewer) OnUpdate(fn func(dt float64)) CallbackHandle {
	v.handlers.nextID++
	id := v.handlers.nextID
	v.handlers.frame = append(v.handlers.frame, frameHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &v.handlers, event: EventFrame}
}

// --- State machine ---

// onSurface reports whether the event position lies on the render surface.
func (v *Viewer) onSurface(x, y float64) bool {
	w, h := v.camera.Size()
	return x >= 0 && y >= 0 && x <= float64(w) && y <= float64(h)
}

// clearPress drops the sticky press references. Press state never survives a
// release, regardless of where the pointer ended up.
func (v *Viewer) clearPress() {
	v.session.pressEntity = nil
	v.session.pressObject = nil
}

// processPointer runs the pointer state machine for one raw input event and
// reports whether a marker consumed the gesture (callers use this to suppress
// click-through behaviors).
//
// The event order per call is: gesture classification, ray cast + entity
// resolution, hover transitions, press tracking, marker cursor handling,
// hover/click dispatch.
func (v *Viewer) processPointer(evt pointerEvent) bool {
	if v.panorama == nil {
		return false
	}

	s := &v.session

	// Surface guard: events off the render surface are dropped. A release
	// off-surface still clears press state and may toggle the control bar.
	if !v.onSurface(evt.x, evt.y) {
		if evt.kind == pointerUp {
			v.clearPress()
			s.down = false
			s.gesture = GestureNone
			if v.cfg.AutoHideControlBar && v.widget != nil {
				v.widget.ToggleControlBar()
			}
		}
		return false
	}

	// Gesture classification. A release classifies as a click iff it lands
	// within the tolerance of the press position on both axes independently.
	switch evt.kind {
	case pointerDown:
		s.down = true
		s.startX, s.startY = evt.x, evt.y
		s.gesture = GestureDown
	case pointerMove:
		s.gesture = GestureMove
	case pointerUp:
		if s.down &&
			math.Abs(evt.x-s.startX) <= v.cfg.ClickTolerance &&
			math.Abs(evt.y-s.startY) <= v.cfg.ClickTolerance {
			s.gesture = GestureClick
		} else {
			s.gesture = GestureUp
		}
	}

	// Resolve the current target.
	ray := v.camera.ScreenRay(evt.x, evt.y)
	hits := v.raycaster.Cast(ray, v.panorama.Root, true)
	entity, obj := ResolveTarget(hits)

	// Entity-level hover transitions: at most one enter/leave pair per target
	// change, no duplicate enters while hovering the same entity.
	if s.hoverEntity != nil && (len(hits) == 0 || entity != s.hoverEntity) {
		old := s.hoverEntity
		s.hoverEntity = nil
		if old.OnHoverLeave != nil {
			old.OnHoverLeave(HoverContext{Entity: old, Object: obj, X: evt.x, Y: evt.y, Hits: hits})
		}
	}
	if entity != nil && entity != s.hoverEntity {
		s.hoverEntity = entity
		if entity.OnHoverEnter != nil {
			entity.OnHoverEnter(HoverContext{Entity: entity, Object: obj, X: evt.x, Y: evt.y, Hits: hits})
		}
	}

	// Press tracking: sticky from down until release, for the logical entity
	// and the literal primitive independently.
	switch s.gesture {
	case GestureDown:
		if entity != nil && entity != s.pressEntity {
			s.pressEntity = entity
			if entity.OnPressStart != nil {
				entity.OnPressStart(PressContext{Entity: entity, Object: obj, X: evt.x, Y: evt.y})
			}
		}
		if obj != nil && obj != s.pressObject {
			s.pressObject = obj
			if obj.OnPressStart != nil {
				obj.OnPressStart(PressContext{Entity: entity, Object: obj, X: evt.x, Y: evt.y})
			}
		}
	case GestureMove:
		// A move with no prior down updates hover only.
		if s.down {
			if s.pressEntity != nil && s.pressEntity.OnPressMove != nil {
				s.pressEntity.OnPressMove(PressContext{Entity: s.pressEntity, Object: s.pressObject, X: evt.x, Y: evt.y})
			}
			if s.pressObject != nil && s.pressObject.OnPressMove != nil {
				s.pressObject.OnPressMove(PressContext{Entity: s.pressEntity, Object: s.pressObject, X: evt.x, Y: evt.y})
			}
		}
	case GestureUp, GestureClick:
		if s.pressEntity != nil && entity == s.pressEntity && s.pressEntity.OnPressStop != nil {
			s.pressEntity.OnPressStop(PressContext{Entity: s.pressEntity, Object: obj, X: evt.x, Y: evt.y})
		}
		if s.pressObject != nil && obj == s.pressObject && s.pressObject.OnPressStop != nil {
			s.pressObject.OnPressStop(PressContext{Entity: entity, Object: s.pressObject, X: evt.x, Y: evt.y})
		}
		v.clearPress()
		s.down = false
	}

	// Marker handling: only the nearest intersection counts. A hovered marker
	// sets the pointer cursor and its click consumes the gesture.
	consumed := false
	var marker *Object
	if len(hits) > 0 && hits[0].Object.Kind == ObjectMarker {
		marker = hits[0].Object
	}
	if marker != nil {
		if s.hoverMarker != nil && s.hoverMarker != marker && s.hoverMarker.OnHoverEnd != nil {
			s.hoverMarker.OnHoverEnd()
		}
		s.hoverMarker = marker
		v.setPointerCursor(true)
		if marker.OnHover != nil {
			marker.OnHover(evt.x, evt.y)
		}
		if s.gesture == GestureClick {
			if marker.OnMarkerClick != nil {
				marker.OnMarkerClick()
			}
			consumed = true
		}
	} else {
		v.setPointerCursor(false)
		if s.hoverMarker != nil {
			if s.hoverMarker.OnHoverEnd != nil {
				s.hoverMarker.OnHoverEnd()
			}
			s.hoverMarker = nil
		}
	}

	// Scene-level hover dispatch.
	if s.gesture == GestureMove {
		hctx := HoverContext{Entity: entity, Object: obj, X: evt.x, Y: evt.y, Hits: hits}
		if v.panorama.OnHover != nil {
			v.panorama.OnHover(hctx)
		}
		for _, h := range v.handlers.sceneHover {
			h.fn(hctx)
		}
	}

	// Click dispatch: panorama first (with the full hit list), then the
	// resolved entity and primitive independently.
	if s.gesture == GestureClick {
		cctx := ClickContext{Entity: entity, Object: obj, X: evt.x, Y: evt.y, Hits: hits}
		if v.panorama.OnClick != nil {
			v.panorama.OnClick(cctx)
		}
		for _, h := range v.handlers.sceneClick {
			h.fn(cctx)
		}
		if entity != nil && entity.OnClick != nil {
			entity.OnClick(cctx)
		}
		if obj != nil && obj.OnClick != nil {
			obj.OnClick(cctx)
		}

		// An unconsumed click on empty space toggles the control bar through
		// the widget collaborator.
		if !consumed && entity == nil && obj == nil &&
			v.cfg.AutoHideControlBar && v.widget != nil {
			v.widget.ToggleControlBar()
		}
	}

	return consumed
}

// setPointerCursor switches between the pointer and default cursor shapes,
// avoiding redundant host calls.
func (v *Viewer) setPointerCursor(pointer bool) {
	if v.cursorPointer == pointer {
		return
	}
	v.cursorPointer = pointer
	if pointer {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// --- Input polling ---

// pollInput reads mouse and touch state from the host once per tick and feeds
// synthesized down/move/up events through the state machine. Injected
// synthetic events take priority; only the first touch point is consulted.
func (v *Viewer) pollInput() {
	if v.processInjected() {
		return
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	v.touchIDs = ebiten.AppendTouchIDs(v.touchIDs[:0])
	if len(v.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(v.touchIDs[0])
		x, y = float64(tx), float64(ty)
		pressed = true
		v.touchActive = true
		v.touchX, v.touchY = x, y
	} else if v.touchActive {
		// Touch lifted: the host reports no position for an ended touch, so
		// release at the last known touch coordinates.
		v.touchActive = false
		v.pointerDown = false
		v.processPointer(pointerEvent{kind: pointerUp, x: v.touchX, y: v.touchY})
		return
	}

	var dx, dy float64
	switch {
	case pressed && !v.pointerDown:
		v.pointerDown = true
		v.lastX, v.lastY = x, y
		v.processPointer(pointerEvent{kind: pointerDown, x: x, y: y})
	case !pressed && v.pointerDown:
		v.pointerDown = false
		v.processPointer(pointerEvent{kind: pointerUp, x: x, y: y})
	default:
		if x != v.lastX || y != v.lastY {
			dx, dy = x-v.lastX, y-v.lastY
			v.lastX, v.lastY = x, y
			v.processPointer(pointerEvent{kind: pointerMove, x: x, y: y})
		}
	}

	// Feed the active control: drag deltas while pressed, wheel for zoom.
	if v.pointerDown && (dx != 0 || dy != 0) {
		if d, ok := v.activeControl().(dragControl); ok {
			d.Drag(dx, dy)
		}
	}
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		if z, ok := v.activeControl().(zoomControl); ok {
			z.Zoom(wheelY)
		}
	}
}
