package panolens

// HitVolume is a ray-testable bounding volume in local coordinates,
// centered on the owning object's world position.
type HitVolume interface {
	// IntersectRay returns the distance along the ray to the nearest hit,
	// or ok=false when the ray misses. center is the owner's world position.
	IntersectRay(ray Ray, center Vec3) (dist float64, ok bool)
}

// --- Callback contexts ---

// HoverContext carries hover event data. Entity is nil when the target is a
// bare primitive; Object is the literal intersected primitive.
type HoverContext struct {
	Entity *Entity
	Object *Object
	X, Y   float64
	Hits   []Intersection
}

// PressContext carries press event data for the sticky press target.
type PressContext struct {
	Entity *Entity
	Object *Object
	X, Y   float64
}

// ClickContext carries click event data, including the full ordered
// intersection list of the classifying ray cast.
type ClickContext struct {
	Entity *Entity
	Object *Object
	X, Y   float64
	Hits   []Intersection
}

// --- ID counter ---

// objectIDCounter is a plain counter (no atomic — panolens is single-threaded).
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// --- Object ---

// Object is a scene-graph primitive: a single ray-testable unit. A flat
// struct is used for all kinds to avoid interface dispatch on the hot path.
//
// Positions are local offsets from the parent; WorldPosition resolves the
// chain. An Object may back a logical Entity; several objects sharing one
// Entity collapse to a single interaction target.
type Object struct {
	// Identity
	ID   uint32
	Name string
	Kind ObjectKind

	// Hierarchy
	Parent   *Object
	children []*Object

	// Placement & hit testing
	Position Vec3
	Volume   HitVolume

	// Visibility & interaction
	Visible     bool
	PassThrough bool

	// Entity is the logical interaction handle this primitive belongs to.
	// Nil means the primitive is its own target.
	Entity *Entity

	// Per-object callbacks (nil by default; zero cost when unused)
	OnClick      func(ClickContext)
	OnPressStart func(PressContext)
	OnPressMove  func(PressContext)
	OnPressStop  func(PressContext)

	// Marker callbacks (ObjectMarker only)
	OnHover       func(x, y float64)
	OnHoverEnd    func()
	OnMarkerClick func()
}

// NewObject creates a plain primitive with the given name and hit volume.
func NewObject(name string, volume HitVolume) *Object {
	return &Object{
		ID:      nextObjectID(),
		Name:    name,
		Kind:    ObjectPlain,
		Volume:  volume,
		Visible: true,
	}
}

// NewMarker creates an interactive marker primitive. Markers show a pointer
// cursor on hover and consume clicks through their OnMarkerClick callback.
func NewMarker(name string, volume HitVolume) *Object {
	o := NewObject(name, volume)
	o.Kind = ObjectMarker
	return o
}

// AddChild appends child to this object's children, reparenting if needed.
func (o *Object) AddChild(child *Object) {
	if child == nil || child == o {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = o
	o.children = append(o.children, child)
}

// RemoveChild detaches child from this object. No-op if child is not ours.
func (o *Object) RemoveChild(child *Object) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Children returns the child slice. The returned slice MUST NOT be mutated.
func (o *Object) Children() []*Object {
	return o.children
}

// WorldPosition resolves the local position through the parent chain.
func (o *Object) WorldPosition() Vec3 {
	pos := o.Position
	for p := o.Parent; p != nil; p = p.Parent {
		pos = pos.Add(p.Position)
	}
	return pos
}

// SetChildrenVisible toggles visibility of every descendant. The object
// itself is left unchanged so a hidden panorama keeps its own state.
func (o *Object) SetChildrenVisible(visible bool) {
	for _, c := range o.children {
		c.Visible = visible
		c.SetChildrenVisible(visible)
	}
}

// --- Entity ---

// Entity is the logical interactive handle a user perceives. It may be backed
// by multiple primitives; the entity resolver collapses them to this single
// target. Lifetime is owned by the embedding application; the viewer only
// holds transient hover/press references that are cleared on target change.
type Entity struct {
	Name string

	// PassThrough marks the entity transparent to hit testing: intersections
	// with its primitives fall through to whatever is behind them.
	PassThrough bool

	// Entity-level callbacks (nil by default)
	OnHoverEnter func(HoverContext)
	OnHoverLeave func(HoverContext)
	OnPressStart func(PressContext)
	OnPressMove  func(PressContext)
	OnPressStop  func(PressContext)
	OnClick      func(ClickContext)
}

// NewEntity creates a logical entity with the given name.
func NewEntity(name string) *Entity {
	return &Entity{Name: name}
}
