package panolens

// ResolveTarget reduces an ordered intersection list to at most one logical
// target. Hits are walked nearest to farthest:
//
//   - a pass-through object never becomes the target; the walk continues
//     behind it,
//   - an object backed by a pass-through entity is likewise skipped (entity
//     transparency wins over the object's own flag),
//   - an object backed by an opaque entity selects that entity,
//   - an opaque object with no entity mapping is its own target.
//
// Returns (nil, nil) when the list is empty or everything is transparent.
// The returned object is always the literal intersected primitive, kept
// alongside the entity so callers can distinguish "same surface" from
// "same logical control".
func ResolveTarget(hits []Intersection) (*Entity, *Object) {
	for _, hit := range hits {
		o := hit.Object
		if o == nil || o.PassThrough {
			continue
		}
		if o.Entity != nil {
			if o.Entity.PassThrough {
				continue
			}
			return o.Entity, o
		}
		return nil, o
	}
	return nil, nil
}
