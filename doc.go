// Package panolens is the interaction core of a panoramic-scene viewer for
// [Ebitengine].
//
// Panolens converts raw pointer and touch input into object-level events
// (hover, press, click) against a 3D panorama, and coordinates which
// camera-control scheme — orbit, device orientation, or VR — is active at any
// moment, synchronized with the currently displayed scene.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and frame
// loop for you:
//
//	viewer := panolens.NewViewer(panolens.DefaultConfig())
//	pano := panolens.NewPanorama("lobby", panolens.PanoramaImage)
//	viewer.Add(pano)
//	panolens.Run(viewer, panolens.RunConfig{Title: "Tour", Width: 1280, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call
// [Viewer.Update], [Viewer.Draw], and [Viewer.Layout] directly.
//
// # Scenes and targets
//
// Every panorama is a subtree of [Object] primitives rooted at
// [Panorama.Root]. Primitives that share one logical control are grouped
// under an [Entity]; the viewer collapses overlapping intersections to a
// single entity target, honoring pass-through transparency, and emits
// hover/press/click callbacks on both the entity and the literal primitive.
// Markers ([NewMarker]) additionally get a pointer cursor and positional
// hover callbacks.
//
// Rendering, stereo projection, and the on-screen control bar live behind the
// [Renderer], [VRDevice], and [Widget] collaborator interfaces.
//
// The viewer is single-threaded and cooperative: one frame tick advances
// animation timers, per-frame callbacks, the active control, and input, in
// that order.
//
// [Ebitengine]: https://ebitengine.org
package panolens
