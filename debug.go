package panolens

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// SetDebug toggles the on-screen debug overlay: frame rates, the current
// panorama, the active control scheme, and the live interaction targets.
func (v *Viewer) SetDebug(enabled bool) {
	v.debug = enabled
}

// drawDebug prints the overlay in the top-left corner. Called from Draw.
func (v *Viewer) drawDebug(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, v.debugInfo())
}

// debugInfo renders the overlay text from the viewer's current state.
func (v *Viewer) debugInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f TPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())

	if v.panorama != nil {
		fmt.Fprintf(&b, "panorama: %s (alpha %.2f)\n", v.panorama.Name, v.panorama.Alpha())
	} else {
		b.WriteString("panorama: none\n")
	}

	fmt.Fprintf(&b, "control: %s\n", v.activeControl().Kind())

	fmt.Fprintf(&b, "hover: %s\n", debugEntityName(v.session.hoverEntity))
	if v.session.down {
		fmt.Fprintf(&b, "press: %s\n", debugEntityName(v.session.pressEntity))
	}
	return b.String()
}

func debugEntityName(e *Entity) string {
	if e == nil {
		return "-"
	}
	return e.Name
}
