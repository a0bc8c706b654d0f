package window

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFWDragHook is the production DragHook: it repositions a torn-off
// window every frame via glfw.Window.SetPos, and detects merges by
// checking the cursor against a caller-supplied list of candidate target
// windows' tab-bar rectangles (GLFW itself has no native "is point inside
// another window" query, so the window package tracks the rectangles
// itself via RegisterMergeZone).
type GLFWDragHook struct {
	Torn *glfw.Window

	zones []mergeZone
}

type mergeZone struct {
	windowID   int
	x, y, w, h float64
	leftMargin float64
	tabWidths  []float64
}

// NewGLFWDragHook builds a hook that drives torn's position.
func NewGLFWDragHook(torn *glfw.Window) *GLFWDragHook {
	return &GLFWDragHook{Torn: torn}
}

// RegisterMergeZone records another window's tab-bar rectangle, in screen
// coordinates, as a drop target for this drag's lifetime, along with that
// bar's left margin and its tabs' real pixel widths (used to compute a drop
// index on DetectMerge). Call once per visible window at drag start;
// windows that move, resize, or change tab count during the drag should
// re-register before the next DetectMerge call.
func (h *GLFWDragHook) RegisterMergeZone(windowID int, x, y, w, hgt, leftMargin float64, tabWidths []float64) {
	z := mergeZone{windowID, x, y, w, hgt, leftMargin, append([]float64(nil), tabWidths...)}
	for i, existing := range h.zones {
		if existing.windowID == windowID {
			h.zones[i] = z
			return
		}
	}
	h.zones = append(h.zones, z)
}

// ClearMergeZones drops all registered zones, e.g. at the end of a drag.
func (h *GLFWDragHook) ClearMergeZones() { h.zones = nil }

// MoveWindowTo implements DragHook: it sets the torn-off window's position
// so its origin sits exactly at cursor-grabOffset every frame, which
// defeats GLFW/the OS's own drag-follow behavior (which would otherwise
// snap the cursor to the window's center or titlebar).
func (h *GLFWDragHook) MoveWindowTo(cursor, grabOffset Point) {
	if h.Torn == nil {
		return
	}
	x := int(cursor.X - grabOffset.X)
	y := int(cursor.Y - grabOffset.Y)
	h.Torn.SetPos(x, y)
}

// DetectMerge implements DragHook by testing cursor against every
// registered zone.
func (h *GLFWDragHook) DetectMerge(cursor Point) (MergeResult, bool) {
	for _, z := range h.zones {
		if cursor.X >= z.x && cursor.X < z.x+z.w && cursor.Y >= z.y && cursor.Y < z.y+z.h {
			localX := cursor.X - z.x
			dropIndex := dropIndexFor(localX, z.leftMargin, z.tabWidths)
			return MergeResult{TargetWindowID: z.windowID, DropIndex: dropIndex}, true
		}
	}
	return MergeResult{}, false
}

// dropIndexFor computes the drop index for a cursor at localX (relative to
// the target tab bar's left edge) given the bar's left margin and each
// tab's real width. Walking widths left to right, a cursor over tab i
// yields i in the tab's left half and i+1 in its right half, so unevenly
// sized tabs are handled exactly and not just a uniform average. The result
// is clamped to [0, len(widths)].
func dropIndexFor(localX, leftMargin float64, widths []float64) int {
	if len(widths) == 0 {
		return 0
	}
	x := localX - leftMargin
	offset := 0.0
	for i, w := range widths {
		if x < offset+w {
			if math.Round((x-offset)/w) >= 1 {
				return i + 1
			}
			return i
		}
		offset += w
	}
	return len(widths)
}
