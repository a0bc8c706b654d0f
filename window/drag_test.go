package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingStaysPendingBelowThreshold(t *testing.T) {
	d := Begin(1, 0, Point{0, 0}, Point{0, 0})
	phase := d.Update(Point{5, 0}, true, false)
	assert.Equal(t, Pending, phase)
}

func TestPendingTransitionsToDraggingInBar(t *testing.T) {
	d := Begin(1, 0, Point{0, 0}, Point{0, 0})
	phase := d.Update(Point{15, 0}, true, false)
	assert.Equal(t, DraggingInBar, phase)
}

func TestSingleTabWindowSkipsDraggingInBar(t *testing.T) {
	d := Begin(1, 0, Point{0, 0}, Point{0, 0})
	phase := d.Update(Point{15, 0}, true, true)
	assert.Equal(t, TornOff, phase)
}

func TestDraggingInBarTearsOffPastThreshold(t *testing.T) {
	d := Begin(1, 0, Point{0, 0}, Point{0, 0})
	d.Update(Point{15, 0}, true, false)
	phase := d.Update(Point{0, 45}, false, false)
	assert.Equal(t, TornOff, phase)
}

func TestDraggingInBarStaysInBarBelowTearOffThreshold(t *testing.T) {
	d := Begin(1, 0, Point{0, 0}, Point{0, 0})
	d.Update(Point{15, 0}, true, false)
	phase := d.Update(Point{0, 20}, false, false)
	assert.Equal(t, DraggingInBar, phase)
}

func TestMergeArmsPostMergeMagnetism(t *testing.T) {
	d := Begin(1, 0, Point{0, 0}, Point{0, 0})
	d.Update(Point{15, 0}, true, false)
	d.Update(Point{0, 45}, false, false) // torn off
	d.Merge(2, 3, Point{100, 100})
	assert.Equal(t, DraggingInBar, d.Phase)
	assert.Equal(t, 2, d.SourceWindowID)
	assert.Equal(t, 3, d.TabIndex)

	// Small movement near the merge point shouldn't re-tear even though
	// it's outside the bar.
	phase := d.Update(Point{105, 100}, false, false)
	assert.Equal(t, DraggingInBar, phase)
}

func TestPostMergeMagnetismReleasesAfterSufficientMovement(t *testing.T) {
	d := Begin(1, 0, Point{0, 0}, Point{0, 0})
	d.Update(Point{15, 0}, true, false)
	d.Update(Point{0, 45}, false, false)
	d.Merge(2, 3, Point{0, 0})

	phase := d.Update(Point{0, 50}, false, false)
	assert.Equal(t, TornOff, phase)
}

func TestReleaseResetsToIdleAndReturnsFinalPhase(t *testing.T) {
	d := Begin(1, 0, Point{0, 0}, Point{0, 0})
	d.Update(Point{15, 0}, true, false)
	final := d.Release()
	assert.Equal(t, DraggingInBar, final)
	assert.Equal(t, Idle, d.Phase)
}

func TestDetectMergeWorkedExample(t *testing.T) {
	h := NewGLFWDragHook(nil)
	h.RegisterMergeZone(7, 0, 0, 300, 34, 16, []float64{100, 100, 100})

	result, ok := h.DetectMerge(Point{X: 170, Y: 10})
	assert.True(t, ok)
	assert.Equal(t, 7, result.TargetWindowID)
	assert.Equal(t, 2, result.DropIndex)
}

func TestDetectMergeOutsideZoneMisses(t *testing.T) {
	h := NewGLFWDragHook(nil)
	h.RegisterMergeZone(7, 0, 0, 300, 34, 16, []float64{100, 100, 100})

	_, ok := h.DetectMerge(Point{X: 170, Y: 100})
	assert.False(t, ok)
}

func TestDetectMergeUnevenTabWidths(t *testing.T) {
	h := NewGLFWDragHook(nil)
	h.RegisterMergeZone(7, 0, 0, 300, 34, 16, []float64{60, 140, 80})

	// Well inside the second, wider tab.
	result, ok := h.DetectMerge(Point{X: 100, Y: 10})
	assert.True(t, ok)
	assert.Equal(t, 1, result.DropIndex)
}

func TestLockWidthsFreezesAndUnlockClears(t *testing.T) {
	d := Begin(1, 0, Point{0, 0}, Point{0, 0})
	d.LockWidths([]float64{10, 20, 30})
	widths, locked := d.WidthsLocked()
	assert.True(t, locked)
	assert.Equal(t, []float64{10, 20, 30}, widths)

	d.UnlockWidths()
	_, locked = d.WidthsLocked()
	assert.False(t, locked)
}
