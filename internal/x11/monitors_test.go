package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestApplyDockStruts_TopPanelOnlyAffectsCoveredMonitor(t *testing.T) {
	root := rootSize{width: 3840, height: 1080}
	panel := &ewmh.WmStrutPartial{Top: 32, TopStartX: 0, TopEndX: 1919}

	left := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := Monitor{X: 1920, Y: 0, Width: 1920, Height: 1080}

	if !applyDockStruts(&left, []*ewmh.WmStrutPartial{panel}, root) {
		t.Fatalf("expected strut to apply to left monitor")
	}
	if left.Y != 32 || left.Height != 1048 {
		t.Fatalf("left monitor = %+v, want y=32 height=1048", left)
	}

	if applyDockStruts(&right, []*ewmh.WmStrutPartial{panel}, root) {
		t.Fatalf("expected strut not to apply to right monitor")
	}
	if right.Y != 0 || right.Height != 1080 {
		t.Fatalf("right monitor changed: %+v", right)
	}
}

func TestApplyDockStruts_LeftDockAndBottomPanel(t *testing.T) {
	root := rootSize{width: 1920, height: 1080}
	struts := []*ewmh.WmStrutPartial{
		{Left: 64, LeftStartY: 0, LeftEndY: 1079},
		{Bottom: 40, BottomStartX: 0, BottomEndX: 1919},
	}

	mon := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	if !applyDockStruts(&mon, struts, root) {
		t.Fatalf("expected struts to apply")
	}
	want := Monitor{X: 64, Y: 0, Width: 1856, Height: 1040}
	if mon != want {
		t.Fatalf("monitor = %+v, want %+v", mon, want)
	}
}

func TestApplyDockStruts_UnknownRootSize(t *testing.T) {
	mon := Monitor{Width: 100, Height: 100}
	if applyDockStruts(&mon, []*ewmh.WmStrutPartial{{Top: 10, TopEndX: 99}}, rootSize{}) {
		t.Fatalf("expected no adjustment without root geometry")
	}
}

func TestMonitorAt(t *testing.T) {
	monitors := []Monitor{
		{X: 0, Y: 0, Width: 1000, Height: 800},
		{X: 1000, Y: 0, Width: 800, Height: 600},
	}
	tests := []struct {
		x, y int
		want int
	}{
		{10, 10, 0},
		{999, 799, 0},
		{1000, 0, 1},
		{1500, 700, -1},
		{-1, 0, -1},
	}
	for _, tt := range tests {
		if got := monitorAt(monitors, tt.x, tt.y); got != tt.want {
			t.Errorf("monitorAt(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}
