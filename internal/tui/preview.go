package tui

import (
	"fmt"
	"strconv"

	"github.com/1broseidon/slotcycle/internal/platform"
	"github.com/1broseidon/slotcycle/internal/slots"
)

// fallbackMonitor is previewed when the daemon cannot report monitors.
var fallbackMonitor = platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

// summarizeSlots describes the slot sizes of the first monitor.
func summarizeSlots(monitors []platform.Rect, divisions, inset int) string {
	if len(monitors) == 0 {
		return "no monitors"
	}
	total := slots.Total(divisions, len(monitors))
	r := slots.SlotRect(0, divisions, monitors, inset)
	return fmt.Sprintf("%d slots • %d×%d px on monitor 0", total, r.Width, r.Height)
}

// renderASCIIPreview draws every slot scaled onto a width×height canvas.
func renderASCIIPreview(monitors []platform.Rect, divisions, inset, width, height int) []string {
	if len(monitors) == 0 || width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	minX, minY := monitors[0].X, monitors[0].Y
	maxX, maxY := minX+monitors[0].Width, minY+monitors[0].Height
	for _, m := range monitors[1:] {
		minX = min(minX, m.X)
		minY = min(minY, m.Y)
		maxX = max(maxX, m.X+m.Width)
		maxY = max(maxY, m.Y+m.Height)
	}
	spanW, spanH := max(maxX-minX, 1), max(maxY-minY, 1)

	scaleX := func(x int) int { return (x - minX) * (width - 1) / spanW }
	scaleY := func(y int) int { return (y - minY) * (height - 1) / spanH }

	total := slots.Total(divisions, len(monitors))
	for pos := 0; pos < total; pos++ {
		r := slots.SlotRect(pos, divisions, monitors, inset)
		x0, x1 := scaleX(r.X), min(scaleX(r.X+r.Width), width-1)
		y0, y1 := scaleY(r.Y), scaleY(r.Y+r.Height)
		drawBox(canvas, x0, y0, x1, y1)

		label := strconv.Itoa(pos)
		if x1-x0-1 >= len(label) && y1-y0 >= 2 {
			row := (y0 + y1) / 2
			col := (x0+x1)/2 - len(label)/2
			for i, ch := range label {
				canvas[row][col+i] = ch
			}
		}
	}

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawBox(canvas [][]rune, x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		canvas[y0][x] = '-'
		canvas[y1][x] = '-'
	}
	for y := y0; y <= y1; y++ {
		canvas[y][x0] = '|'
		canvas[y][x1] = '|'
	}
	canvas[y0][x0] = '+'
	canvas[y0][x1] = '+'
	canvas[y1][x0] = '+'
	canvas[y1][x1] = '+'
}

func emptyCanvas(width, height int) []string {
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = fmt.Sprintf("%*s", max(width, 0), "")
	}
	return lines
}
