package loop

import "github.com/tomz197/breakout/internal/game"

const (
	titleText    = "B R E A K O U T"
	startText    = "Press SPACE to start"
	pausedText   = "PAUSED"
	resumeText   = "Press SPACE to resume"
	controlsText = "Controls: A/D or Arrows to move, P to pause, Q to quit"
)

// textLine is an overlay line centred on a 1-based canvas row.
type textLine struct {
	row  int
	text string
}

// overlay returns the text drawn over the canvas for a phase. Rows are
// clamped to the canvas.
func overlay(phase game.Phase, termHeight int) []textLine {
	centerY := termHeight / 2

	var lines []textLine
	switch phase {
	case game.PhaseInit:
		lines = []textLine{
			{centerY - 2, titleText},
			{centerY + 1, startText},
			{centerY + 4, controlsText},
		}
	case game.PhasePaused:
		lines = []textLine{
			{centerY, pausedText},
			{centerY + 2, resumeText},
		}
	}

	for i := range lines {
		lines[i].row = max(1, min(lines[i].row, termHeight))
	}
	return lines
}
