package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wenyi616/GameofLife/life"
)

// button is one run-control command, reachable by click or key.
type button struct {
	label  string
	key    ebiten.Key
	action func(g *Game) error

	x, y, w, h int
}

func defaultButtons() []button {
	return []button{
		{label: "Run", key: ebiten.KeyR, action: (*Game).run},
		{label: "Pause", key: ebiten.KeyP, action: (*Game).pause},
		{label: "Step", key: ebiten.KeyN, action: (*Game).step},
		{label: "Stop", key: ebiten.KeyS, action: (*Game).stop},
		{label: "Clear", key: ebiten.KeyC, action: (*Game).clear},
		{label: "Get Configuration", key: ebiten.KeyG, action: (*Game).saveConfiguration},
		{label: "Quit", key: ebiten.KeyQ, action: (*Game).quit},
	}
}

// layoutButtons places the buttons left to right in the bar under the board.
func layoutButtons(buttons []button) []button {
	x := buttonGap
	y := boardPixels + statusHeight
	for i := range buttons {
		w := len(buttons[i].label)*7 + 2*buttonGap + 8
		buttons[i].x = x
		buttons[i].y = y
		buttons[i].w = w
		buttons[i].h = buttonBarHeight - buttonGap
		x += w + buttonGap
	}
	return buttons
}

func (b button) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// handleControls processes button clicks, shortcut keys and board edits.
// Only ebiten.Termination is returned to end the game loop.
func (g *Game) handleControls() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return g.quit()
	}
	for _, b := range g.buttons {
		if inpututil.IsKeyJustPressed(b.key) {
			return g.press(b)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		for _, b := range g.buttons {
			if b.contains(x, y) {
				return g.press(b)
			}
		}
		g.toggleAt(x, y)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustThreads(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustThreads(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.adjustDelay(delayStepFactor)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.adjustDelay(-delayStepFactor)
	}
	return nil
}

func (g *Game) press(b button) error {
	err := b.action(g)
	if errors.Is(err, ebiten.Termination) {
		return err
	}
	if err != nil {
		g.setStatus(err.Error())
	}
	return nil
}

func (g *Game) run() error { return g.ctrl.Run() }

func (g *Game) pause() error {
	g.ctrl.Pause()
	return nil
}

func (g *Game) step() error { return g.ctrl.Step() }

func (g *Game) stop() error {
	g.ctrl.Stop()
	return nil
}

func (g *Game) clear() error {
	g.ctrl.Clear()
	return nil
}

func (g *Game) quit() error {
	g.ctrl.Stop()
	return ebiten.Termination
}

// saveConfiguration writes the board to the -save file while paused or
// stopped.
func (g *Game) saveConfiguration() error {
	cfg, err := g.ctrl.Configuration()
	if errors.Is(err, life.ErrRunning) {
		return errors.New("pause or stop before saving the configuration")
	}
	if err != nil {
		return err
	}
	if err := life.SaveConfigFile(g.savePath, cfg); err != nil {
		return err
	}
	log.Printf("Saved configuration with %d live cells to %s", len(cfg.Shape), g.savePath)
	g.setStatus(fmt.Sprintf("saved %s", g.savePath))
	return nil
}

// toggleAt flips the cell under the cursor when the simulation is stopped.
func (g *Game) toggleAt(x, y int) {
	if x < 0 || x >= boardPixels || y < 0 || y >= boardPixels {
		return
	}
	row := y * g.n / boardPixels
	col := x * g.n / boardPixels
	if err := g.ctrl.ToggleCell(row, col); errors.Is(err, life.ErrNotStopped) {
		g.setStatus("stop the simulation to edit cells")
	}
}

// adjustThreads changes the worker count used by the next run.
func (g *Game) adjustThreads(delta int) {
	threads := clampInt(g.ctrl.Threads()+delta, 1, maxThreads)
	if err := g.ctrl.SetThreads(threads); err != nil {
		g.setStatus(err.Error())
		return
	}
	g.setStatus(fmt.Sprintf("%d threads from the next run", threads))
}

// adjustDelay doubles or halves the per-cell spin.
func (g *Game) adjustDelay(factor int) {
	delay := g.ctrl.Delay()
	switch {
	case factor > 0 && delay == 0:
		delay = 1
	case factor > 0:
		delay *= factor
	default:
		delay /= -factor
	}
	g.ctrl.SetDelay(clampInt(delay, minDelay, life.DefaultDelay(1)))
}

// clampInt constrains v to lie within the inclusive [min, max] range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
