package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Draw renders the board, the status line, the buttons and the optional
// debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(deadColor)

	g.cells.WritePixels(g.pixels)
	scale := float64(boardPixels) / float64(g.n)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.cells, op)

	g.drawStatus(screen)
	for _, b := range g.buttons {
		g.drawButton(screen, b)
	}

	if *debugFlag {
		g.drawBands(screen, scale)
		fps := ebiten.ActualFPS()
		tps := ebiten.ActualTPS()
		debugMsg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nGeneration: %d\nWorkers: %d active, %d next run\nDelay: %d spins/cell",
			fps, tps, g.generation, g.ctrl.ActiveWorkers(), g.ctrl.Threads(), g.ctrl.Delay())
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) {
	return boardPixels, boardPixels + statusHeight + buttonBarHeight
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	msg := fmt.Sprintf("%s  gen %d  live %d  threads %d  spin %d",
		g.ctrl.State(), g.generation, g.population, g.ctrl.Threads(), g.ctrl.Delay())
	if g.status != "" && time.Now().Before(g.statusUntil) {
		msg = g.status
	}
	text.Draw(screen, msg, basicfont.Face7x13, buttonGap, boardPixels+statusHeight-4, color.Black)
}

func (g *Game) drawButton(screen *ebiten.Image, b button) {
	g.fillRect(screen, b.x, b.y, b.w, b.h, buttonEdgeColor)
	g.fillRect(screen, b.x+1, b.y+1, b.w-2, b.h-2, buttonColor)
	face := basicfont.Face7x13
	tx := b.x + (b.w-len(b.label)*face.Advance)/2
	ty := b.y + (b.h+face.Ascent-face.Descent)/2
	text.Draw(screen, b.label, face, tx, ty, color.Black)
}

// drawBands outlines the row band each worker of the current run owns.
func (g *Game) drawBands(screen *ebiten.Image, scale float64) {
	for _, r := range g.ctrl.Bands() {
		if r.Len() == 0 {
			continue
		}
		y := int(float64(r.Start) * scale)
		g.fillRect(screen, 0, y, boardPixels, 1, bandColor)
	}
}

// fillRect draws a solid rectangle by stretching the one-pixel swatch.
func (g *Game) fillRect(screen *ebiten.Image, x, y, w, h int, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(g.swatch, op)
}
