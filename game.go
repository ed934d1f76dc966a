package main

import (
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/wenyi616/GameofLife/life"
)

// Game is the windowed front end: it forwards button and key presses to
// the Controller and renders the latest snapshot.
type Game struct {
	ctrl     *life.Controller
	n        int
	savePath string

	cells  *ebiten.Image
	pixels []byte
	swatch *ebiten.Image

	buttons []button

	generation int
	population int

	status      string
	statusUntil time.Time

	audioCtx    *audio.Context
	audioStream *densityAudioStream
	audioPlayer *audio.Player
}

var (
	liveColor       = color.RGBA{0, 0, 255, 255}
	deadColor       = color.RGBA{255, 255, 255, 255}
	buttonColor     = color.RGBA{220, 220, 225, 255}
	buttonEdgeColor = color.RGBA{120, 120, 130, 255}
	bandColor       = color.RGBA{255, 120, 0, 160}
)

// newGame builds the Controller for cfg and the window resources around it.
func newGame(cfg life.Config, savePath string) (*Game, error) {
	ctrl, err := life.NewController(cfg, nil)
	if err != nil {
		return nil, err
	}
	g := &Game{
		ctrl:     ctrl,
		n:        cfg.Size,
		savePath: savePath,
		cells:    ebiten.NewImage(cfg.Size, cfg.Size),
		pixels:   make([]byte, cfg.Size*cfg.Size*4),
		swatch:   ebiten.NewImage(1, 1),
	}
	g.swatch.Fill(color.White)
	g.buttons = layoutButtons(defaultButtons())

	if *enableAudioFlag {
		ctx := audio.NewContext(audioSampleRate)
		g.audioCtx = ctx
		g.audioStream = newDensityAudioStream()
		if player, err := ctx.NewPlayer(g.audioStream); err != nil {
			log.Printf("Audio player creation failed: %v", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.SetBufferSize(audioBufferLatency)
			g.audioPlayer.Play()
		}
	}

	log.Printf("Board %dx%d, %d workers, %d spin iterations per cell", cfg.Size, cfg.Size, cfg.Threads, cfg.Delay)
	return g, nil
}

// Update applies input and pulls the latest generation from the Controller.
func (g *Game) Update() error {
	if err := g.handleControls(); err != nil {
		return err
	}

	points, gen := g.ctrl.Snapshot()
	g.generation = gen
	g.population = len(points)
	g.paintCells(points)

	if g.audioStream != nil {
		g.audioStream.SetLevel(4 * float32(g.population) / float32(g.n*g.n))
	}
	return nil
}

// paintCells fills the RGBA buffer for the cell image.
func (g *Game) paintCells(points []life.Point) {
	for i := 0; i < len(g.pixels); i += 4 {
		g.pixels[i] = deadColor.R
		g.pixels[i+1] = deadColor.G
		g.pixels[i+2] = deadColor.B
		g.pixels[i+3] = deadColor.A
	}
	for _, p := range points {
		base := (p.Row*g.n + p.Col) * 4
		g.pixels[base] = liveColor.R
		g.pixels[base+1] = liveColor.G
		g.pixels[base+2] = liveColor.B
		g.pixels[base+3] = liveColor.A
	}
}

// setStatus shows msg under the board for a few seconds.
func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(3 * time.Second)
}

// close stops any running workers and releases the audio player.
func (g *Game) close() {
	g.ctrl.Stop()
	if g.audioPlayer != nil {
		_ = g.audioPlayer.Close()
	}
}
