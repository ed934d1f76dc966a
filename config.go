package main

import "time"

// Window, control and audio constants.
const (
	defaultBoardSize    = 100
	boardPixels         = 800
	buttonBarHeight     = 36
	buttonGap           = 6
	statusHeight        = 18
	minDelay            = 0
	delayStepFactor     = 2
	maxThreads          = 256
	defaultConfigOutput = "output_config.txt"
	throughputEvery     = 10
	audioSampleRate     = 48000
	audioToneHz         = 220.0
	audioBufferLatency  = 80 * time.Millisecond
	pcm16MaxValue       = 32767
)
