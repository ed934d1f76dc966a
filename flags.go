package main

import "flag"

// Command-line flags supplying the board, worker count, pacing and the
// optional front-end features.
var (
	// sizeFlag is the number of cells on a side.
	sizeFlag = flag.Int("n", defaultBoardSize, "number of cells on a side")

	// threadsFlag is the worker count used by each run.
	threadsFlag = flag.Int("t", 1, "number of worker threads")

	// spinFlag is the busy-wait per cell; -1 derives it from the board size.
	spinFlag = flag.Int("s", -1, "spin iterations per cell (-1 picks about half a second per generation)")

	// headlessFlag runs without a window and prints a timestamp every tenth generation.
	headlessFlag = flag.Bool("headless", false, "run without a window, printing a timestamp every 10 generations")

	// gliderFlag seeds a glider in the upper left corner.
	gliderFlag = flag.Bool("glider", false, "create an initial glider")

	// configFlag names a config file whose t, s and shape lines override the flags.
	configFlag = flag.String("config", "", "configuration file with t:, s: and shape: lines")

	// saveFlag is where "Get Configuration" writes the board.
	saveFlag = flag.String("save", defaultConfigOutput, "output file for the Get Configuration command")

	// generationsFlag stops a headless run after this many generations.
	generationsFlag = flag.Int("generations", 0, "stop a headless run after this many generations (0 runs until interrupted)")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile of the whole run to this file")

	// enableAudioFlag plays a tone that follows the live cell density.
	enableAudioFlag = flag.Bool("enable-audio", false, "play a tone whose volume follows the live cell density")

	// debugFlag enables the FPS and worker overlay.
	debugFlag = flag.Bool("debug", false, "show FPS, generation and worker overlay")
)
