package life

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config holds the normalized inputs the core is built from.
type Config struct {
	Size    int
	Threads int
	Delay   int
	Shape   []Point
	Glider  bool
}

// DefaultDelay returns the spin iterations per cell that make one
// generation of an n×n board take roughly half a second.
func DefaultDelay(n int) int {
	if n < 1 {
		return 0
	}
	return 500000000 / n / n
}

// Validate rejects non-positive counts, a negative delay and shape points
// outside the board.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("invalid board size: %d", c.Size)
	}
	if c.Threads < 1 {
		return fmt.Errorf("invalid number of threads: %d", c.Threads)
	}
	if c.Delay < 0 {
		return fmt.Errorf("invalid number of spin iterations: %d", c.Delay)
	}
	for _, p := range c.Shape {
		if p.Row < 0 || p.Row >= c.Size || p.Col < 0 || p.Col >= c.Size {
			return fmt.Errorf("shape point (%d,%d) outside %dx%d board", p.Col, p.Row, c.Size, c.Size)
		}
	}
	return nil
}

// FileConfig is the content of a configuration file. Zero Threads or a
// negative Spin mean the file did not set them.
type FileConfig struct {
	Threads int
	Spin    int
	Shape   []Point
}

// Apply overrides the fields of c that the file sets.
func (f FileConfig) Apply(c Config) Config {
	if f.Threads > 0 {
		c.Threads = f.Threads
	}
	if f.Spin >= 0 {
		c.Delay = f.Spin
	}
	if f.Shape != nil {
		c.Shape = f.Shape
	}
	return c
}

// ParseConfig reads "key: value" lines. Recognized keys are t (threads),
// s (spin iterations) and shape, a list of (x,y) column/row pairs separated
// by semicolons. Whitespace is ignored and unknown lines are skipped.
func ParseConfig(r io.Reader) (FileConfig, error) {
	cfg := FileConfig{Spin: -1}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.Join(strings.Fields(scanner.Text()), "")
		switch {
		case strings.HasPrefix(line, "t:"):
			threads, err := strconv.Atoi(strings.TrimPrefix(line, "t:"))
			if err != nil || threads < 1 {
				return FileConfig{}, fmt.Errorf("line %d: threads must be a positive integer: %q", lineNo, line)
			}
			cfg.Threads = threads
		case strings.HasPrefix(line, "s:"):
			spin, err := strconv.Atoi(strings.TrimPrefix(line, "s:"))
			if err != nil || spin < 0 {
				return FileConfig{}, fmt.Errorf("line %d: spin must be a non-negative integer: %q", lineNo, line)
			}
			cfg.Spin = spin
		case strings.HasPrefix(line, "shape:"):
			shape, err := parseShape(strings.TrimPrefix(line, "shape:"))
			if err != nil {
				return FileConfig{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			cfg.Shape = shape
		}
	}
	if err := scanner.Err(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

var errPointFormat = errors.New("points must look like (x,y)")

func parseShape(s string) ([]Point, error) {
	shape := []Point{}
	if s == "" {
		return shape, nil
	}
	for _, coord := range strings.Split(s, ";") {
		if coord == "" {
			continue
		}
		coord = strings.TrimSuffix(strings.TrimPrefix(coord, "("), ")")
		x, y, ok := strings.Cut(coord, ",")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errPointFormat, coord)
		}
		col, err := strconv.Atoi(x)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errPointFormat, coord)
		}
		row, err := strconv.Atoi(y)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errPointFormat, coord)
		}
		shape = append(shape, Point{Row: row, Col: col})
	}
	return shape, nil
}

// WriteConfig writes cfg in the format ParseConfig reads.
func WriteConfig(w io.Writer, cfg FileConfig) error {
	var b strings.Builder
	fmt.Fprintf(&b, "t: %d\n", cfg.Threads)
	fmt.Fprintf(&b, "s: %d\n", cfg.Spin)
	b.WriteString("shape: ")
	for i, p := range cfg.Shape {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "(%d,%d)", p.Col, p.Row)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// LoadConfigFile parses the configuration file at path.
func LoadConfigFile(path string) (FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileConfig{}, err
	}
	defer f.Close()
	cfg, err := ParseConfig(f)
	if err != nil {
		return FileConfig{}, fmt.Errorf("parsing %q: %w", path, err)
	}
	return cfg, nil
}

// SaveConfigFile writes cfg to path, replacing any existing file.
func SaveConfigFile(path string, cfg FileConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteConfig(f, cfg); err != nil {
		f.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return f.Close()
}
