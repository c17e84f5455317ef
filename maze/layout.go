// Package maze reads grid layouts and exposes them as search problems and
// game states.
package maze

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pacai/game"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	wallCell    = '%'
	pacmanCell  = 'P'
	foodCell    = '.'
	capsuleCell = 'o'
	ghostCell   = 'G'
	emptyCell   = ' '
)

// Layout is a rectangular grid. Row 0 of the text is the top, so the cell
// at text row r has Y = Height-1-r.
type Layout struct {
	Name     string
	Width    int
	Height   int
	Start    game.Position
	Food     []game.Position
	Capsules []game.Position
	Ghosts   []game.Position
	walls    map[game.Position]bool
}

// layoutFile is the YAML form of a layout:
//
//	name: tinyMaze
//	grid: |
//	  %%%%
//	  %P.%
//	  %%%%
type layoutFile struct {
	Name string `yaml:"name"`
	Grid string `yaml:"grid"`
}

// Load reads a layout from a .yaml/.yml file or a plain text grid.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read layout %s", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	grid := string(data)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		var file layoutFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrapf(err, "failed to parse layout %s", path)
		}
		if file.Name != "" {
			name = file.Name
		}
		grid = file.Grid
	}

	layout, err := Parse(grid)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid layout %s", path)
	}
	layout.Name = name
	return layout, nil
}

// Parse reads a text grid. Every row must have the same width and exactly
// one cell must hold the start.
func Parse(grid string) (*Layout, error) {
	rows := strings.Split(strings.Trim(grid, "\n"), "\n")
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], "\r")
	}
	if len(rows) == 0 || rows[0] == "" {
		return nil, fmt.Errorf("empty layout")
	}

	l := &Layout{
		Width:  len(rows[0]),
		Height: len(rows),
		walls:  make(map[game.Position]bool),
	}
	starts := 0
	for r, row := range rows {
		if len(row) != l.Width {
			return nil, fmt.Errorf("row %d has width %d, expected %d", r+1, len(row), l.Width)
		}
		for x, cell := range row {
			p := game.Position{X: x, Y: l.Height - 1 - r}
			switch cell {
			case wallCell:
				l.walls[p] = true
			case pacmanCell:
				l.Start = p
				starts++
			case foodCell:
				l.Food = append(l.Food, p)
			case capsuleCell:
				l.Capsules = append(l.Capsules, p)
			case ghostCell:
				l.Ghosts = append(l.Ghosts, p)
			case emptyCell:
			default:
				return nil, fmt.Errorf("unknown cell %q at row %d column %d", cell, r+1, x+1)
			}
		}
	}
	if starts != 1 {
		return nil, fmt.Errorf("expected one start cell, found %d", starts)
	}
	return l, nil
}

// IsWall reports whether p is a wall or lies outside the grid.
func (l *Layout) IsWall(p game.Position) bool {
	if p.X < 0 || p.Y < 0 || p.X >= l.Width || p.Y >= l.Height {
		return true
	}
	return l.walls[p]
}

// Moves returns the directions that lead from p to an open cell, in
// North, South, East, West order.
func (l *Layout) Moves(p game.Position) []game.Action {
	moves := make([]game.Action, 0, len(game.Directions))
	for _, direction := range game.Directions {
		if !l.IsWall(p.Move(direction)) {
			moves = append(moves, direction)
		}
	}
	return moves
}

// Draw renders the walls of the layout and marks cells with the given runes.
func (l *Layout) Draw(marks map[game.Position]rune) string {
	var b strings.Builder
	for y := l.Height - 1; y >= 0; y-- {
		for x := 0; x < l.Width; x++ {
			p := game.Position{X: x, Y: y}
			switch mark, ok := marks[p]; {
			case ok:
				b.WriteRune(mark)
			case l.walls[p]:
				b.WriteRune(wallCell)
			default:
				b.WriteRune(emptyCell)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
