package snake

import "ssdui/geom"

// Phase is the screen the game is on.
type Phase uint8

const (
	Ready Phase = iota
	Running
	Failed
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Directions in grid cells.
var (
	Up    = geom.Pt(0, -1)
	Down  = geom.Pt(0, 1)
	Left  = geom.Pt(-1, 0)
	Right = geom.Pt(1, 0)
)

// StartLength is the length of a new snake.
const StartLength = 3

// State is the whole game, kept in the context store. Body is never
// modified in place, so a copy loaded for rendering stays valid while a
// listener moves the snake.
type State struct {
	Phase Phase

	// Grid size in cells.
	Cols, Rows int

	Body  []geom.Point // head first
	Dir   geom.Point
	Next  geom.Point // applied on the next step
	Food  geom.Point
	Score int
	Best  int

	Seed uint32
}

// NewState returns a Ready game on a cols x rows grid.
func NewState(cols, rows int, seed uint32) State {
	if seed == 0 {
		seed = 0x9E3779B9
	}
	return State{Cols: cols, Rows: rows, Seed: seed}
}

// rand is xorshift32.
func (s *State) rand() uint32 {
	x := s.Seed
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.Seed = x
	return x
}

// Start lays a fresh snake heading right from the middle of the grid.
func (s *State) Start() {
	head := geom.Pt(s.Cols/2, s.Rows/2)
	body := make([]geom.Point, StartLength)
	for i := range body {
		body[i] = head.Sub(Right.Mul(i))
	}
	s.Body = body
	s.Dir = Right
	s.Next = Right
	s.Score = 0
	s.Phase = Running
	s.placeFood()
}

// Steer queues a turn. Reversing onto the neck is ignored.
func (s *State) Steer(d geom.Point) {
	if s.Phase != Running {
		return
	}
	if d.Add(s.Dir) == (geom.Point{}) && len(s.Body) > 1 {
		return
	}
	s.Next = d
}

// Step moves the snake one cell, wrapping at the edges. It reports whether
// food was eaten and whether the head ran into the body.
func (s *State) Step() (ate, died bool) {
	if s.Phase != Running || len(s.Body) == 0 {
		return false, false
	}
	s.Dir = s.Next
	head := s.wrap(s.Body[0].Add(s.Dir))
	ate = head == s.Food

	n := len(s.Body)
	if !ate {
		n-- // the tail moves out of the way
	}
	for _, p := range s.Body[:n] {
		if p == head {
			s.Phase = Failed
			if s.Score > s.Best {
				s.Best = s.Score
			}
			return false, true
		}
	}

	body := make([]geom.Point, 0, n+1)
	body = append(body, head)
	body = append(body, s.Body[:n]...)
	s.Body = body
	if ate {
		s.Score++
		s.placeFood()
	}
	return ate, false
}

func (s *State) wrap(p geom.Point) geom.Point {
	p.X = (p.X%s.Cols + s.Cols) % s.Cols
	p.Y = (p.Y%s.Rows + s.Rows) % s.Rows
	return p
}

// Occupies reports whether p is part of the snake.
func (s *State) Occupies(p geom.Point) bool {
	for _, b := range s.Body {
		if b == p {
			return true
		}
	}
	return false
}

func (s *State) placeFood() {
	if len(s.Body) >= s.Cols*s.Rows {
		s.Food = geom.Pt(-1, -1)
		return
	}
	for {
		p := geom.Pt(int(s.rand()%uint32(s.Cols)), int(s.rand()%uint32(s.Rows)))
		if !s.Occupies(p) {
			s.Food = p
			return
		}
	}
}
