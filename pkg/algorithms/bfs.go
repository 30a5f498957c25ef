package algorithms

import "github.com/aretw0/stepwise/pkg/domain"

// Neighbour order: up, down, left, right.
var neighbours = []domain.Position{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

type bfsPhase int

const (
	bfsInit bfsPhase = iota
	bfsGuard
	bfsDequeue
	bfsMark
	bfsCheck
	bfsEnqueue
)

// BFS is a breadth-first search over the free cells of a grid. Visited cells
// are recorded in the grid itself as domain.CellVisited.
type BFS struct {
	machine
	start, goal domain.Position

	phase   bfsPhase
	queue   []domain.Position
	visited map[domain.Position]bool
	parent  map[domain.Position]domain.Position
	node    domain.Position
}

// NewBFS returns a breadth-first search from p.Start to p.Goal over data.Grid.
func NewBFS(data domain.Dataset, p domain.Params) *BFS {
	return &BFS{
		machine: newMachine(domain.GridBFS, BFSLines, data, p.Direction),
		start:   p.Start,
		goal:    p.Goal,
		visited: make(map[domain.Position]bool),
		parent:  make(map[domain.Position]domain.Position),
	}
}

// Step implements ports.Stepper.
func (s *BFS) Step() domain.Step {
	if s.done {
		return s.replay()
	}
	g := s.data.Grid

	for {
		switch s.phase {
		case bfsInit:
			if g == nil || !g.Passable(s.start) {
				return s.finish(domain.StepNotFound, 6, nil)
			}
			s.queue = append(s.queue, s.start)
			s.phase = bfsGuard
			return s.emit(domain.StepInit, 0, s.start)

		case bfsGuard:
			if len(s.queue) == 0 {
				return s.finish(domain.StepNotFound, 6, nil)
			}
			s.phase = bfsDequeue
			return s.emit(domain.StepGuard, 1, s.queue...)

		case bfsDequeue:
			s.node = s.queue[0]
			s.queue = s.queue[1:]
			if s.visited[s.node] {
				s.phase = bfsGuard
			} else {
				s.phase = bfsMark
			}
			return s.withPath(s.emit(domain.StepDequeue, 2, s.node))

		case bfsMark:
			s.visited[s.node] = true
			g.Set(s.node, domain.CellVisited)
			s.phase = bfsCheck
			return s.withPath(s.emit(domain.StepMark, 3, s.node))

		case bfsCheck:
			if s.node == s.goal {
				r := s.node
				return s.withPath(s.finish(domain.StepGoal, 4, &r, r))
			}
			s.phase = bfsEnqueue

		case bfsEnqueue:
			var added []domain.Position
			for _, d := range neighbours {
				next := domain.Position{Row: s.node.Row + d.Row, Col: s.node.Col + d.Col}
				if !g.Passable(next) || s.visited[next] {
					continue
				}
				if _, seen := s.parent[next]; !seen && next != s.start {
					s.parent[next] = s.node
				}
				s.queue = append(s.queue, next)
				added = append(added, next)
			}
			s.phase = bfsGuard
			return s.withPath(s.emit(domain.StepEnqueue, 5, added...))
		}
	}
}

// withPath attaches the route from the start to the current node.
func (s *BFS) withPath(st domain.Step) domain.Step {
	st.Path = s.pathTo(s.node)
	s.last = st.Clone()
	return st
}

func (s *BFS) pathTo(p domain.Position) []domain.Position {
	path := []domain.Position{p}
	for p != s.start {
		prev, ok := s.parent[p]
		if !ok {
			break
		}
		path = append(path, prev)
		p = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
