package dungeon

import (
	"encoding/json"
	"sort"
)

// Connection is one undirected room-graph edge between the rooms of two
// grid-adjacent partition cells. A and B are kept in canonical order
// (A < B by X, then Z) so edge identity is stable across runs.
type Connection struct {
	A Cell `json:"a"`
	B Cell `json:"b"`
}

// canonical returns the connection with its endpoints in canonical order.
func (c Connection) canonical() Connection {
	if c.B.X < c.A.X || (c.B.X == c.A.X && c.B.Z < c.A.Z) {
		return Connection{A: c.B, B: c.A}
	}
	return c
}

// RoomGraph is the undirected connectivity model over placed rooms.
// Vertices are partition cells (one room each); edges are the
// connections the corridor pass actually established, so the graph
// reflects the tile grid's true reachability.
//
// Built once during generation and read-only afterwards.
type RoomGraph struct {
	cells    []Cell
	edges    []Connection
	adjacent map[Cell][]Cell
}

// NewRoomGraph creates a graph whose vertex set is every partition cell
// of the given arrangement, with no edges.
func NewRoomGraph(cellsX, cellsZ int) *RoomGraph {
	cells := make([]Cell, 0, cellsX*cellsZ)
	for z := 0; z < cellsZ; z++ {
		for x := 0; x < cellsX; x++ {
			cells = append(cells, Cell{X: x, Z: z})
		}
	}
	return &RoomGraph{
		cells:    cells,
		adjacent: make(map[Cell][]Cell, len(cells)),
	}
}

// Cells returns every vertex in partition order.
func (g *RoomGraph) Cells() []Cell { return g.cells }

// Edges returns the established connections in insertion order.
func (g *RoomGraph) Edges() []Connection { return g.edges }

// AddConnection records an undirected edge between the rooms of cells a
// and b. Duplicate connections are ignored.
func (g *RoomGraph) AddConnection(a, b Cell) {
	conn := Connection{A: a, B: b}.canonical()
	for _, e := range g.edges {
		if e == conn {
			return
		}
	}
	g.edges = append(g.edges, conn)
	g.adjacent[conn.A] = append(g.adjacent[conn.A], conn.B)
	g.adjacent[conn.B] = append(g.adjacent[conn.B], conn.A)
}

// Degree returns the number of connections incident to the room at c.
func (g *RoomGraph) Degree(c Cell) int {
	return len(g.adjacent[c])
}

// MinDegree returns the smallest degree over all vertices. A fully
// healthy dungeon has MinDegree >= 1: every room reachable by at least
// one corridor.
func (g *RoomGraph) MinDegree() int {
	if len(g.cells) == 0 {
		return 0
	}
	min := g.Degree(g.cells[0])
	for _, c := range g.cells[1:] {
		if d := g.Degree(c); d < min {
			min = d
		}
	}
	return min
}

// Connected reports whether every room is reachable from every other
// through established connections, via breadth-first traversal. A single
// room counts as connected.
func (g *RoomGraph) Connected() bool {
	if len(g.cells) == 0 {
		return true
	}
	visited := make(map[Cell]bool, len(g.cells))
	queue := []Cell{g.cells[0]}
	visited[g.cells[0]] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.adjacent[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(visited) == len(g.cells)
}

// roomGraphJSON is the serialized form: the vertex set plus the edge
// list, both in deterministic order.
type roomGraphJSON struct {
	Cells []Cell       `json:"cells"`
	Edges []Connection `json:"edges"`
}

// MarshalJSON serializes vertices and edges; edges are sorted into
// canonical order for byte-stable output.
func (g *RoomGraph) MarshalJSON() ([]byte, error) {
	edges := make([]Connection, len(g.edges))
	copy(edges, g.edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			if edges[i].A.X != edges[j].A.X {
				return edges[i].A.X < edges[j].A.X
			}
			return edges[i].A.Z < edges[j].A.Z
		}
		if edges[i].B.X != edges[j].B.X {
			return edges[i].B.X < edges[j].B.X
		}
		return edges[i].B.Z < edges[j].B.Z
	})
	return json.Marshal(roomGraphJSON{Cells: g.cells, Edges: edges})
}

// UnmarshalJSON rebuilds the graph, including the adjacency index.
func (g *RoomGraph) UnmarshalJSON(data []byte) error {
	var raw roomGraphJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.cells = raw.Cells
	g.edges = nil
	g.adjacent = make(map[Cell][]Cell, len(raw.Cells))
	for _, e := range raw.Edges {
		g.AddConnection(e.A, e.B)
	}
	return nil
}
