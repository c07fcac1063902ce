package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/errors"
	"github.com/matzehuels/arcgraph/pkg/geom"
)

func ptr(v float64) *float64 { return &v }

func sample() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "a", X: ptr(0), Y: ptr(0)},
			{ID: "b", X: ptr(10), Y: ptr(5), Z: ptr(2)},
			{ID: "c", Label: "Cache"},
		},
		Edges: []Edge{
			{From: "a", To: "b"},
			{From: "a", To: "b"},
			{ID: "loop", From: "c", To: "c"},
		},
	}
}

func TestNodePosition(t *testing.T) {
	tests := []struct {
		name   string
		node   Node
		want   geom.Vector3
		wantOK bool
	}{
		{"2D", Node{X: ptr(1), Y: ptr(2)}, geom.New(1, 2, 0), true},
		{"3D", Node{X: ptr(1), Y: ptr(2), Z: ptr(3)}, geom.New(1, 2, 3), true},
		{"MissingY", Node{X: ptr(1)}, geom.Vector3{}, false},
		{"ZOnly", Node{Z: ptr(1)}, geom.Vector3{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.node.Position()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Position() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNodeSetPositionOmitsZeroZ(t *testing.T) {
	var n Node
	n.SetPosition(geom.New(3, 4, 0))
	if n.Z != nil {
		t.Errorf("Z = %v, want nil", *n.Z)
	}
	n.SetPosition(geom.New(3, 4, 5))
	if n.Z == nil || *n.Z != 5 {
		t.Errorf("Z = %v, want 5", n.Z)
	}
}

func TestDisplayLabel(t *testing.T) {
	g := sample()
	if got := g.Nodes[0].DisplayLabel(); got != "a" {
		t.Errorf("DisplayLabel() = %q, want a", got)
	}
	if got := g.Nodes[2].DisplayLabel(); got != "Cache" {
		t.Errorf("DisplayLabel() = %q, want Cache", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := sample()
	c := g.Clone()
	*c.Nodes[0].X = 99
	c.Edges[0].ID = "changed"

	if *g.Nodes[0].X != 0 {
		t.Error("Clone shares coordinate pointers")
	}
	if g.Edges[0].ID != "" {
		t.Error("Clone shares edge slice")
	}
}

func TestUnpositioned(t *testing.T) {
	got := sample().Unpositioned()
	if len(got) != 1 || got[0] != "c" {
		t.Errorf("Unpositioned() = %v, want [c]", got)
	}
}

func TestGraphRoundTrip(t *testing.T) {
	data, err := MarshalGraph(sample())
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	if strings.Contains(string(data), `"z": 0`) {
		t.Error("2D node serialized a z coordinate")
	}

	g, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if len(g.Nodes) != 3 || len(g.Edges) != 3 {
		t.Fatalf("nodes=%d edges=%d, want 3 3", len(g.Nodes), len(g.Edges))
	}
	if p, _ := g.Nodes[1].Position(); p != geom.New(10, 5, 2) {
		t.Errorf("b position = %v, want (10, 5, 2)", p)
	}
}

func TestReadGraphErrors(t *testing.T) {
	_, err := ReadGraph(strings.NewReader("{not json"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadGraph(bad) error = %v, want INVALID_FORMAT", err)
	}

	_, err = ReadGraphFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadGraphFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(sample(), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if g.Edges[2].ID != "loop" {
		t.Errorf("edge id = %q, want loop", g.Edges[2].ID)
	}
}

func TestNewNetwork(t *testing.T) {
	net, err := NewNetwork(sample())
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}

	if got := len(net.Nodes()); got != 3 {
		t.Errorf("Nodes() = %d, want 3", got)
	}

	refs := net.Edges()
	if len(refs) != 3 {
		t.Fatalf("Edges() = %d, want 3", len(refs))
	}
	if refs[0].ID == "" || refs[0].ID == refs[1].ID {
		t.Errorf("generated ids not distinct: %q %q", refs[0].ID, refs[1].ID)
	}
	if want := edges.EdgeID(EdgeID("a", "b", 0)); refs[0].ID != want {
		t.Errorf("first generated id = %q, want %q", refs[0].ID, want)
	}
	if refs[2].ID != "loop" {
		t.Errorf("explicit id = %q, want loop", refs[2].ID)
	}

	if _, ok := net.Position("c"); ok {
		t.Error("c should be unpositioned")
	}
	if p, ok := net.Position("b"); !ok || p != geom.New(10, 5, 2) {
		t.Errorf("Position(b) = %v, %v", p, ok)
	}
	if _, ok := net.Position("zzz"); ok {
		t.Error("Position of unknown node should be unresolved")
	}

	if !net.SetPosition("c", geom.New(1, 1, 0)) {
		t.Error("SetPosition(c) = false")
	}
	if net.SetPosition("zzz", geom.Vector3{}) {
		t.Error("SetPosition(unknown) = true")
	}
	if len(net.Unpositioned()) != 0 {
		t.Errorf("Unpositioned() = %v, want none", net.Unpositioned())
	}

	out := net.Graph()
	if out.Edges[0].ID != string(refs[0].ID) {
		t.Errorf("Graph() edge id = %q, want %q", out.Edges[0].ID, refs[0].ID)
	}
}

func TestNewNetworkStableIDs(t *testing.T) {
	a, err := NewNetwork(sample())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewNetwork(sample())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Edges() {
		if a.Edges()[i].ID != b.Edges()[i].ID {
			t.Errorf("edge %d id differs across loads", i)
		}
	}
}

func TestNewNetworkRejects(t *testing.T) {
	tests := []struct {
		name  string
		graph Graph
		code  errors.Code
	}{
		{
			name:  "EmptyNodeID",
			graph: Graph{Nodes: []Node{{ID: ""}}},
			code:  errors.ErrCodeInvalidGraph,
		},
		{
			name:  "DuplicateNode",
			graph: Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}},
			code:  errors.ErrCodeInvalidGraph,
		},
		{
			name: "UnknownNode",
			graph: Graph{
				Nodes: []Node{{ID: "a"}},
				Edges: []Edge{{From: "a", To: "b"}},
			},
			code: errors.ErrCodeUnknownNode,
		},
		{
			name: "DuplicateEdge",
			graph: Graph{
				Nodes: []Node{{ID: "a"}},
				Edges: []Edge{{ID: "e", From: "a", To: "a"}, {ID: "e", From: "a", To: "a"}},
			},
			code: errors.ErrCodeInvalidGraph,
		},
		{
			name: "BadEdgeID",
			graph: Graph{
				Nodes: []Node{{ID: "a"}},
				Edges: []Edge{{ID: " e", From: "a", To: "a"}},
			},
			code: errors.ErrCodeInvalidGraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNetwork(tt.graph)
			if !errors.Is(err, tt.code) {
				t.Errorf("NewNetwork() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestNetworkFeedsAnalyzer(t *testing.T) {
	net, err := NewNetwork(sample())
	if err != nil {
		t.Fatal(err)
	}
	a := edges.NewAnalyzer(edges.Options{})
	recs := a.Analyze(net, 1)

	if len(recs) != 3 {
		t.Fatalf("records = %d, want 3", len(recs))
	}
	for _, r := range recs {
		switch {
		case r.SelfEdge:
			if r.SufficientLength {
				t.Error("unpositioned self-loop should not be drawable")
			}
		default:
			if r.TotalCoincident != 2 || r.Straight {
				t.Errorf("a-b edge %s: total=%d straight=%v", r.Edge.ID, r.TotalCoincident, r.Straight)
			}
		}
	}
}

func TestLayoutApplyAndValidate(t *testing.T) {
	net, err := NewNetwork(sample())
	if err != nil {
		t.Fatal(err)
	}
	l := Layout{
		Engine: "circle",
		Positions: []Position{
			{ID: "a", X: 50, Y: 50},
			{ID: "c", X: 7, Y: 8},
			{ID: "ghost", X: 1, Y: 1},
		},
	}
	if got := l.Apply(net, false); got != 1 {
		t.Errorf("Apply(keep) = %d, want 1", got)
	}
	if p, _ := net.Position("a"); p != geom.New(0, 0, 0) {
		t.Errorf("positioned node moved without overwrite: %v", p)
	}
	if got := l.Apply(net, true); got != 2 {
		t.Errorf("Apply(overwrite) = %d, want 2", got)
	}
	if p, ok := net.Position("c"); !ok || p != geom.New(7, 8, 0) {
		t.Errorf("Position(c) = %v, %v", p, ok)
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatal(err)
	}
	back, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if len(back.Positions) != 3 || back.Engine != "circle" {
		t.Errorf("round trip = %+v", back)
	}

	if _, err := UnmarshalLayout([]byte(`{"positions": []}`)); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("missing engine error = %v", err)
	}
	dup := `{"engine": "neato", "positions": [{"id": "a"}, {"id": "a"}]}`
	if _, err := UnmarshalLayout([]byte(dup)); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("duplicate position error = %v", err)
	}
	if _, err := ReadLayoutFile(filepath.Join(t.TempDir(), "none.json")); !os.IsNotExist(unwrapAll(err)) {
		t.Errorf("missing file error = %v", err)
	}
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok || u.Unwrap() == nil {
			return err
		}
		err = u.Unwrap()
	}
}

func TestSceneRoundTrip(t *testing.T) {
	s := Scene{
		DistanceScale: 178,
		Ordering:      "id",
		Params:        edges.DefaultArcParams(),
		Nodes:         []SceneNode{{ID: "a", Position: [3]float64{1, 2, 0}}},
		Edges: []SceneEdge{{
			ID: "e", From: "a", To: "a", Ordinal: 1, Total: 1, Self: true, Drawable: true,
			Arc:  &edges.Arc{Radius: 0.063, Level: 1, MaxLevel: 1, SlotsInLevel: 1},
			Path: [][3]float64{{1, 2, 0}, {1, 2.126, 0}},
		}},
	}
	data, err := MarshalScene(s)
	if err != nil {
		t.Fatal(err)
	}
	back, err := UnmarshalScene(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Edges[0].Arc.Radius != 0.063 || back.Params.RadiusExponent != 1.25 {
		t.Errorf("round trip lost fields: %+v", back)
	}
	if _, err := UnmarshalScene([]byte("[")); err == nil {
		t.Error("UnmarshalScene(bad) = nil error")
	}
}
