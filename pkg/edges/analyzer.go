package edges

import (
	"cmp"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcgraph/pkg/geom"
	"github.com/matzehuels/arcgraph/pkg/observability"
)

// MinLength is the shortest drawable distance between the endpoints of a
// non-self edge.
const MinLength = geom.MinNormal

// Ordering selects the order in which edges receive their ordinals.
type Ordering int

const (
	// OrderByID visits edges sorted by EdgeID.
	OrderByID Ordering = iota
	// OrderEnumeration visits edges in the order the network returns them.
	OrderEnumeration
)

// String returns the configuration name of the ordering.
func (o Ordering) String() string {
	switch o {
	case OrderEnumeration:
		return "enumeration"
	default:
		return "id"
	}
}

// ParseOrdering maps a configuration name to an Ordering.
func ParseOrdering(s string) (Ordering, bool) {
	switch s {
	case "", "id":
		return OrderByID, true
	case "enumeration":
		return OrderEnumeration, true
	default:
		return OrderByID, false
	}
}

// Contract violation kinds reported to the engine hooks.
const (
	ViolationUnknownNode   = "unknown_node"
	ViolationDuplicateEdge = "duplicate_edge"
	ViolationDuplicateNode = "duplicate_node"
	ViolationInvalidScale  = "invalid_scale"
)

// Options configures an Analyzer.
type Options struct {
	Ordering Ordering

	// Arc holds the arc packing constants. Zero fields take their defaults.
	Arc ArcParams

	// Logger receives diagnostics about malformed host data.
	// If nil, diagnostics are discarded.
	Logger *log.Logger
}

// Stats summarizes the last analysis pass.
type Stats struct {
	Edges      int // edges enumerated by the network
	Records    int // records after reconciliation
	Created    int
	Removed    int
	Straight   int
	Curved     int
	SelfLoops  int
	Degenerate int // records without sufficient length
	Violations int
}

// Analyzer maintains the edge records of one network view.
type Analyzer struct {
	records map[EdgeID]*Record
	opts    Options
	logger  *log.Logger
	stats   Stats
}

// NewAnalyzer creates an Analyzer with no records.
func NewAnalyzer(opts Options) *Analyzer {
	opts.Arc = opts.Arc.withDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Analyzer{
		records: make(map[EdgeID]*Record),
		opts:    opts,
		logger:  logger,
	}
}

// Analyze updates the records for the current state of net and returns them
// sorted by edge ID. Node positions are divided by distanceScale; a scale
// that is not a positive finite number is treated as 1.
//
// The returned records are owned by the Analyzer and are modified by the
// next call.
func (a *Analyzer) Analyze(net Network, distanceScale float64) []*Record {
	start := time.Now()
	stats := Stats{}

	if !(distanceScale > 0) || math.IsInf(distanceScale, 0) {
		a.violation(&stats, ViolationInvalidScale, "")
		a.logger.Warn("invalid distance scale, using 1", "scale", distanceScale)
		distanceScale = 1
	}

	nodes := net.Nodes()
	index := make(map[NodeID]int, len(nodes))
	for i, id := range nodes {
		if _, dup := index[id]; dup {
			a.violation(&stats, ViolationDuplicateNode, "")
			a.logger.Warn("duplicate node in network", "node", id)
			continue
		}
		index[id] = i
	}
	nodeCount := len(nodes)

	refs := a.enumerate(net.Edges())
	stats.Edges = len(refs)

	current := make(map[EdgeID]struct{}, len(refs))
	coincident := make(map[PairID]int)

	for _, ref := range refs {
		if _, dup := current[ref.ID]; dup {
			a.violation(&stats, ViolationDuplicateEdge, string(ref.ID))
			a.logger.Warn("duplicate edge in network", "edge", ref.ID)
			continue
		}
		si, okSource := index[ref.Source]
		ti, okTarget := index[ref.Target]
		if !okSource || !okTarget {
			a.violation(&stats, ViolationUnknownNode, string(ref.ID))
			a.logger.Warn("edge references unknown node, skipping",
				"edge", ref.ID, "source", ref.Source, "target", ref.Target)
			continue
		}
		current[ref.ID] = struct{}{}

		r, ok := a.records[ref.ID]
		if !ok {
			r = &Record{}
			a.records[ref.ID] = r
			stats.Created++
		}
		r.Edge = ref

		r.Pair = NewPairID(si, ti, nodeCount)
		coincident[r.Pair]++
		r.Ordinal = coincident[r.Pair]
		r.SelfEdge = ref.Source == ref.Target

		r.Start = resolve(net, ref.Source, distanceScale, r.Start)
		r.End = resolve(net, ref.Target, distanceScale, r.End)
		r.SufficientLength = r.Start != nil && r.End != nil &&
			(r.SelfEdge || r.Start.Distance(*r.End) >= MinLength)
	}

	stats.Removed = a.reconcile(current)

	for _, r := range a.records {
		r.TotalCoincident = coincident[r.Pair]
		r.Straight = r.TotalCoincident == 1 && !r.SelfEdge

		switch {
		case r.SelfEdge:
			stats.SelfLoops++
		case r.Straight:
			stats.Straight++
		default:
			stats.Curved++
		}
		if !r.SufficientLength {
			stats.Degenerate++
		}
	}
	stats.Records = len(a.records)
	a.stats = stats

	elapsed := time.Since(start)
	a.logger.Debug("analyzed edges",
		"edges", stats.Edges, "records", stats.Records,
		"created", stats.Created, "removed", stats.Removed, "elapsed", elapsed)
	observability.Engine().OnAnalyze(stats.Records, stats.Created, stats.Removed, elapsed)

	return a.Records()
}

// enumerate returns the edges in visiting order.
func (a *Analyzer) enumerate(refs []EdgeRef) []EdgeRef {
	if a.opts.Ordering != OrderByID {
		return refs
	}
	sorted := slices.Clone(refs)
	slices.SortStableFunc(sorted, func(x, y EdgeRef) int { return cmp.Compare(x.ID, y.ID) })
	return sorted
}

// reconcile drops records whose edge is not in current and returns how many
// were removed.
func (a *Analyzer) reconcile(current map[EdgeID]struct{}) int {
	removed := 0
	for id := range a.records {
		if _, ok := current[id]; !ok {
			delete(a.records, id)
			removed++
		}
	}
	return removed
}

func (a *Analyzer) violation(stats *Stats, kind, edgeID string) {
	stats.Violations++
	observability.Engine().OnContractViolation(kind, edgeID)
}

// resolve looks up a node position and scales it, reusing dst when possible.
func resolve(net Network, id NodeID, scale float64, dst *geom.Vector3) *geom.Vector3 {
	p, ok := net.Position(id)
	if !ok {
		return nil
	}
	p.DivideLocal(scale)
	if dst == nil {
		return &p
	}
	dst.Set(p)
	return dst
}

// Records returns the current records sorted by edge ID.
func (a *Analyzer) Records() []*Record {
	out := make([]*Record, 0, len(a.records))
	for _, r := range a.records {
		out = append(out, r)
	}
	slices.SortFunc(out, func(x, y *Record) int { return cmp.Compare(x.Edge.ID, y.Edge.ID) })
	return out
}

// Record returns the record of an edge, if tracked.
func (a *Analyzer) Record(id EdgeID) (*Record, bool) {
	r, ok := a.records[id]
	return r, ok
}

// Len returns the number of tracked records.
func (a *Analyzer) Len() int { return len(a.records) }

// Stats returns the statistics of the last Analyze call.
func (a *Analyzer) Stats() Stats { return a.stats }

// Ordering returns the visiting order used for ordinals.
func (a *Analyzer) Ordering() Ordering { return a.opts.Ordering }

// Params returns the arc packing constants in use.
func (a *Analyzer) Params() ArcParams { return a.opts.Arc }

// ArcMetrics computes the arc of a curved or self-loop record using the
// analyzer's constants.
func (a *Analyzer) ArcMetrics(r *Record) (Arc, error) { return a.opts.Arc.Metrics(r) }

// Path returns the polyline of a record using the analyzer's constants.
func (a *Analyzer) Path(r *Record, segments int) ([]geom.Vector3, error) {
	return a.opts.Arc.Path(r, segments)
}
