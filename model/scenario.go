package model

// Strategy is the declared clustering objective. It constrains the expected
// per-cluster satellite counts but carries no other semantics.
type Strategy string

const (
	// StrategyBalanced expects satellites spread roughly evenly across clusters.
	StrategyBalanced Strategy = "balanced"
	// StrategyQuality favours small, tight clusters over even distribution.
	StrategyQuality Strategy = "quality"
)

// Known reports whether s is one of the declared strategies.
func (s Strategy) Known() bool {
	return s == StrategyBalanced || s == StrategyQuality
}

// SatelliteAttr describes one satellite as provided by the scenario generator.
// Health is a 0–1 score; Pos is an ECEF-style 3-vector passed through untouched.
type SatelliteAttr struct {
	ID     int        `json:"id"`
	Health float64    `json:"health"`
	Pos    [3]float64 `json:"pos"`
}

// LinkEdge is an inter-satellite link with a 0–1 strength weight.
// Links are undirected in effect: an edge may appear in either direction,
// or both, and lookups must treat (from,to) and (to,from) the same.
type LinkEdge struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"w"`
}

// TargetEdge scores how well satellite Sat can observe target Target (0–1).
type TargetEdge struct {
	Sat     int     `json:"from"`
	Target  int     `json:"to"`
	Quality float64 `json:"q"`
}

// ScenarioInput is the scenario description a clustering is validated against.
// The set of distinct Target ids in TargetLinks is the derived target universe;
// there is no separate target list.
type ScenarioInput struct {
	Timestamp      string          `json:"timestamp"`
	Strategy       Strategy        `json:"strategy"`
	Satellites     []SatelliteAttr `json:"sat_attrs"`
	SatelliteLinks []LinkEdge      `json:"sat_edges"`
	TargetLinks    []TargetEdge    `json:"target_edges"`
}
