package models

// LayerSet is the complete set of layers bound to one map surface. A nil
// field means that layer is not active.
type LayerSet struct {
	Points *PointLayer `json:"points,omitempty"`
	Paths  *PathLayer  `json:"paths,omitempty"`
}

// Empty reports whether no layer is active
func (l LayerSet) Empty() bool {
	return l.Points == nil && l.Paths == nil
}
