package exporter

import (
	"errors"
	"fmt"
)

// ErrIndexInconsistent is returned when a host-selected face references a
// vertex that is absent from the selection's local index map. The faithful
// policy surfaces it instead of emitting a wrong or truncated index.
var ErrIndexInconsistent = errors.New("face references vertex outside the selection")

// TopologyPolicy selects how face selection and the vertex local-index map
// are reconciled. The two are independently derived in the host and may
// disagree on malformed input.
type TopologyPolicy string

const (
	// PolicyStrict includes a face only when every one of its vertices is
	// in the selected set, making index lookups total by construction.
	// Equivalent to PolicyFaithful on well-formed input.
	PolicyStrict TopologyPolicy = "strict"
	// PolicyFaithful trusts the host's face selection verbatim and fails
	// with ErrIndexInconsistent when a face vertex has no local index.
	PolicyFaithful TopologyPolicy = "faithful"
)

// Valid reports whether p is a known policy.
func (p TopologyPolicy) Valid() bool {
	return p == PolicyStrict || p == PolicyFaithful
}

// ExtractIndices flattens the resolved group's selected faces into local
// face-vertex indices, three per triangle, in face order.
//
// Postcondition: every returned index is a valid offset into rg.Positions.
// Under PolicyFaithful a face vertex missing from rg.LocalIndex is a fatal
// ErrIndexInconsistent (wrapped); under PolicyStrict such faces are skipped.
func ExtractIndices(rg *ResolvedGroup, policy TopologyPolicy) ([]int, error) {
	if !policy.Valid() {
		return nil, fmt.Errorf("unknown topology policy %q", policy)
	}

	var indices []int
	for _, f := range rg.Faces {
		if policy == PolicyStrict {
			if !containsFace(rg.LocalIndex, f[0], f[1], f[2]) {
				continue
			}
		}
		for _, v := range f {
			local, ok := rg.LocalIndex[v]
			if !ok {
				return nil, fmt.Errorf("group %q face (%d, %d, %d) vertex %d: %w",
					rg.Name, f[0], f[1], f[2], v, ErrIndexInconsistent)
			}
			indices = append(indices, local)
		}
	}
	return indices, nil
}

func containsFace(localIndex map[int]int, a, b, c int) bool {
	_, okA := localIndex[a]
	_, okB := localIndex[b]
	_, okC := localIndex[c]
	return okA && okB && okC
}
