package graph

import "github.com/cwbudde/algo-fxgraph/effect"

// MergePolicy selects how parallel branches are combined.
type MergePolicy int

const (
	// MergeSum adds branch outputs in declaration order.
	MergeSum MergePolicy = iota
	// MergeAverage sums branch outputs and divides by the branch count.
	MergeAverage
)

func (p MergePolicy) String() string {
	switch p {
	case MergeSum:
		return "sum"
	case MergeAverage:
		return "avg"
	default:
		return "unknown"
	}
}

type nodeKind int

const (
	kindLeaf nodeKind = iota
	kindRef
	kindChain
	kindSplit
)

// Param is one name=value assignment applied to a referenced effect
// at compile time. Names resolve through the registry, so presets
// survive parameter index reshuffles that append-only evolution
// forbids anyway.
type Param struct {
	Name  string
	Value float64
}

// Node describes a processing topology. Nodes are cheap descriptions:
// nothing is resolved, validated, or allocated until Compile.
type Node struct {
	kind      nodeKind
	fx        effect.Instance
	refID     string
	refParams []Param
	children  []*Node
	policy    MergePolicy
}

// NewLeaf wraps a concrete effect instance. The instance is owned by
// the caller; Compile retunes it to the compile sample rate.
func NewLeaf(fx effect.Instance) *Node {
	return &Node{kind: kindLeaf, fx: fx}
}

// Passthrough returns a leaf that forwards its input unchanged.
func Passthrough() *Node {
	return NewLeaf(effect.NewIdentity())
}

// NewRef names a registry effect. The instance is created at compile
// time and each param is applied through the registry's name-to-index
// mapping, in declaration order.
func NewRef(id string, params ...Param) *Node {
	return &Node{kind: kindRef, refID: id, refParams: params}
}

// NewChain runs nodes in series. An empty chain is the identity.
func NewChain(nodes ...*Node) *Node {
	return &Node{kind: kindChain, children: nodes}
}

// NewSplit runs branches in parallel on the same input and merges
// their outputs under policy. A split needs at least one branch;
// Compile rejects an empty one.
func NewSplit(policy MergePolicy, branches ...*Node) *Node {
	return &Node{kind: kindSplit, policy: policy, children: branches}
}
