package models

import (
	"errors"
	"fmt"
	"math"
)

type treeNodeJSON struct {
	NodeID         int            `json:"nodeid"`
	Split          *int           `json:"split,omitempty"`
	SplitCondition float64        `json:"split_condition"`
	Yes            int            `json:"yes"`
	No             int            `json:"no"`
	Missing        *int           `json:"missing,omitempty"`
	Leaf           *float64       `json:"leaf,omitempty"`
	Children       []treeNodeJSON `json:"children,omitempty"`
}

type treeEnsembleJSON struct {
	BaseScore   float64        `json:"base_score"`
	NumFeatures int            `json:"num_features"`
	Trees       []treeNodeJSON `json:"trees"`
}

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	yes       int
	no        int
	missing   int
}

// TreeEnsemble evaluates a gradient-boosted regression tree dump. Nodes are addressed by nodeid within each tree.
type TreeEnsemble struct {
	baseScore   float64
	numFeatures int
	trees       [][]treeNode
}

func newTreeEnsemble(doc treeEnsembleJSON) (*TreeEnsemble, error) {
	m := &TreeEnsemble{
		baseScore:   doc.BaseScore,
		numFeatures: doc.NumFeatures,
		trees:       make([][]treeNode, 0, len(doc.Trees)),
	}
	for i, root := range doc.Trees {
		tree, err := flattenTree(root, doc.NumFeatures)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		m.trees = append(m.trees, tree)
	}
	return m, nil
}

func flattenTree(root treeNodeJSON, numFeatures int) ([]treeNode, error) {
	byID := map[int]treeNodeJSON{}
	stack := []treeNodeJSON{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, dup := byID[n.NodeID]; dup {
			return nil, fmt.Errorf("duplicate nodeid %d", n.NodeID)
		}
		byID[n.NodeID] = n
		stack = append(stack, n.Children...)
	}
	if root.NodeID != 0 {
		return nil, errors.New("root node must have nodeid 0")
	}

	nodes := make([]treeNode, len(byID))
	for id, n := range byID {
		if id >= len(nodes) {
			return nil, fmt.Errorf("nodeid %d out of range", id)
		}
		if n.Leaf != nil {
			nodes[id] = treeNode{leaf: true, value: *n.Leaf}
			continue
		}
		if n.Split == nil || *n.Split >= numFeatures {
			return nil, fmt.Errorf("node %d splits on an unknown feature", id)
		}
		missing := n.Yes
		if n.Missing != nil {
			missing = *n.Missing
		}
		for _, child := range []int{n.Yes, n.No, missing} {
			if _, ok := byID[child]; !ok || child == id {
				return nil, fmt.Errorf("node %d points at missing child %d", id, child)
			}
		}
		nodes[id] = treeNode{
			feature:   *n.Split,
			threshold: n.SplitCondition,
			yes:       n.Yes,
			no:        n.No,
			missing:   missing,
		}
	}
	return nodes, nil
}

func (m *TreeEnsemble) NumFeatures() int {
	return m.numFeatures
}

func (m *TreeEnsemble) Predict(x []float64) (float64, error) {
	if len(x) != m.numFeatures {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrWidth, len(x), m.numFeatures)
	}
	sum := m.baseScore
	for i, tree := range m.trees {
		v, err := walkTree(tree, x)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += v
	}
	return sum, nil
}

func walkTree(tree []treeNode, x []float64) (float64, error) {
	id := 0
	// a well-formed tree reaches a leaf in fewer steps than it has nodes
	for steps := 0; steps <= len(tree); steps++ {
		n := tree[id]
		if n.leaf {
			return n.value, nil
		}
		v := x[n.feature]
		switch {
		case math.IsNaN(v):
			id = n.missing
		case v < n.threshold:
			id = n.yes
		default:
			id = n.no
		}
	}
	return 0, errors.New("tree contains a cycle")
}
