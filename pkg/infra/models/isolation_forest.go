package models

import (
	"errors"
	"fmt"
	"math"
)

const (
	eulerGamma = 0.5772156649015329

	leafChild = -1

	Outlier = -1
	Inlier  = 1
)

type forestNodeJSON struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Size      int     `json:"size"`
}

type isolationTreeJSON struct {
	Nodes []forestNodeJSON `json:"nodes"`
}

type isolationForestJSON struct {
	MaxSamples  int                 `json:"max_samples"`
	Offset      float64             `json:"offset"`
	NumFeatures int                 `json:"num_features"`
	Trees       []isolationTreeJSON `json:"trees"`
}

// IsolationForest scores points by their mean isolation depth, the way scikit-learn exports it.
type IsolationForest struct {
	offset      float64
	numFeatures int
	norm        float64
	trees       [][]forestNodeJSON
}

func newIsolationForest(doc isolationForestJSON) (*IsolationForest, error) {
	f := &IsolationForest{
		offset:      doc.Offset,
		numFeatures: doc.NumFeatures,
		norm:        averagePathLength(doc.MaxSamples),
	}
	if f.norm <= 0 {
		return nil, errors.New("max_samples must be at least 2")
	}
	for i, tree := range doc.Trees {
		for j, n := range tree.Nodes {
			if n.Left == leafChild && n.Right == leafChild {
				continue
			}
			if n.Feature < 0 || n.Feature >= doc.NumFeatures {
				return nil, fmt.Errorf("tree %d node %d splits on an unknown feature", i, j)
			}
			if n.Left <= j || n.Right <= j || n.Left >= len(tree.Nodes) || n.Right >= len(tree.Nodes) {
				return nil, fmt.Errorf("tree %d node %d has invalid children", i, j)
			}
		}
		f.trees = append(f.trees, tree.Nodes)
	}
	return f, nil
}

func (f *IsolationForest) NumFeatures() int {
	return f.numFeatures
}

// Score returns -2^(-E[h(x)]/c(n)). Lower means more anomalous.
func (f *IsolationForest) Score(x []float64) (float64, error) {
	if len(x) != f.numFeatures {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrWidth, len(x), f.numFeatures)
	}
	total := 0.0
	for _, tree := range f.trees {
		total += pathLength(tree, x)
	}
	mean := total / float64(len(f.trees))
	return -math.Pow(2, -mean/f.norm), nil
}

func (f *IsolationForest) Predict(x []float64) (int, error) {
	score, err := f.Score(x)
	if err != nil {
		return 0, err
	}
	if score-f.offset < 0 {
		return Outlier, nil
	}
	return Inlier, nil
}

func pathLength(nodes []forestNodeJSON, x []float64) float64 {
	id, depth := 0, 0.0
	for {
		n := nodes[id]
		if n.Left == leafChild {
			return depth + averagePathLength(n.Size)
		}
		if x[n.Feature] <= n.Threshold {
			id = n.Left
		} else {
			id = n.Right
		}
		depth++
	}
}

// averagePathLength is c(n), the expected path length of an unsuccessful BST search over n points.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	}
	fn := float64(n)
	return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
}
