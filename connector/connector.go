// Package connector implements the Markov bigram transition cost
// between adjacent lattice nodes' POS contexts. It is a pure,
// allocation-free lookup against a dense cost matrix, called once per
// edge per Viterbi relaxation, so it must stay fast.
package connector

import "kanaconv/pos"

// Connector holds a dense right-POS x left-POS cost matrix.
type Connector struct {
	matrix    []int16
	leftSize  int
	rightSize int
}

// NewConnector builds a Connector over a flattened leftSize*rightSize
// matrix, row-major by right POS ID then left POS ID
// (matrix[right*leftSize+left]).
func NewConnector(matrix []int16, leftSize, rightSize int) *Connector {
	return &Connector{matrix: matrix, leftSize: leftSize, rightSize: rightSize}
}

// Cost returns the transition cost between the right POS ID of the
// left node and the left POS ID of the right node. Out-of-range IDs
// (beyond what the matrix was built for) cost 0, so malformed
// POS data degrades gracefully rather than panicking on a hot path.
func (c *Connector) Cost(rightPOSOfLeft, leftPOSOfRight pos.ID) int32 {
	right := int(rightPOSOfLeft)
	left := int(leftPOSOfRight)
	if right < 0 || right >= c.rightSize || left < 0 || left >= c.leftSize {
		return 0
	}
	return int32(c.matrix[right*c.leftSize+left])
}
