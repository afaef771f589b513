// Package inference defines the neural-network adapter contract the MCTS
// search consumes, plus two local implementations: a uniform-prior
// fallback and a small linear policy head that gives the contract a real,
// locally computable backend to exercise in tests.
package inference

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/katalite/go5x5/board"
)

// ActionSpace is the length of a policy vector: one entry per board point
// plus one for Pass.
const ActionSpace = board.NumPoints + 1

// Channels is the number of feature planes per position.
const Channels = 5

// Engine produces move priors for a position. Implementations must be
// safe for concurrent use if the caller intends to share one Engine
// across goroutines; NullEngine and LinearEngine both are.
type Engine interface {
	// Infer returns a length-ActionSpace probability vector, indices
	// 0..24 for board points in row-major order and index 25 for Pass.
	Infer(s *board.GameState) ([]float32, error)
}

// FeatureTensor builds the (5, 5, 5) input tensor for s: channel 0 marks
// Black stones, channel 1 marks White stones, channel 2 holds the
// liberty count of the group at each Black stone, channel 3 the liberty
// count of the group at each White stone, and channel 4 is +1/-1 at
// every point legal for the side to move depending on whether that side
// is Black or White — matching the teacher's Dense-tensor-of-planes
// convention in agogo.go's prepareExamples.
func FeatureTensor(s *board.GameState) *tensor.Dense {
	backing := make([]float32, Channels*board.NumPoints)

	legalSign := float32(1)
	if s.ToMove == board.White {
		legalSign = -1
	}

	for idx := 0; idx < board.NumPoints; idx++ {
		p := board.PointFromIdx(idx)
		switch s.Board.Get(p) {
		case board.Black:
			backing[0*board.NumPoints+idx] = 1
			backing[2*board.NumPoints+idx] = float32(s.LibertyCount(p))
		case board.White:
			backing[1*board.NumPoints+idx] = 1
			backing[3*board.NumPoints+idx] = float32(s.LibertyCount(p))
		default:
			if s.IsLegal(p, s.ToMove) {
				backing[4*board.NumPoints+idx] = legalSign
			}
		}
	}

	return tensor.New(
		tensor.WithBacking(backing),
		tensor.WithShape(Channels, board.Size, board.Size),
	)
}

// NullEngine returns the uniform prior over every action, used whenever no
// trained backend is wired.
type NullEngine struct{}

// Infer always succeeds with a uniform distribution over ActionSpace.
func (NullEngine) Infer(*board.GameState) ([]float32, error) {
	out := make([]float32, ActionSpace)
	uniform := float32(1) / float32(ActionSpace)
	for i := range out {
		out[i] = uniform
	}
	return out, nil
}

// LinearEngine is an affine-plus-softmax policy head over the feature
// tensor: weight[a][c*25+i] contributes to action a's logit. It stands in
// for the out-of-scope ONNX runtime with a backend that is cheap to
// construct deterministically and does not require an autodiff graph.
type LinearEngine struct {
	weight [][]float32 // [ActionSpace][Channels*NumPoints]
	bias   []float32   // [ActionSpace]
}

// NewLinearEngine builds a LinearEngine from a flat weight matrix and bias
// vector. weight must have ActionSpace rows of Channels*NumPoints entries
// each; bias must have ActionSpace entries.
func NewLinearEngine(weight [][]float32, bias []float32) (*LinearEngine, error) {
	if len(weight) != ActionSpace {
		return nil, errors.Errorf("inference: expected %d weight rows, got %d", ActionSpace, len(weight))
	}
	for i, row := range weight {
		if len(row) != Channels*board.NumPoints {
			return nil, errors.Errorf("inference: weight row %d has %d entries, want %d", i, len(row), Channels*board.NumPoints)
		}
	}
	if len(bias) != ActionSpace {
		return nil, errors.Errorf("inference: expected %d bias entries, got %d", ActionSpace, len(bias))
	}
	return &LinearEngine{weight: weight, bias: bias}, nil
}

// NewZeroLinearEngine returns a LinearEngine whose weights are all zero,
// which reduces Infer to the uniform prior — a convenient untrained
// starting point.
func NewZeroLinearEngine() *LinearEngine {
	weight := make([][]float32, ActionSpace)
	for i := range weight {
		weight[i] = make([]float32, Channels*board.NumPoints)
	}
	return &LinearEngine{weight: weight, bias: make([]float32, ActionSpace)}
}

// Infer computes logits = W*x + b over the flattened feature tensor, then
// a numerically stable softmax.
func (e *LinearEngine) Infer(s *board.GameState) ([]float32, error) {
	ft := FeatureTensor(s)
	data, ok := ft.Data().([]float32)
	if !ok {
		return nil, errors.New("inference: feature tensor backing is not []float32")
	}

	logits := make([]float32, ActionSpace)
	maxLogit := float32(math32.Inf(-1))
	for a := 0; a < ActionSpace; a++ {
		var sum float32
		row := e.weight[a]
		for i, x := range data {
			sum += row[i] * x
		}
		sum += e.bias[a]
		logits[a] = sum
		if sum > maxLogit {
			maxLogit = sum
		}
	}

	out := make([]float32, ActionSpace)
	var total float32
	for a, l := range logits {
		v := math32.Exp(l - maxLogit)
		out[a] = v
		total += v
	}
	for a := range out {
		out[a] /= total
	}
	return out, nil
}
