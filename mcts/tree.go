package mcts

import (
	"github.com/katalite/go5x5/board"
	"github.com/katalite/go5x5/inference"
	"github.com/katalite/go5x5/rng"
)

// CPUCT is the exploration constant from the original engine's tuning
// (constant.h: C_PUCT).
const CPUCT = 1.1

// ForceSelectK is the coefficient used in the forced-exploration override
// (constant.h: FORCE_SELECT_K).
const ForceSelectK = 0.5

// DirichletAlpha is the concentration parameter for root exploration
// noise, matching AlphaZero convention for a ~26-action space.
const DirichletAlpha = 0.3

// RootNoiseWeight is the blend weight given to Dirichlet noise at the
// root: P = (1-w)*prior + w*noise.
const RootNoiseWeight = 0.25

// Config bundles the knobs one search run needs.
type Config struct {
	Engine       inference.Engine
	RNG          *rng.Source
	CPUCT        float32
	ForceSelectK float32
	ForceSelect  bool
	AddRootNoise bool
}

// DefaultConfig returns a Config using the uniform-prior engine and the
// tuned constants above, with force-select and root noise both disabled
// (the caller enables them for self-play data generation).
func DefaultConfig(source *rng.Source) Config {
	return Config{
		Engine:       inference.NullEngine{},
		RNG:          source,
		CPUCT:        CPUCT,
		ForceSelectK: ForceSelectK,
	}
}

// Tree owns one search in progress rooted at Root.
type Tree struct {
	cfg  Config
	Root *Node
}

// New builds a Tree rooted at state. The root starts unexpanded, just
// like every other node: its first Iterate performs a rollout rather
// than an expansion, matching the original MCTNode, whose constructor
// leaves _children empty until select()'s lazy expand() call on the
// node's second visit.
func New(cfg Config, state board.GameState) (*Tree, error) {
	t := &Tree{cfg: cfg, Root: NewRoot(state)}
	t.Root.ForceScan = cfg.ForceSelect
	return t, nil
}

// expand populates n.Children from the inference engine's priors over
// n.State's legal moves plus Pass, renormalizing over just the legal
// subset the way the original engine's USE_NEURAL_NETWORK branch does
// implicitly by only ever indexing policy at legal move positions.
func (t *Tree) expand(n *Node) error {
	if len(n.Children) > 0 || n.State.Terminal {
		return nil
	}
	priors, err := t.cfg.Engine.Infer(&n.State)
	if err != nil {
		return err
	}

	moves := n.State.PossiblePlacements()
	actions := make([]int, 0, len(moves)+1)
	for _, m := range moves {
		actions = append(actions, PointToAction(m))
	}
	actions = append(actions, PassAction)

	var sum float32
	for _, a := range actions {
		sum += priors[a]
	}
	if sum <= 0 {
		sum = float32(len(actions))
		for _, a := range actions {
			priors[a] = 1
		}
	}

	for _, a := range actions {
		childState := n.State.Clone()
		childState.Move(ActionToPoint(a))
		n.Children = append(n.Children, &Node{
			Parent: n,
			Action: a,
			State:  childState,
			Prior:  priors[a] / sum,
		})
	}

	if n.IsRoot() && t.cfg.AddRootNoise && t.cfg.RNG != nil {
		t.addRootNoise()
	}
	return nil
}

// addRootNoise blends Dirichlet noise into the root's children priors,
// restricted to and renormalized over the children actually present
// (AlphaZero applies noise over the full legal-move distribution at the
// root only). Called from expand the first (and only) time the root
// itself is expanded, since the root is no longer expanded eagerly in
// New.
func (t *Tree) addRootNoise() {
	noise := t.cfg.RNG.DirichletNoise()
	n := len(t.Root.Children)
	if n == 0 {
		return
	}
	// DirichletNoise is drawn over the full 26-dim action space; restrict
	// to the legal subset present as children and renormalize.
	var sum float64
	weights := make([]float64, n)
	for i, c := range t.Root.Children {
		w := noise[c.Action]
		weights[i] = w
		sum += w
	}
	if sum <= 0 {
		return
	}
	for i, c := range t.Root.Children {
		nv := float32(weights[i] / sum)
		c.Prior = (1-RootNoiseWeight)*c.Prior + RootNoiseWeight*nv
	}
}

// Iterate runs one full select/expand/rollout/backpropagate pass from the
// root.
func (t *Tree) Iterate() error {
	return t.descend(t.Root)
}

func (t *Tree) descend(n *Node) error {
	n.Visits++

	if len(n.Children) > 0 {
		next := n.selectBestChild(t.cfg.CPUCT, t.cfg.ForceSelectK)
		return t.descend(next)
	}

	if n.State.Terminal {
		n.recordResult(winCounts(n.State.JudgeWinner()))
		return nil
	}

	if n.Visits == 1 {
		return t.rollout(n)
	}

	if err := t.expand(n); err != nil {
		return err
	}
	next := n.selectBestChild(t.cfg.CPUCT, t.cfg.ForceSelectK)
	return t.descend(next)
}

// rollout plays a random game to completion from n.State using the
// engine's priors as move weights, then backpropagates the outcome
// without expanding any nodes along the way.
func (t *Tree) rollout(n *Node) error {
	game := n.State.Clone()
	for !game.Terminal {
		priors, err := t.cfg.Engine.Infer(&game)
		if err != nil {
			return err
		}
		moves := game.PossiblePlacements()
		actions := make([]int, 0, len(moves)+1)
		weights := make([]float32, 0, len(moves)+1)
		for _, m := range moves {
			a := PointToAction(m)
			actions = append(actions, a)
			weights = append(weights, priors[a])
		}
		actions = append(actions, PassAction)
		weights = append(weights, priors[PassAction])

		action := sampleAction(actions, weights, t.cfg.RNG)
		game.Move(ActionToPoint(action))
	}
	n.recordResult(winCounts(game.JudgeWinner()))
	return nil
}

// sampleAction performs cumulative-weight sampling: draw a uniform value
// in [0, sum(weights)) and return the first action whose cumulative
// weight meets or exceeds the draw, matching the original randomAction's
// lower_bound search. Falls back to the last action if every weight is
// zero.
func sampleAction(actions []int, weights []float32, source *rng.Source) int {
	var sum float32
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 || source == nil {
		return actions[len(actions)-1]
	}
	draw := float32(source.Float64()) * sum
	var cum float32
	for i, w := range weights {
		cum += w
		if draw <= cum {
			return actions[i]
		}
	}
	return actions[len(actions)-1]
}

func winCounts(winner board.Player) (blackWins, whiteWins float32) {
	if winner == board.Black {
		return 1, 0
	}
	return 0, 1
}

// BestMove returns the move with the most root-child visits, its node,
// and the full visit-share vector (the improved policy target).
func (t *Tree) BestMove() (board.Point, *Node, [PassAction + 1]float32) {
	best := t.Root.BestChild()
	shares := t.Root.VisitShares()
	if best == nil {
		return board.Pass, nil, shares
	}
	return ActionToPoint(best.Action), best, shares
}
