// Package diagnostics renders a finished search tree or board position
// for inspection: a Graphviz DOT dump of the MCTS tree and a PNG snapshot
// of a board position.
package diagnostics

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"

	"github.com/katalite/go5x5/mcts"
)

// TreeToDOT renders root and its descendants as a Graphviz DOT document,
// one node per tree node (unvisited children included) labeled with its
// action, visit count, and prior. No direct call site for gographviz survived retrieval from
// the teacher, so this follows the library's documented NewGraph /
// AddNode / AddEdge / String API rather than an in-repo example.
func TreeToDOT(root *mcts.Node) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("search"); err != nil {
		return "", errors.Wrap(err, "diagnostics: set graph name")
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.Wrap(err, "diagnostics: set graph directed")
	}

	id := 0
	var visit func(n *mcts.Node, parentID string) error
	visit = func(n *mcts.Node, parentID string) error {
		nodeID := fmt.Sprintf("n%d", id)
		id++
		label := nodeLabel(n)
		attrs := map[string]string{"label": fmt.Sprintf("%q", label)}
		if err := g.AddNode("search", nodeID, attrs); err != nil {
			return errors.Wrapf(err, "diagnostics: add node %s", nodeID)
		}
		if parentID != "" {
			if err := g.AddEdge(parentID, nodeID, true, nil); err != nil {
				return errors.Wrapf(err, "diagnostics: add edge %s->%s", parentID, nodeID)
			}
		}
		for _, c := range n.Children {
			if err := visit(c, nodeID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(root, ""); err != nil {
		return "", err
	}
	return g.String(), nil
}

func nodeLabel(n *mcts.Node) string {
	action := "pass"
	if n.Action >= 0 && n.Action != mcts.PassAction {
		action = mcts.ActionToPoint(n.Action).String()
	}
	return fmt.Sprintf("%s visits=%d prior=%.3f", action, n.Visits, n.Prior)
}
