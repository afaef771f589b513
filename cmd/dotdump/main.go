// Command dotdump runs a fixed number of MCTS iterations from a fresh
// position and writes the resulting search tree as a Graphviz DOT
// document to stdout.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/katalite/go5x5/board"
	"github.com/katalite/go5x5/diagnostics"
	"github.com/katalite/go5x5/inference"
	"github.com/katalite/go5x5/mcts"
	"github.com/katalite/go5x5/rng"
)

var (
	steps = flag.Int("steps", 64, "number of MCTS iterations to run before dumping")
	seed  = flag.Uint64("seed", 1, "random seed")
)

func main() {
	flag.Parse()

	cfg := mcts.DefaultConfig(rng.New(*seed, inference.ActionSpace, mcts.DirichletAlpha))
	tree, err := mcts.New(cfg, board.NewGame())
	if err != nil {
		log.Fatalf("dotdump: building tree: %v", err)
	}
	for i := 0; i < *steps; i++ {
		if err := tree.Iterate(); err != nil {
			log.Fatalf("dotdump: iterating: %v", err)
		}
	}

	dot, err := diagnostics.TreeToDOT(tree.Root)
	if err != nil {
		log.Fatalf("dotdump: rendering tree: %v", err)
	}
	fmt.Println(dot)
}
