// Command selfplay runs a single self-play game using recorded MCTS
// moves and prints each move along with the final result.
package main

import (
	"flag"
	"fmt"
	"log"

	go5x5 "github.com/katalite/go5x5"
	"github.com/katalite/go5x5/board"
	"github.com/katalite/go5x5/inference"
)

var seed = flag.Uint64("seed", 1, "random seed for move sampling and root noise")

func main() {
	flag.Parse()

	e, err := go5x5.New(go5x5.Config{
		Engine:      inference.NewZeroLinearEngine(),
		Seed:        *seed,
		ForceSelect: true,
	})
	if err != nil {
		log.Fatalf("selfplay: building engine: %v", err)
	}

	state := board.NewGame()
	for !state.Terminal {
		move, _, _, err := e.RecordedMove(state)
		if err != nil {
			log.Fatalf("selfplay: recorded move: %v", err)
		}
		if !state.Move(move) {
			log.Fatalf("selfplay: engine proposed illegal move %v", move)
		}
		fmt.Printf("move %d: %s plays %s\n", state.MoveCount, state.ToMove.Opponent(), move)
	}

	fmt.Printf("game over after %d moves, winner: %s\n", state.MoveCount, state.JudgeWinner())
}
