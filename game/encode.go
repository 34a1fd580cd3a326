package game

import "gorgonia.org/tensor"

// FeaturePlanes is the number of planes EncodeFeatures produces: own
// stones, opponent stones, side to move, and the capture-race plane.
const FeaturePlanes = 4

// EncodeFeatures flattens the state into FeaturePlanes float32 planes of
// boardSize*boardSize cells each, from the current player's
// perspective:
//
//	plane 0: 1 where the current player has a stone
//	plane 1: 1 where the opponent has a stone
//	plane 2: constant 1 for player 1 to move, -1 for player -1
//	plane 3: constant capture differential, scaled by the win threshold
//
// The encoding reads the board only; it never mutates the state.
func EncodeFeatures(gs *GameState) []float32 {
	n := gs.BoardSize() * gs.BoardSize()
	features := make([]float32, FeaturePlanes*n)

	player := gs.CurrentPlayer()
	own, opp := features[:n], features[n:2*n]
	for _, stone := range gs.Board().AllStones() {
		cell := stone.Row*gs.BoardSize() + stone.Col
		if stone.Player == player {
			own[cell] = 1
		} else {
			opp[cell] = 1
		}
	}

	toMove := features[2*n : 3*n]
	for i := range toMove {
		toMove[i] = float32(player)
	}

	captureDiff := float32(gs.Captures(player)-gs.Captures(-player)) / float32(gs.CapturesToWin())
	race := features[3*n:]
	for i := range race {
		race[i] = captureDiff
	}

	return features
}

// FeatureTensor wraps the encoded planes in a (planes, rows, cols)
// dense tensor, the board view a learned evaluator consumes.
func FeatureTensor(gs *GameState) tensor.Tensor {
	size := gs.BoardSize()
	return tensor.New(
		tensor.WithShape(FeaturePlanes, size, size),
		tensor.WithBacking(EncodeFeatures(gs)),
	)
}
