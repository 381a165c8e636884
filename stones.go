package main

import (
	"encoding/json"

	"lectern/internal/document"
)

// decodeStones reads the moves a board holds, skipping anything that is not a
// stone on the board.
func decodeStones(moves []json.RawMessage, size int) []stone {
	stones := make([]stone, 0, len(moves))
	for _, raw := range moves {
		var s stone
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if !s.Player.Valid() || s.X < 0 || s.Y < 0 || s.X >= size || s.Y >= size {
			continue
		}
		stones = append(stones, s)
	}
	return stones
}

func encodeStone(s stone) json.RawMessage {
	data, _ := json.Marshal(s)
	return data
}

// boardGrid lays stones out by position; a later stone on the same point wins.
func boardGrid(stones []stone, size int) [][]document.Player {
	grid := make([][]document.Player, size)
	for y := range grid {
		grid[y] = make([]document.Player, size)
	}
	for _, s := range stones {
		grid[s.Y][s.X] = s.Player
	}
	return grid
}

// visibleRegion is the part of the board a variant shows.
func visibleRegion(variant document.BoardVariant, size int) region {
	last := size - 1
	half := size/2 + 1
	r := region{0, 0, last, last}
	switch variant {
	case document.VariantTop:
		r.Y1 = half - 1
	case document.VariantBottom:
		r.Y0 = last - half + 1
	case document.VariantLeft:
		r.X1 = half - 1
	case document.VariantRight:
		r.X0 = last - half + 1
	case document.VariantTopLeft:
		r.X1, r.Y1 = half-1, half-1
	case document.VariantTopRight:
		r.X0, r.Y1 = last-half+1, half-1
	case document.VariantBottomLeft:
		r.X1, r.Y0 = half-1, last-half+1
	case document.VariantBottomRight:
		r.X0, r.Y0 = last-half+1, last-half+1
	}
	return r
}

func (r region) contains(x, y int) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// starPoints returns the hoshi for the common board sizes.
func starPoints(size int) [][2]int {
	var lines []int
	switch {
	case size >= 13:
		lines = []int{3, size / 2, size - 4}
	case size >= 9:
		lines = []int{2, size - 3}
	default:
		return nil
	}
	points := make([][2]int, 0, len(lines)*len(lines))
	for _, x := range lines {
		for _, y := range lines {
			points = append(points, [2]int{x, y})
		}
	}
	if size >= 9 && size < 13 {
		points = append(points, [2]int{size / 2, size / 2})
	}
	return points
}

// placeStone appends a stone for the side to move and hands the turn over.
// Occupied points are refused.
func (m *model) placeStone() {
	board := m.selectedBoard()
	if board == nil {
		return
	}
	grid := boardGrid(decodeStones(board.Moves, board.Size), board.Size)
	if grid[m.boardY][m.boardX] != 0 {
		m.errorMessage = "Point is occupied"
		return
	}
	moves := append(append([]json.RawMessage{}, board.Moves...), encodeStone(stone{X: m.boardX, Y: m.boardY, Player: board.NextPlayer}))
	next := board.NextPlayer.Opponent()
	m.mutate(func(s *document.Store) {
		s.SetBoardState(document.SetBoardStateOptions{BlockID: board.ID, Moves: moves, NextPlayer: &next})
	})
}

// takeBackStone removes the last move and gives the turn back to its player.
func (m *model) takeBackStone() {
	board := m.selectedBoard()
	if board == nil || len(board.Moves) == 0 {
		return
	}
	last := board.Moves[len(board.Moves)-1]
	opts := document.SetBoardStateOptions{
		BlockID: board.ID,
		Moves:   append([]json.RawMessage{}, board.Moves[:len(board.Moves)-1]...),
	}
	if s := decodeStones([]json.RawMessage{last}, board.Size); len(s) == 1 {
		opts.NextPlayer = &s[0].Player
	}
	m.mutate(func(s *document.Store) { s.SetBoardState(opts) })
}

func (m *model) passTurn() {
	board := m.selectedBoard()
	if board == nil {
		return
	}
	next := board.NextPlayer.Opponent()
	m.mutate(func(s *document.Store) {
		s.SetBoardState(document.SetBoardStateOptions{BlockID: board.ID, NextPlayer: &next})
	})
}
