package board

// group is the metadata kept for one connected group of same-color stones.
// Only the representative point's entry in groupIndex.groups is valid; the
// representative is always one of group.members.
type group struct {
	members   map[int]struct{}
	liberties map[int]struct{}
}

func newGroup(idx int) *group {
	return &group{
		members:   map[int]struct{}{idx: {}},
		liberties: map[int]struct{}{},
	}
}

func (g *group) clone() *group {
	ng := &group{
		members:   make(map[int]struct{}, len(g.members)),
		liberties: make(map[int]struct{}, len(g.liberties)),
	}
	for m := range g.members {
		ng.members[m] = struct{}{}
	}
	for l := range g.liberties {
		ng.liberties[l] = struct{}{}
	}
	return ng
}

// groupIndex is a disjoint-set over occupied board points, keyed by a
// per-group representative point index. It mirrors the original C++
// PieceGroupMap but keys groups by a flat integer index instead of (row,
// col) pairs, per the "group index as disjoint-set" design note: owner is
// a plain array lookup and group bodies live in a small map from
// representative to metadata, which on a 25-point board is cheaper than a
// map keyed by coordinate pairs and just as easy to reason about.
type groupIndex struct {
	owner  [NumPoints]int // representative index for occupied points, -1 if empty
	groups map[int]*group
}

func newGroupIndex() groupIndex {
	gi := groupIndex{groups: make(map[int]*group)}
	for i := range gi.owner {
		gi.owner[i] = -1
	}
	return gi
}

func (gi groupIndex) clone() groupIndex {
	ngi := groupIndex{owner: gi.owner, groups: make(map[int]*group, len(gi.groups))}
	for rep, g := range gi.groups {
		ngi.groups[rep] = g.clone()
	}
	return ngi
}

// libertyCount returns the liberty count of the group occupying idx, or 0
// if idx is empty.
func (gi *groupIndex) libertyCount(idx int) int {
	rep := gi.owner[idx]
	if rep < 0 {
		return 0
	}
	return len(gi.groups[rep].liberties)
}

// groupSize returns the number of stones in the group occupying idx, or 0
// if idx is empty.
func (gi *groupIndex) groupSize(idx int) int {
	rep := gi.owner[idx]
	if rep < 0 {
		return 0
	}
	return len(gi.groups[rep].members)
}

func (gi *groupIndex) removeLiberty(memberIdx, libertyIdx int) {
	rep := gi.owner[memberIdx]
	if rep < 0 {
		return
	}
	delete(gi.groups[rep].liberties, libertyIdx)
}

// addStone registers a freshly-placed stone at idx (board[idx] must already
// equal stone) into the index: creates a singleton group, merges it into
// same-color neighbor groups, records empty neighbors as liberties, and
// strips idx from opposite-color neighbor groups' liberties.
func (gi *groupIndex) addStone(b *Board, idx int, stone Stone) {
	gi.owner[idx] = idx
	gi.groups[idx] = newGroup(idx)

	for _, n := range neighborTable[idx] {
		switch b[n] {
		case Empty:
			gi.groups[gi.owner[idx]].liberties[n] = struct{}{}
		case stone:
			gi.merge(idx, n)
		default:
			gi.removeLiberty(n, idx)
		}
	}
}

// merge combines the groups owning a and b, which must both already be
// occupied by the same color. No-op if they're already the same group.
func (gi *groupIndex) merge(a, b int) {
	repA, repB := gi.owner[a], gi.owner[b]
	if repA == repB {
		return
	}
	if len(gi.groups[repA].members) < len(gi.groups[repB].members) {
		repA, repB = repB, repA
	}
	groupA, groupB := gi.groups[repA], gi.groups[repB]

	for m := range groupB.members {
		groupA.members[m] = struct{}{}
		gi.owner[m] = repA
	}
	for l := range groupB.liberties {
		groupA.liberties[l] = struct{}{}
	}
	delete(groupA.liberties, a)
	delete(groupA.liberties, b)
	delete(gi.groups, repB)
}

// removeGroup deletes every stone of the group owning rep from the board
// and restores those points as liberties of their surviving opponent
// neighbor groups.
func (gi *groupIndex) removeGroup(b *Board, rep int) {
	g := gi.groups[rep]
	captured := b[rep]
	opponent := captured.Opponent()

	for m := range g.members {
		b[m] = Empty
		gi.owner[m] = -1
		for _, n := range neighborTable[m] {
			if b[n] == opponent {
				if nrep := gi.owner[n]; nrep >= 0 {
					gi.groups[nrep].liberties[m] = struct{}{}
				}
			}
		}
	}
	delete(gi.groups, rep)
}

// removeNeighborGroups deletes every opposite-color neighbor group of idx
// that has zero liberties after stone was placed at idx.
func (gi *groupIndex) removeNeighborGroups(b *Board, idx int, stone Stone) {
	opponent := stone.Opponent()
	for _, n := range neighborTable[idx] {
		if b[n] == opponent {
			if rep := gi.owner[n]; rep >= 0 && len(gi.groups[rep].liberties) == 0 {
				gi.removeGroup(b, rep)
			}
		}
	}
}
