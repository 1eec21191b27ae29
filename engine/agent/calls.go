package agent

import (
	"sort"

	"riichi/engine/meld"
	"riichi/engine/tile"
)

func sameSuit(a, b tile.TileType) bool {
	return a.IsNumbered() && b.IsNumbered() && a.Suit() == b.Suit()
}

// copiesOf 手里某种牌的全部实体牌
func (a *Agent) copiesOf(k tile.TileType) []tile.Tile {
	out := make([]tile.Tile, 0, 4)
	for _, t := range a.tiles {
		if t.Type() == k {
			out = append(out, t)
		}
	}
	return out
}

// chiBases 可以吃的顺子起点，已排除现物与筋的食替
func (a *Agent) chiBases(k tile.TileType) []tile.TileType {
	if a.riichi != RiichiNone || !k.IsNumbered() {
		return nil
	}
	rest := len(a.tiles) - 2
	if int(a.hand[k]) == rest {
		return nil
	}
	has := func(x tile.TileType) bool { return sameSuit(k, x) && a.hand[x] > 0 }
	suji := func(x tile.TileType) int {
		if !sameSuit(k, x) {
			return 0
		}
		return int(a.hand[x])
	}

	bases := make([]tile.TileType, 0, 3)
	r := k.Rank()
	// k 在右端
	if r >= 3 && has(k-2) && has(k-1) && int(a.hand[k])+suji(k-3) != rest {
		bases = append(bases, k-2)
	}
	// k 在中间
	if r >= 2 && r <= 8 && has(k-1) && has(k+1) {
		bases = append(bases, k-1)
	}
	// k 在左端
	if r <= 7 && has(k+1) && has(k+2) && int(a.hand[k])+suji(k+3) != rest {
		bases = append(bases, k)
	}
	return bases
}

// CheckChi 吃的全部可选组合，每组含被吃的牌；赤五与普通五视为不同选择
func (a *Agent) CheckChi(t tile.Tile) [][]tile.Tile {
	k := t.Type()
	var out [][]tile.Tile
	for _, base := range a.chiBases(k) {
		var need []tile.TileType
		for x := base; x <= base+2; x++ {
			if x != k {
				need = append(need, x)
			}
		}
		seen := map[[3]int]bool{}
		for _, p := range a.copiesOf(need[0]) {
			for _, q := range a.copiesOf(need[1]) {
				key := [3]int{int(need[0]), int(need[1]), 0}
				if p.IsRed() || q.IsRed() {
					key[2] = 1
				}
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, sortTiles([]tile.Tile{p, q, t}))
			}
		}
	}
	return out
}

// CheckPon 碰的全部可选组合
func (a *Agent) CheckPon(t tile.Tile) [][]tile.Tile {
	k := t.Type()
	if a.riichi != RiichiNone || a.hand[k] < 2 {
		return nil
	}
	// 碰完只剩同种牌时无牌可打
	if int(a.hand[k]) == len(a.tiles) {
		return nil
	}
	same := a.copiesOf(k)
	var out [][]tile.Tile
	seen := map[bool]bool{}
	for i := 0; i < len(same); i++ {
		for j := i + 1; j < len(same); j++ {
			red := same[i].IsRed() || same[j].IsRed()
			if seen[red] {
				continue
			}
			seen[red] = true
			out = append(out, sortTiles([]tile.Tile{same[i], same[j], t}))
		}
	}
	return out
}

// CheckMinkan 大明杠，立直中不可
func (a *Agent) CheckMinkan(t tile.Tile) bool {
	return a.riichi == RiichiNone && a.hand[t.Type()] == 3
}

// CheckAnkan 可暗杠的牌种；立直中只能杠刚摸到的牌且不改变听牌
func (a *Agent) CheckAnkan() []tile.TileType {
	if a.riichi != RiichiNone {
		if a.drawn == tile.NoTile {
			return nil
		}
		k := a.drawn.Type()
		if a.hand[k] != 4 {
			return nil
		}
		h := a.hand
		h[k] = 0
		if a.det.WaitingTiles(h) != a.waits {
			return nil
		}
		return []tile.TileType{k}
	}
	var out []tile.TileType
	for k := tile.Man1; k <= tile.Red; k++ {
		if a.hand[k] == 4 {
			out = append(out, k)
		}
	}
	return out
}

// CheckKakan 可加杠的牌
func (a *Agent) CheckKakan() []tile.Tile {
	var out []tile.Tile
	for _, m := range a.melds {
		if m.Kind != meld.Pon {
			continue
		}
		for _, t := range a.copiesOf(m.Type()) {
			out = append(out, t)
		}
	}
	return out
}

// Chi 吃上家的牌，tiles 含被吃的牌
func (a *Agent) Chi(tiles []tile.Tile, claimed tile.Tile) error {
	if !a.offered(a.CheckChi(claimed), tiles, claimed) {
		return ErrActionUnavailable
	}
	for _, t := range tiles {
		if t != claimed {
			a.removeTile(t)
		}
	}
	m := meld.NewChi(tiles, claimed)
	a.melds = append(a.melds, m)
	a.opened = true
	a.drawn = tile.NoTile

	k := claimed.Type()
	base := m.Type()
	a.kuikae = tile.SetOf(k)
	switch {
	case k == base && base.Rank() <= 6:
		a.kuikae = a.kuikae.Add(base + 3)
	case k == base+2 && base.Rank() >= 2:
		a.kuikae = a.kuikae.Add(base - 1)
	}
	return nil
}

// Pon from 为相对座位
func (a *Agent) Pon(tiles []tile.Tile, claimed tile.Tile, from int) error {
	if !a.offered(a.CheckPon(claimed), tiles, claimed) {
		return ErrActionUnavailable
	}
	for _, t := range tiles {
		if t != claimed {
			a.removeTile(t)
		}
	}
	a.melds = append(a.melds, meld.NewPon(tiles, claimed, from))
	a.opened = true
	a.drawn = tile.NoTile
	a.kuikae = tile.SetOf(claimed.Type())
	return nil
}

// Minkan 大明杠
func (a *Agent) Minkan(claimed tile.Tile, from int) error {
	if !a.CheckMinkan(claimed) {
		return ErrActionUnavailable
	}
	k := claimed.Type()
	for _, t := range a.copiesOf(k) {
		a.removeTile(t)
	}
	all := []tile.Tile{tile.New(k, 0), tile.New(k, 1), tile.New(k, 2), tile.New(k, 3)}
	a.melds = append(a.melds, meld.NewMinkan(all, claimed, from))
	a.opened = true
	a.drawn = tile.NoTile
	a.kans++
	return nil
}

// Ankan 暗杠不破门清
func (a *Agent) Ankan(k tile.TileType) error {
	allowed := false
	for _, x := range a.CheckAnkan() {
		if x == k {
			allowed = true
		}
	}
	if !allowed {
		return ErrActionUnavailable
	}
	for _, t := range a.copiesOf(k) {
		a.removeTile(t)
	}
	a.melds = append(a.melds, meld.NewAnkan(k))
	a.drawn = tile.NoTile
	a.kans++
	return nil
}

// Kakan 碰升级为杠，副露顺序不变
func (a *Agent) Kakan(t tile.Tile) error {
	if !a.Has(t) {
		return ErrActionUnavailable
	}
	for i, m := range a.melds {
		if m.Kind == meld.Pon && m.Type() == t.Type() {
			a.removeTile(t)
			a.melds[i] = m.Upgrade(t)
			a.drawn = tile.NoTile
			a.kans++
			return nil
		}
	}
	return ErrActionUnavailable
}

func sortTiles(ts []tile.Tile) []tile.Tile {
	out := append([]tile.Tile(nil), ts...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// offered tiles 必须是候选之一，且除被鸣的牌外都在手里
func (a *Agent) offered(cands [][]tile.Tile, tiles []tile.Tile, claimed tile.Tile) bool {
	n := 0
	for _, t := range tiles {
		if t == claimed {
			n++
			continue
		}
		if !a.Has(t) {
			return false
		}
	}
	if n != 1 {
		return false
	}
	for _, c := range cands {
		if sameKindsAndCopies(c, tiles) {
			return true
		}
	}
	return false
}

// sameKindsAndCopies 两组牌是否等价：牌种相同且赤五数相同
func sameKindsAndCopies(a, b []tile.Tile) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = sortTiles(a), sortTiles(b)
	for i := range a {
		if a[i].Type() != b[i].Type() || a[i].IsRed() != b[i].IsRed() {
			return false
		}
	}
	return true
}
