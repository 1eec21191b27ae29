package yaku

import (
	"riichi/engine/agari"
	"riichi/engine/meld"
	"riichi/engine/tables"
	"riichi/engine/tile"
)

type groupKind int

const (
	groupRun groupKind = iota
	groupTriplet
)

// group 一个面子；顺子记首张
type group struct {
	kind  groupKind
	first tile.TileType
	open  bool
	kan   bool
	meld  bool
}

func (g group) yaochu() bool {
	if g.kind == groupRun {
		r := g.first.Rank()
		return r == 1 || r == 7
	}
	return g.first.IsYaochu()
}

// shape 一种拆解加上和了牌所在的位置
type shape struct {
	ctx    *Context
	menzen bool
	hand   tile.HandCount // 门内
	all    tile.HandCount // 门内加副露
	win    tile.TileType

	pair    tile.TileType
	groups  []group
	wait    Wait
	chiitoi bool
	kokushi bool
	payload tables.Payload
}

func (s *shape) runs() []group {
	out := make([]group, 0, 4)
	for _, g := range s.groups {
		if g.kind == groupRun {
			out = append(out, g)
		}
	}
	return out
}

func (s *shape) triplets() []group {
	out := make([]group, 0, 4)
	for _, g := range s.groups {
		if g.kind == groupTriplet {
			out = append(out, g)
		}
	}
	return out
}

// concealedTriplets 暗刻数，含暗杠
func (s *shape) concealedTriplets() int {
	n := 0
	for _, g := range s.triplets() {
		if !g.open {
			n++
		}
	}
	return n
}

func (s *shape) kans() int {
	n := 0
	for _, g := range s.groups {
		if g.kan {
			n++
		}
	}
	return n
}

func (s *shape) hasTriplet(k tile.TileType) bool {
	for _, g := range s.triplets() {
		if g.first == k {
			return true
		}
	}
	return false
}

func (s *shape) isYakuhai(k tile.TileType) bool {
	return k.IsDragon() || k == s.ctx.RoundWind || k == s.ctx.SeatWind
}

// kui 副露减一番
func (s *shape) kui(han int) int {
	if s.menzen {
		return han
	}
	return han - 1
}

func meldGroups(melds []meld.Meld) []group {
	out := make([]group, 0, len(melds))
	for _, m := range melds {
		g := group{first: m.Type(), open: m.IsOpen(), kan: m.IsKan(), meld: true, kind: groupTriplet}
		if m.Kind == meld.Chi {
			g.kind = groupRun
		}
		out = append(out, g)
	}
	return out
}

// expand 把查表结果展开为全部 shape：每种拆解 × 和了牌可能所在的面子
func expand(ctx *Context, c agari.Completion) []*shape {
	hand := tile.CountOf(ctx.Tiles)
	base := shape{
		ctx:    ctx,
		menzen: ctx.menzen(),
		hand:   hand,
		all:    ctx.allCounts(),
		win:    ctx.WinTile.Type(),
	}

	if c.Status == agari.StatusKokushi {
		s := base
		s.kokushi = true
		s.wait = WaitTanki
		return []*shape{&s}
	}

	melds := meldGroups(ctx.Melds)
	var out []*shape
	for _, p := range c.Payloads {
		if p.Chiitoi() {
			s := base
			s.chiitoi = true
			s.pair = s.win
			s.wait = WaitTanki
			s.payload = p
			out = append(out, &s)
			continue
		}

		pair := c.Kinds[p.PairPos()]
		concealed := make([]group, 0, 4)
		for _, pos := range p.TripletPositions() {
			concealed = append(concealed, group{kind: groupTriplet, first: c.Kinds[pos]})
		}
		for _, pos := range p.RunPositions() {
			concealed = append(concealed, group{kind: groupRun, first: c.Kinds[pos]})
		}

		seen := make(map[group]bool)
		add := func(idx int, w Wait) {
			gs := make([]group, 0, 4)
			gs = append(gs, concealed...)
			if idx >= 0 {
				if seen[gs[idx]] {
					return
				}
				seen[gs[idx]] = true
				// 双碰荣和的刻子算明刻
				if w == WaitShanpon && !ctx.Tsumo {
					gs[idx].open = true
				}
			}
			gs = append(gs, melds...)
			s := base
			s.pair = pair
			s.groups = gs
			s.wait = w
			s.payload = p
			out = append(out, &s)
		}

		if pair == base.win {
			add(-1, WaitTanki)
		}
		for i, g := range concealed {
			if g.kind == groupTriplet {
				if g.first == base.win {
					add(i, WaitShanpon)
				}
				continue
			}
			if !g.first.IsNumbered() || base.win.Suit() != g.first.Suit() {
				continue
			}
			switch base.win - g.first {
			case 0:
				if g.first.Rank() == 7 {
					add(i, WaitPenchan)
				} else {
					add(i, WaitRyanmen)
				}
			case 1:
				add(i, WaitKanchan)
			case 2:
				if g.first.Rank() == 1 {
					add(i, WaitPenchan)
				} else {
					add(i, WaitRyanmen)
				}
			}
		}
	}
	return out
}
