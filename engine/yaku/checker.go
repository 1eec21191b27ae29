package yaku

import (
	"sort"

	"riichi/engine/tile"
)

// yakuChecker 返回 (番数, 役满倍数)
type yakuChecker interface {
	ID() Yaku
	Check(s *shape) (int, int)
}

type yakuCheckerFunc struct {
	id    Yaku
	check func(s *shape) (int, int)
}

func (f yakuCheckerFunc) ID() Yaku { return f.id }

func (f yakuCheckerFunc) Check(s *shape) (int, int) { return f.check(s) }

func han(n int, ok bool) (int, int) {
	if ok {
		return n, 0
	}
	return 0, 0
}

func yakuman(n int, ok bool) (int, int) {
	if ok {
		return 0, n
	}
	return 0, 0
}

var yakumanRegistry = []yakuChecker{
	yakuCheckerFunc{id: YakuKokushi, check: func(s *shape) (int, int) {
		return yakuman(1, s.kokushi && s.hand[s.win] != 2)
	}},
	yakuCheckerFunc{id: YakuKokushi13, check: func(s *shape) (int, int) {
		return yakuman(2, s.kokushi && s.hand[s.win] == 2)
	}},
	yakuCheckerFunc{id: YakuSuuankou, check: func(s *shape) (int, int) {
		return yakuman(1, s.concealedTriplets() == 4 && s.wait != WaitTanki)
	}},
	yakuCheckerFunc{id: YakuSuuankouTanki, check: func(s *shape) (int, int) {
		return yakuman(2, s.concealedTriplets() == 4 && s.wait == WaitTanki)
	}},
	yakuCheckerFunc{id: YakuDaisangen, check: func(s *shape) (int, int) {
		return yakuman(1, s.dragonTriplets() == 3)
	}},
	yakuCheckerFunc{id: YakuShousuushi, check: func(s *shape) (int, int) {
		return yakuman(1, s.windTriplets() == 3 && s.pair.IsWind())
	}},
	yakuCheckerFunc{id: YakuDaisuushi, check: func(s *shape) (int, int) {
		return yakuman(2, s.windTriplets() == 4)
	}},
	yakuCheckerFunc{id: YakuTsuuiisou, check: func(s *shape) (int, int) {
		return yakuman(1, s.allOf(tile.TileType.IsHonor))
	}},
	yakuCheckerFunc{id: YakuChinroutou, check: func(s *shape) (int, int) {
		return yakuman(1, !s.kokushi && s.allOf(tile.TileType.IsTerminal))
	}},
	yakuCheckerFunc{id: YakuRyuuiisou, check: func(s *shape) (int, int) {
		return yakuman(1, s.allOf(isGreen))
	}},
	yakuCheckerFunc{id: YakuChuuren, check: func(s *shape) (int, int) {
		return yakuman(1, s.chuuren() && !s.chuurenNine())
	}},
	yakuCheckerFunc{id: YakuJunseiChuuren, check: func(s *shape) (int, int) {
		return yakuman(2, s.chuuren() && s.chuurenNine())
	}},
	yakuCheckerFunc{id: YakuSuukantsu, check: func(s *shape) (int, int) {
		return yakuman(1, s.kans() == 4)
	}},
	yakuCheckerFunc{id: YakuTenhou, check: func(s *shape) (int, int) {
		return yakuman(1, s.firstDraw() && s.ctx.Dealer)
	}},
	yakuCheckerFunc{id: YakuChiihou, check: func(s *shape) (int, int) {
		return yakuman(1, s.firstDraw() && !s.ctx.Dealer)
	}},
}

var yakuRegistry = []yakuChecker{
	// 基本役
	yakuCheckerFunc{id: YakuRiichi, check: func(s *shape) (int, int) { return han(1, s.ctx.Riichi == 1) }},
	yakuCheckerFunc{id: YakuDoubleRiichi, check: func(s *shape) (int, int) { return han(2, s.ctx.Riichi == 2) }},
	yakuCheckerFunc{id: YakuIppatsu, check: func(s *shape) (int, int) {
		return han(1, s.ctx.Riichi > 0 && s.ctx.Ippatsu)
	}},
	yakuCheckerFunc{id: YakuTsumo, check: func(s *shape) (int, int) { return han(1, s.ctx.Tsumo && s.menzen) }},
	yakuCheckerFunc{id: YakuPinfu, check: func(s *shape) (int, int) { return han(1, s.pinfu()) }},
	yakuCheckerFunc{id: YakuIipeikou, check: func(s *shape) (int, int) {
		return han(1, s.menzen && s.peikou() == 1)
	}},
	yakuCheckerFunc{id: YakuRyanpeikou, check: func(s *shape) (int, int) {
		return han(3, s.menzen && s.peikou() == 2)
	}},
	yakuCheckerFunc{id: YakuTanyao, check: func(s *shape) (int, int) {
		if !s.menzen && s.ctx.NoKuitan {
			return 0, 0
		}
		return han(1, s.allOf(func(k tile.TileType) bool { return !k.IsYaochu() }))
	}},

	// 役牌系
	yakuCheckerFunc{id: YakuHaku, check: func(s *shape) (int, int) { return han(1, s.hasTriplet(tile.White)) }},
	yakuCheckerFunc{id: YakuHatsu, check: func(s *shape) (int, int) { return han(1, s.hasTriplet(tile.Green)) }},
	yakuCheckerFunc{id: YakuChun, check: func(s *shape) (int, int) { return han(1, s.hasTriplet(tile.Red)) }},
	yakuCheckerFunc{id: YakuBakaze, check: func(s *shape) (int, int) { return han(1, s.hasTriplet(s.ctx.RoundWind)) }},
	yakuCheckerFunc{id: YakuJikaze, check: func(s *shape) (int, int) { return han(1, s.hasTriplet(s.ctx.SeatWind)) }},

	// 偶然役
	yakuCheckerFunc{id: YakuRinshan, check: func(s *shape) (int, int) { return han(1, s.ctx.Special == SpecialRinshan) }},
	yakuCheckerFunc{id: YakuChankan, check: func(s *shape) (int, int) { return han(1, s.ctx.Special == SpecialChankan) }},
	yakuCheckerFunc{id: YakuHaitei, check: func(s *shape) (int, int) {
		return han(1, s.ctx.Special == SpecialLast && s.ctx.Tsumo)
	}},
	yakuCheckerFunc{id: YakuHoutei, check: func(s *shape) (int, int) {
		return han(1, s.ctx.Special == SpecialLast && !s.ctx.Tsumo)
	}},

	// 顺子系
	yakuCheckerFunc{id: YakuSanshoku, check: func(s *shape) (int, int) { return han(s.kui(2), s.sanshoku()) }},
	yakuCheckerFunc{id: YakuIttsu, check: func(s *shape) (int, int) { return han(s.kui(2), s.ittsu()) }},

	// 带幺系
	yakuCheckerFunc{id: YakuChanta, check: func(s *shape) (int, int) {
		return han(s.kui(2), s.chanta() && s.hasHonor())
	}},
	yakuCheckerFunc{id: YakuJunchan, check: func(s *shape) (int, int) {
		return han(s.kui(3), s.chanta() && !s.hasHonor())
	}},

	// 刻子系
	yakuCheckerFunc{id: YakuToitoi, check: func(s *shape) (int, int) { return han(2, len(s.triplets()) == 4) }},
	yakuCheckerFunc{id: YakuSanankou, check: func(s *shape) (int, int) { return han(2, s.concealedTriplets() == 3) }},
	yakuCheckerFunc{id: YakuSankantsu, check: func(s *shape) (int, int) { return han(2, s.kans() == 3) }},
	yakuCheckerFunc{id: YakuSanshokuDokou, check: func(s *shape) (int, int) { return han(2, s.sanshokuDokou()) }},
	yakuCheckerFunc{id: YakuShousangen, check: func(s *shape) (int, int) {
		return han(2, s.dragonTriplets() == 2 && s.pair.IsDragon())
	}},
	yakuCheckerFunc{id: YakuHonroutou, check: func(s *shape) (int, int) {
		return han(2, s.allOf(tile.TileType.IsYaochu) && s.hasHonor())
	}},

	// 染手
	yakuCheckerFunc{id: YakuHonitsu, check: func(s *shape) (int, int) {
		return han(s.kui(3), s.oneSuit() && s.hasHonor())
	}},
	yakuCheckerFunc{id: YakuChinitsu, check: func(s *shape) (int, int) {
		return han(s.kui(6), s.oneSuit() && !s.hasHonor())
	}},

	yakuCheckerFunc{id: YakuChiitoi, check: func(s *shape) (int, int) { return han(2, s.chiitoi) }},
}

func isGreen(k tile.TileType) bool {
	switch k {
	case tile.So2, tile.So3, tile.So4, tile.So6, tile.So8, tile.Green:
		return true
	}
	return false
}

// allOf 全部牌（含副露）都满足 pred
func (s *shape) allOf(pred func(tile.TileType) bool) bool {
	for k, c := range s.all {
		if c > 0 && !pred(tile.TileType(k)) {
			return false
		}
	}
	return true
}

func (s *shape) hasHonor() bool {
	for k := tile.East; k <= tile.Red; k++ {
		if s.all[k] > 0 {
			return true
		}
	}
	return false
}

// oneSuit 数牌只有一种花色，且至少有数牌
func (s *shape) oneSuit() bool {
	suit := -1
	for k := tile.Man1; k <= tile.So9; k++ {
		if s.all[k] == 0 {
			continue
		}
		if suit >= 0 && k.Suit() != suit {
			return false
		}
		suit = k.Suit()
	}
	return suit >= 0
}

func (s *shape) dragonTriplets() int {
	n := 0
	for _, g := range s.triplets() {
		if g.first.IsDragon() {
			n++
		}
	}
	return n
}

func (s *shape) windTriplets() int {
	n := 0
	for _, g := range s.triplets() {
		if g.first.IsWind() {
			n++
		}
	}
	return n
}

func (s *shape) firstDraw() bool {
	return s.ctx.FirstTurn && s.ctx.Tsumo && len(s.ctx.Melds) == 0
}

// pinfu 门清、4 顺子、雀头非役牌、两面
func (s *shape) pinfu() bool {
	if len(s.ctx.Melds) != 0 || s.chiitoi || s.kokushi {
		return false
	}
	return len(s.runs()) == 4 && !s.isYakuhai(s.pair) && s.wait == WaitRyanmen
}

// peikou 门内相同顺子的组数，两组为二杯口
func (s *shape) peikou() int {
	var firsts []int
	for _, g := range s.runs() {
		if !g.meld {
			firsts = append(firsts, int(g.first))
		}
	}
	sort.Ints(firsts)
	n := 0
	for i := 1; i < len(firsts); i++ {
		if firsts[i] == firsts[i-1] {
			n++
			i++
		}
	}
	return n
}

func (s *shape) sanshoku() bool {
	var seen [7][3]bool
	for _, g := range s.runs() {
		seen[g.first.Rank()-1][g.first.Suit()] = true
	}
	for _, r := range seen {
		if r[0] && r[1] && r[2] {
			return true
		}
	}
	return false
}

func (s *shape) ittsu() bool {
	var seen [3][9]bool
	for _, g := range s.runs() {
		seen[g.first.Suit()][g.first.Rank()-1] = true
	}
	for _, suit := range seen {
		if suit[0] && suit[3] && suit[6] {
			return true
		}
	}
	return false
}

func (s *shape) sanshokuDokou() bool {
	var seen [9][3]bool
	for _, g := range s.triplets() {
		if g.first.IsNumbered() {
			seen[g.first.Rank()-1][g.first.Suit()] = true
		}
	}
	for _, r := range seen {
		if r[0] && r[1] && r[2] {
			return true
		}
	}
	return false
}

// chanta 每个面子与雀头都带幺九，且至少一个顺子
func (s *shape) chanta() bool {
	if s.chiitoi || s.kokushi || len(s.runs()) == 0 || !s.pair.IsYaochu() {
		return false
	}
	for _, g := range s.groups {
		if !g.yaochu() {
			return false
		}
	}
	return true
}

// chuuren 门清 1112345678999 加一张同花色
func (s *shape) chuuren() bool {
	return len(s.ctx.Melds) == 0 && s.payload.Chuuren()
}

// chuurenNine 和了前正好是九面听
func (s *shape) chuurenNine() bool {
	need := uint8(2)
	if r := s.win.Rank(); r == 1 || r == 9 {
		need = 4
	}
	return s.hand[s.win] == need
}
