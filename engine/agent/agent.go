package agent

import (
	"errors"
	"sort"

	"riichi/engine/agari"
	"riichi/engine/meld"
	"riichi/engine/tile"
)

var ErrActionUnavailable = errors.New("没有这个操作")

// RiichiState 立直状态
type RiichiState int

const (
	RiichiNone   RiichiState = iota // 未立直
	RiichiSingle                    // 立直
	RiichiDouble                    // 两立直
)

// RiichiStake 立直棒，单位 100 点
const RiichiStake = 10

// Agent 一个座位在一局内的全部状态，只由 Table 单线程修改
type Agent struct {
	Seat  int
	Wind  tile.Wind
	Score int // 单位 100 点

	det *agari.Detector

	tiles    []tile.Tile // 手牌，升序
	hand     tile.HandCount
	handBak  tile.HandCount // 上次计算听牌时的手牌
	melds    []meld.Meld
	discards []tile.Tile // 全部舍牌
	river    []tile.Tile // 没被鸣走的舍牌
	drawn    tile.Tile

	riichi     RiichiState
	riichiTurn int       // 立直时的舍牌巡目，未立直为 -1
	riichiTile tile.Tile // 第一张没被鸣走的立直宣言牌
	ippatsu    bool
	opened     bool
	waits      tile.KindSet

	discardFuriten bool // 舍牌振听
	riichiFuriten  bool // 立直振听
	roundFuriten   bool // 同巡振听

	nagashi bool
	kans    int
	kuikae  tile.KindSet // 食替禁止的牌种
}

// New 配牌后创建，13 张时立即计算听牌
func New(det *agari.Detector, seat int, wind tile.Wind, score int, tiles []tile.Tile) *Agent {
	a := &Agent{
		Seat:       seat,
		Wind:       wind,
		Score:      score,
		det:        det,
		tiles:      make([]tile.Tile, 0, 14),
		melds:      make([]meld.Meld, 0, 4),
		discards:   make([]tile.Tile, 0, 24),
		river:      make([]tile.Tile, 0, 24),
		drawn:      tile.NoTile,
		riichiTurn: -1,
		riichiTile: tile.NoTile,
		nagashi:    true,
	}
	for _, t := range tiles {
		a.addTile(t)
	}
	a.handBak = a.hand
	if len(a.tiles) == 13 && det.IsTenpai(a.hand) {
		a.waits = det.WaitingTiles(a.hand)
	}
	return a
}

func (a *Agent) addTile(t tile.Tile) {
	i := sort.Search(len(a.tiles), func(i int) bool { return a.tiles[i] >= t })
	a.tiles = append(a.tiles, 0)
	copy(a.tiles[i+1:], a.tiles[i:])
	a.tiles[i] = t
	a.hand[t.Type()]++
}

func (a *Agent) removeTile(t tile.Tile) bool {
	i := sort.Search(len(a.tiles), func(i int) bool { return a.tiles[i] >= t })
	if i == len(a.tiles) || a.tiles[i] != t {
		return false
	}
	a.tiles = append(a.tiles[:i], a.tiles[i+1:]...)
	a.hand[t.Type()]--
	return true
}

func (a *Agent) Has(t tile.Tile) bool {
	i := sort.Search(len(a.tiles), func(i int) bool { return a.tiles[i] >= t })
	return i < len(a.tiles) && a.tiles[i] == t
}

func (a *Agent) Tiles() []tile.Tile { return append([]tile.Tile(nil), a.tiles...) }

func (a *Agent) Hand() tile.HandCount { return a.hand }

func (a *Agent) Melds() []meld.Meld { return append([]meld.Meld(nil), a.melds...) }

func (a *Agent) Discards() []tile.Tile { return append([]tile.Tile(nil), a.discards...) }

func (a *Agent) River() []tile.Tile { return append([]tile.Tile(nil), a.river...) }

// Drawn 刚摸到的牌，出牌或鸣牌后为 NoTile
func (a *Agent) Drawn() tile.Tile { return a.drawn }

func (a *Agent) Riichi() RiichiState { return a.riichi }

func (a *Agent) RiichiTurn() int { return a.riichiTurn }

func (a *Agent) RiichiTile() tile.Tile { return a.riichiTile }

func (a *Agent) Ippatsu() bool { return a.ippatsu }

func (a *Agent) IsOpen() bool { return a.opened }

func (a *Agent) Waits() tile.KindSet { return a.waits }

func (a *Agent) Kans() int { return a.kans }

func (a *Agent) Kuikae() tile.KindSet { return a.kuikae }

func (a *Agent) Furiten() bool {
	return a.discardFuriten || a.riichiFuriten || a.roundFuriten
}

func (a *Agent) DiscardFuriten() bool { return a.discardFuriten }

func (a *Agent) RiichiFuriten() bool { return a.riichiFuriten }

func (a *Agent) RoundFuriten() bool { return a.roundFuriten }

// NagashiEligible 流局满贯：舍牌全是幺九且没有被鸣走过
func (a *Agent) NagashiEligible() bool {
	if !a.nagashi || len(a.discards) == 0 {
		return false
	}
	for _, t := range a.discards {
		if !t.Type().IsYaochu() {
			return false
		}
	}
	return true
}

// Draw 摸牌（含岭上）
func (a *Agent) Draw(t tile.Tile) {
	a.addTile(t)
	a.drawn = t
}

// Discard 出牌并重算听牌与振听
func (a *Agent) Discard(t tile.Tile) error {
	if !a.Has(t) {
		return ErrActionUnavailable
	}
	if a.kuikae.Has(t.Type()) {
		return ErrActionUnavailable
	}
	if a.riichi != RiichiNone && t != a.drawn {
		return ErrActionUnavailable
	}
	a.removeTile(t)
	a.discards = append(a.discards, t)
	a.river = append(a.river, t)
	a.drawn = tile.NoTile
	a.kuikae = 0
	a.roundFuriten = false

	k := t.Type()
	if a.hand == a.handBak {
		if a.waits.Has(k) {
			a.discardFuriten = true
		}
		return nil
	}
	a.handBak = a.hand
	if a.riichi != RiichiNone {
		return nil
	}
	if a.det.IsTenpai(a.hand) {
		a.waits = a.det.WaitingTiles(a.hand)
		a.discardFuriten = false
		for _, d := range a.discards {
			if a.waits.Has(d.Type()) {
				a.discardFuriten = true
				break
			}
		}
	} else {
		a.waits = 0
		a.discardFuriten = false
	}
	return nil
}

// ResolveDiscard 他家对本家最后一张舍牌的处理结果
func (a *Agent) ResolveDiscard(called bool) {
	if len(a.river) == 0 {
		return
	}
	if called {
		a.river = a.river[:len(a.river)-1]
		a.nagashi = false
		return
	}
	if a.riichi != RiichiNone && a.riichiTile == tile.NoTile {
		a.riichiTile = a.river[len(a.river)-1]
	}
}

// CanDeclareRiichi 门清、未立直、点棒够、牌山剩余至少 4 张且有听牌打法
func (a *Agent) CanDeclareRiichi(left int) bool {
	if a.opened || a.riichi != RiichiNone || a.Score < RiichiStake || left < 4 {
		return false
	}
	if len(a.tiles)%3 != 2 {
		return false
	}
	return a.det.CanDeclareRiichi(a.hand)
}

// RiichiDiscards 宣言立直时允许打出的牌
func (a *Agent) RiichiDiscards() []tile.Tile {
	kinds := a.det.RiichiDiscards(a.hand)
	out := make([]tile.Tile, 0, len(a.tiles))
	for _, t := range a.tiles {
		if kinds.Has(t.Type()) {
			out = append(out, t)
		}
	}
	return out
}

// DeclareRiichi 宣言牌打出且无人荣和后生效
func (a *Agent) DeclareRiichi(double bool) bool {
	if a.riichi != RiichiNone {
		return false
	}
	a.riichi = RiichiSingle
	if double {
		a.riichi = RiichiDouble
	}
	a.ippatsu = true
	a.riichiTurn = len(a.discards)
	a.Score -= RiichiStake
	a.waits = a.det.WaitingTiles(a.hand)
	return true
}

func (a *Agent) ClearIppatsu() { a.ippatsu = false }

// PassWin 见逃：荣和见逃进入同巡振听，立直中见逃进入立直振听
func (a *Agent) PassWin(ron bool) {
	if ron {
		a.roundFuriten = true
	}
	if a.riichi != RiichiNone {
		a.riichiFuriten = true
	}
}

// CanRon 振听时不能荣和
func (a *Agent) CanRon(k tile.TileType) bool {
	return !a.Furiten() && a.waits.Has(k)
}

// CanTsumo 振听不影响自摸
func (a *Agent) CanTsumo() bool {
	if a.drawn == tile.NoTile {
		return false
	}
	return a.det.IsComplete(a.hand).Complete()
}

// RonHand 加上他家的牌之后的手牌
func (a *Agent) RonHand(t tile.Tile) tile.HandCount {
	h := a.hand
	h[t.Type()]++
	return h
}
