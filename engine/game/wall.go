package game

import (
	"math/rand"

	"riichi/engine/tile"
)

const (
	deadWallSize = 14
	dealSize     = 13 * 4
	liveWallSize = tile.TileLimit - deadWallSize - dealSize // 70
	maxKans      = 4
)

// 岭上牌从王牌末尾取，顺序与实际牌山一致
var rinshanOrder = [maxKans]int{tile.TileLimit - 2, tile.TileLimit - 1, tile.TileLimit - 4, tile.TileLimit - 3}

// Wall 一局的牌山：前 52 张配牌，中间 70 张为活牌山，最后 14 张为王牌
type Wall struct {
	tiles   [tile.TileLimit]tile.Tile
	drawn   int // 活牌山已摸张数
	left    int // 剩余可摸张数，岭上摸牌同样减一
	rinshan int
	dora    int // 已翻开的宝牌指示牌数
	rng     *rand.Rand
}

func NewWall(rng *rand.Rand) *Wall {
	return &Wall{rng: rng}
}

// Reset 洗牌并翻开第一张宝牌指示牌；stack 非空时按给定顺序摆牌
func (w *Wall) Reset(stack []tile.Tile) {
	if len(stack) == tile.TileLimit {
		copy(w.tiles[:], stack)
	} else {
		for i := range w.tiles {
			w.tiles[i] = tile.Tile(i)
		}
		w.rng.Shuffle(len(w.tiles), func(i, j int) {
			w.tiles[i], w.tiles[j] = w.tiles[j], w.tiles[i]
		})
	}
	w.drawn = 0
	w.left = liveWallSize
	w.rinshan = 0
	w.dora = 1
}

// Deal 第 i 家（相对庄家）的配牌
func (w *Wall) Deal(i int) []tile.Tile {
	out := make([]tile.Tile, 13)
	copy(out, w.tiles[13*i:13*i+13])
	return out
}

func (w *Wall) Left() int { return w.left }

// Draw 从活牌山摸一张
func (w *Wall) Draw() (tile.Tile, bool) {
	if w.left <= 0 {
		return tile.NoTile, false
	}
	t := w.tiles[dealSize+w.drawn]
	w.drawn++
	w.left--
	return t, true
}

// DrawRinshan 岭上摸牌
func (w *Wall) DrawRinshan() (tile.Tile, bool) {
	if w.rinshan >= maxKans || w.left <= 0 {
		return tile.NoTile, false
	}
	t := w.tiles[rinshanOrder[w.rinshan]]
	w.rinshan++
	w.left--
	return t, true
}

// RevealDora 杠后翻开下一张宝牌指示牌
func (w *Wall) RevealDora() (tile.Tile, bool) {
	if w.dora > maxKans {
		return tile.NoTile, false
	}
	w.dora++
	return w.doraAt(w.dora - 1), true
}

func (w *Wall) doraAt(i int) tile.Tile { return w.tiles[tile.TileLimit-6-2*i] }

func (w *Wall) uraAt(i int) tile.Tile { return w.tiles[tile.TileLimit-5-2*i] }

// DoraIndicators 已翻开的宝牌指示牌
func (w *Wall) DoraIndicators() []tile.Tile {
	out := make([]tile.Tile, w.dora)
	for i := range out {
		out[i] = w.doraAt(i)
	}
	return out
}

// UraIndicators 与表宝牌数量相同的里宝牌指示牌，只在立直和牌时使用
func (w *Wall) UraIndicators() []tile.Tile {
	out := make([]tile.Tile, w.dora)
	for i := range out {
		out[i] = w.uraAt(i)
	}
	return out
}

func kindsOf(ts []tile.Tile) []tile.TileType {
	out := make([]tile.TileType, len(ts))
	for i, t := range ts {
		out[i] = t.Type()
	}
	return out
}
