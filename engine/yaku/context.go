package yaku

import (
	"riichi/engine/meld"
	"riichi/engine/tile"
)

// Special 和牌时的特殊情形
type Special int

const (
	SpecialNone    Special = iota
	SpecialRinshan         // 岭上开花
	SpecialChankan         // 抢杠
	SpecialLast            // 海底/河底
)

// Wait 听牌形式
type Wait int

const (
	WaitRyanmen Wait = iota // 两面
	WaitKanchan             // 嵌张
	WaitPenchan             // 边张
	WaitTanki               // 单骑
	WaitShanpon             // 双碰
)

func (w Wait) String() string {
	switch w {
	case WaitRyanmen:
		return "两面"
	case WaitKanchan:
		return "嵌张"
	case WaitPenchan:
		return "边张"
	case WaitTanki:
		return "单骑"
	case WaitShanpon:
		return "双碰"
	default:
		return "未知"
	}
}

// Context 一次和牌的全部输入，计算过程不修改它
type Context struct {
	// Tiles 门内的牌，含和了牌
	Tiles   []tile.Tile
	Melds   []meld.Meld
	WinTile tile.Tile
	Tsumo   bool

	// Riichi 0 未立直，1 立直，2 两立直
	Riichi  int
	Ippatsu bool
	Special Special
	// FirstTurn 第一巡且无人鸣牌时的自摸，天和/地和
	FirstTurn bool
	Dealer    bool

	RoundWind tile.TileType
	SeatWind  tile.TileType
	// Dora/UraDora 为指示牌
	Dora    []tile.TileType
	UraDora []tile.TileType

	NoKuitan bool
	NoAka    bool
}

func (c *Context) menzen() bool {
	for _, m := range c.Melds {
		if m.IsOpen() {
			return false
		}
	}
	return true
}

// allCounts 门内加副露的全部牌，杠计 4 张
func (c *Context) allCounts() tile.HandCount {
	h := tile.CountOf(c.Tiles)
	for _, m := range c.Melds {
		for _, t := range m.Tiles {
			h[t.Type()]++
		}
	}
	return h
}

func (c *Context) countDora() (dora, ura, aka int) {
	all := c.allCounts()
	for _, ind := range c.Dora {
		dora += int(all[tile.DoraOf(ind)])
	}
	if c.Riichi > 0 {
		for _, ind := range c.UraDora {
			ura += int(all[tile.DoraOf(ind)])
		}
	}
	if !c.NoAka {
		for _, t := range c.Tiles {
			if t.IsRed() {
				aka++
			}
		}
		for _, m := range c.Melds {
			for _, t := range m.Tiles {
				if t.IsRed() {
					aka++
				}
			}
		}
	}
	return dora, ura, aka
}
