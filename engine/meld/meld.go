package meld

import (
	"fmt"
	"sort"

	"riichi/engine/tile"
)

// Kind 副露类型
type Kind int

const (
	Chi    Kind = iota // 吃
	Pon                // 碰
	Kakan              // 加杠
	Minkan             // 大明杠
	Ankan              // 暗杠
)

func (k Kind) String() string {
	switch k {
	case Chi:
		return "chi"
	case Pon:
		return "pon"
	case Kakan:
		return "kakan"
	case Minkan:
		return "minkan"
	case Ankan:
		return "ankan"
	default:
		return "unknown"
	}
}

// Meld 一组副露
type Meld struct {
	Kind Kind
	// Tiles 升序，吃碰 3 张，杠 4 张
	Tiles []tile.Tile
	// Claimed 吃碰明杠为鸣入的牌；加杠为原先碰入的牌；暗杠为编码用的锚点牌
	Claimed tile.Tile
	// Added 加杠补上的牌
	Added tile.Tile
	// From 相对座位：0 自己，1 下家，2 对家，3 上家
	From int
}

func NewChi(tiles []tile.Tile, claimed tile.Tile) Meld {
	return Meld{Kind: Chi, Tiles: sorted(tiles), Claimed: claimed, From: 3}
}

func NewPon(tiles []tile.Tile, claimed tile.Tile, from int) Meld {
	return Meld{Kind: Pon, Tiles: sorted(tiles), Claimed: claimed, From: from}
}

func NewMinkan(tiles []tile.Tile, claimed tile.Tile, from int) Meld {
	return Meld{Kind: Minkan, Tiles: sorted(tiles), Claimed: claimed, From: from}
}

// NewAnkan 锚点取该种的第 0 张
func NewAnkan(t tile.TileType) Meld {
	return Meld{Kind: Ankan, Tiles: allCopies(t), Claimed: tile.New(t, 0)}
}

// Upgrade 碰升级为加杠
func (m Meld) Upgrade(added tile.Tile) Meld {
	return Meld{
		Kind:    Kakan,
		Tiles:   sorted(append(append([]tile.Tile(nil), m.Tiles...), added)),
		Claimed: m.Claimed,
		Added:   added,
		From:    m.From,
	}
}

func (m Meld) Type() tile.TileType {
	if len(m.Tiles) == 0 {
		return -1
	}
	return m.Tiles[0].Type()
}

func (m Meld) IsKan() bool {
	return m.Kind == Kakan || m.Kind == Minkan || m.Kind == Ankan
}

// IsOpen 暗杠不破门清
func (m Meld) IsOpen() bool {
	return m.Kind != Ankan
}

func (m Meld) String() string {
	s := m.Kind.String() + "["
	for _, t := range m.Tiles {
		s += t.String()
	}
	return fmt.Sprintf("%s] from=%d", s, m.From)
}

func sorted(ts []tile.Tile) []tile.Tile {
	out := append([]tile.Tile(nil), ts...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func allCopies(t tile.TileType) []tile.Tile {
	return []tile.Tile{tile.New(t, 0), tile.New(t, 1), tile.New(t, 2), tile.New(t, 3)}
}
