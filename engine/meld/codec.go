package meld

import (
	"errors"
	"fmt"

	"riichi/engine/tile"
)

var (
	ErrMalformedCode = errors.New("非法的副露编码")
	ErrInvalidMeld   = errors.New("副露内容不合法")
)

const (
	bitChi   = 1 << 2
	bitPon   = 1 << 3
	bitKakan = 1 << 4
	bitNuki  = 1 << 5
)

func malformed(code int, why string) error {
	return fmt.Errorf("%w: 0x%04x %s", ErrMalformedCode, code, why)
}

// Decode 解析 16 位副露编码
func Decode(code int) (Meld, error) {
	if code < 0 || code > 0xffff {
		return Meld{}, malformed(code, "超出 16 位")
	}
	from := code & 3

	switch {
	case code&bitChi != 0:
		if code&(1<<9) != 0 {
			return Meld{}, malformed(code, "保留位")
		}
		t := code >> 10
		r := t % 3
		t /= 3
		if t >= 21 {
			return Meld{}, malformed(code, "顺子起点越界")
		}
		base := tile.TileType(t/7*9 + t%7)
		tiles := []tile.Tile{
			tile.New(base, code>>3&3),
			tile.New(base+1, code>>5&3),
			tile.New(base+2, code>>7&3),
		}
		return Meld{Kind: Chi, Tiles: tiles, Claimed: tiles[r], From: from}, nil

	case code&bitPon != 0 || code&bitKakan != 0:
		if code&(3<<7) != 0 {
			return Meld{}, malformed(code, "保留位")
		}
		if code&bitPon != 0 && code&bitKakan != 0 {
			return Meld{}, malformed(code, "碰与加杠标志同时存在")
		}
		unused := code >> 5 & 3
		t := code >> 9
		r := t % 3
		kind := tile.TileType(t / 3)
		if !kind.Valid() {
			return Meld{}, malformed(code, "牌种越界")
		}
		h := make([]tile.Tile, 0, 3)
		for c := 0; c < 4; c++ {
			if c != unused {
				h = append(h, tile.New(kind, c))
			}
		}
		if code&bitPon != 0 {
			return Meld{Kind: Pon, Tiles: h, Claimed: h[r], From: from}, nil
		}
		return Meld{
			Kind:    Kakan,
			Tiles:   allCopies(kind),
			Claimed: h[r],
			Added:   tile.New(kind, unused),
			From:    from,
		}, nil

	default:
		if code&(bitNuki|3<<6) != 0 {
			return Meld{}, malformed(code, "保留位")
		}
		hai := tile.Tile(code >> 8)
		if !hai.Valid() {
			return Meld{}, malformed(code, "牌越界")
		}
		kind := Ankan
		if from != 0 {
			kind = Minkan
		}
		return Meld{Kind: kind, Tiles: allCopies(hai.Type()), Claimed: hai, From: from}, nil
	}
}

// DecodeAll 逐条解析，坏记录跳过并返回其下标
func DecodeAll(codes []int) ([]Meld, []int) {
	out := make([]Meld, 0, len(codes))
	var skipped []int
	for i, c := range codes {
		m, err := Decode(c)
		if err != nil {
			skipped = append(skipped, i)
			continue
		}
		out = append(out, m)
	}
	return out, skipped
}

// Encode Decode 的逆运算
func Encode(m Meld) (int, error) {
	if m.From < 0 || m.From > 3 {
		return 0, fmt.Errorf("%w: from=%d", ErrInvalidMeld, m.From)
	}
	switch m.Kind {
	case Chi:
		return EncodeChi(m.Tiles, m.Claimed, m.From)
	case Pon:
		return EncodePon(m.Tiles, m.Claimed, m.From)
	case Kakan:
		return EncodeKakan(m.Tiles, m.Claimed, m.Added, m.From)
	case Minkan:
		if m.From == 0 {
			return 0, fmt.Errorf("%w: 大明杠来源不能是自己", ErrInvalidMeld)
		}
		return EncodeKan(m.Tiles, m.Claimed, m.From)
	case Ankan:
		if m.From != 0 {
			return 0, fmt.Errorf("%w: 暗杠来源必须是自己", ErrInvalidMeld)
		}
		return EncodeKan(m.Tiles, m.Claimed, 0)
	default:
		return 0, fmt.Errorf("%w: kind=%d", ErrInvalidMeld, m.Kind)
	}
}

func indexOf(ts []tile.Tile, t tile.Tile) int {
	for i, x := range ts {
		if x == t {
			return i
		}
	}
	return -1
}

func EncodeChi(tiles []tile.Tile, claimed tile.Tile, from int) (int, error) {
	ts := sorted(tiles)
	if len(ts) != 3 {
		return 0, fmt.Errorf("%w: 吃需要 3 张", ErrInvalidMeld)
	}
	base := ts[0].Type()
	if !base.IsNumbered() || base.Rank() > 7 || ts[1].Type() != base+1 || ts[2].Type() != base+2 {
		return 0, fmt.Errorf("%w: 不是顺子 %v", ErrInvalidMeld, ts)
	}
	r := indexOf(ts, claimed)
	if r < 0 {
		return 0, fmt.Errorf("%w: 鸣入牌不在顺子中", ErrInvalidMeld)
	}
	t := base.Suit()*7 + base.Rank() - 1
	code := from | bitChi
	for i, x := range ts {
		code |= x.Copy() << (3 + 2*i)
	}
	return code | (t*3+r)<<10, nil
}

// ponLayout 碰与加杠共用：3 张牌的未用副本、被鸣牌下标
func ponLayout(three []tile.Tile, claimed tile.Tile) (kind tile.TileType, unused, r int, err error) {
	ts := sorted(three)
	if len(ts) != 3 || ts[0].Type() != ts[1].Type() || ts[1].Type() != ts[2].Type() {
		return 0, 0, 0, fmt.Errorf("%w: 不是刻子 %v", ErrInvalidMeld, ts)
	}
	if ts[0] == ts[1] || ts[1] == ts[2] {
		return 0, 0, 0, fmt.Errorf("%w: 重复的牌 %v", ErrInvalidMeld, ts)
	}
	if r = indexOf(ts, claimed); r < 0 {
		return 0, 0, 0, fmt.Errorf("%w: 鸣入牌不在刻子中", ErrInvalidMeld)
	}
	unused = 6 - ts[0].Copy() - ts[1].Copy() - ts[2].Copy()
	return ts[0].Type(), unused, r, nil
}

func EncodePon(tiles []tile.Tile, claimed tile.Tile, from int) (int, error) {
	kind, unused, r, err := ponLayout(tiles, claimed)
	if err != nil {
		return 0, err
	}
	return from | bitPon | unused<<5 | (int(kind)*3+r)<<9, nil
}

// EncodeKakan tiles 为 4 张，added 为补上的那张
func EncodeKakan(tiles []tile.Tile, claimed, added tile.Tile, from int) (int, error) {
	ts := sorted(tiles)
	i := indexOf(ts, added)
	if len(ts) != 4 || i < 0 {
		return 0, fmt.Errorf("%w: 加杠需要 4 张且包含补杠牌", ErrInvalidMeld)
	}
	three := append(append([]tile.Tile(nil), ts[:i]...), ts[i+1:]...)
	kind, unused, r, err := ponLayout(three, claimed)
	if err != nil {
		return 0, err
	}
	return from | bitKakan | unused<<5 | (int(kind)*3+r)<<9, nil
}

// EncodeKan 暗杠/大明杠，anchor 写入高 8 位
func EncodeKan(tiles []tile.Tile, anchor tile.Tile, from int) (int, error) {
	ts := sorted(tiles)
	if len(ts) != 4 || indexOf(ts, anchor) < 0 {
		return 0, fmt.Errorf("%w: 杠需要 4 张且包含锚点牌", ErrInvalidMeld)
	}
	for i, x := range ts {
		if x.Type() != anchor.Type() || x.Copy() != i {
			return 0, fmt.Errorf("%w: 杠必须是同种 4 张 %v", ErrInvalidMeld, ts)
		}
	}
	return from | int(anchor)<<8, nil
}
