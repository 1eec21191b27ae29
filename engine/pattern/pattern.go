// Package pattern 把手牌计数规整为与位置无关的形状，并编码为查表键。
//
// 形状按牌种升序扫描：上一种计数为 0、花色变化或字牌时开启新组，
// 每种字牌单独成组。同形状的手牌得到同一个键。
package pattern

import "riichi/engine/tile"

// Pattern 连续计数段
type Pattern [][]uint8

// ToPattern to_pattern
func ToPattern(h *tile.HandCount) Pattern {
	var p Pattern
	var cur []uint8
	prevZero := true
	for k := tile.Man1; k <= tile.Red; k++ {
		c := h[k]
		if c == 0 {
			prevZero = true
			continue
		}
		newGroup := prevZero || k.IsHonor() || (k.Rank() == 1)
		if newGroup && len(cur) > 0 {
			p = append(p, cur)
			cur = nil
		}
		cur = append(cur, c)
		prevZero = false
	}
	if len(cur) > 0 {
		p = append(p, cur)
	}
	return p
}

// Kinds 与 Flatten 对齐的位置到牌种映射
func Kinds(h *tile.HandCount) []tile.TileType {
	out := make([]tile.TileType, 0, 14)
	for k := tile.Man1; k <= tile.Red; k++ {
		if h[k] > 0 {
			out = append(out, k)
		}
	}
	return out
}

// Key calc_key
func Key(p Pattern) uint32 {
	var ret uint32
	length := -1
	for _, g := range p {
		for _, c := range g {
			length++
			switch c {
			case 2:
				ret |= 0b11 << length
				length += 2
			case 3:
				ret |= 0b1111 << length
				length += 4
			case 4:
				ret |= 0b111111 << length
				length += 6
			}
		}
		ret |= 1 << length
		length++
	}
	return ret
}

// KeyOf 等价于 Key(ToPattern(h))
func KeyOf(h *tile.HandCount) uint32 {
	return Key(ToPattern(h))
}

func Flatten(p Pattern) []uint8 {
	out := make([]uint8, 0, 14)
	for _, g := range p {
		out = append(out, g...)
	}
	return out
}

func (p Pattern) Total() int {
	n := 0
	for _, g := range p {
		for _, c := range g {
			n += int(c)
		}
	}
	return n
}

// Clone 深拷贝
func (p Pattern) Clone() Pattern {
	out := make(Pattern, len(p))
	for i, g := range p {
		out[i] = append([]uint8(nil), g...)
	}
	return out
}
