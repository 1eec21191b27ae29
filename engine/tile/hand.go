package tile

import "math/bits"

// HandCount 手牌计数，每种 0-4
type HandCount [KindCount]uint8

func CountOf(tiles []Tile) HandCount {
	var h HandCount
	for _, t := range tiles {
		h[t.Type()]++
	}
	return h
}

func (h *HandCount) Total() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

// Key 用作缓存键，只依赖计数
func (h *HandCount) Key() string {
	var b [KindCount]byte
	for i, c := range h {
		b[i] = '0' + c
	}
	return string(b[:])
}

// KindSet 34 种牌的位集
type KindSet uint64

func SetOf(kinds ...TileType) KindSet {
	var s KindSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

func (s KindSet) Add(k TileType) KindSet { return s | 1<<uint(k) }

func (s KindSet) Remove(k TileType) KindSet { return s &^ (1 << uint(k)) }

func (s KindSet) Has(k TileType) bool { return k.Valid() && s&(1<<uint(k)) != 0 }

func (s KindSet) Len() int { return bits.OnesCount64(uint64(s)) }

func (s KindSet) Empty() bool { return s == 0 }

func (s KindSet) Kinds() []TileType {
	out := make([]TileType, 0, s.Len())
	for k := Man1; k <= Red; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s KindSet) String() string {
	out := ""
	for _, k := range s.Kinds() {
		out += k.String()
	}
	return "[" + out + "]"
}
