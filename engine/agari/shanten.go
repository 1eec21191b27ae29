package agari

import "riichi/engine/tile"

// Shanten 向听数，fixedMelds 为副露数；听牌为 0，和牌为 -1
func Shanten(h tile.HandCount, fixedMelds int) int {
	best := ShantenNormal(h, fixedMelds)
	if fixedMelds == 0 {
		if v := ShantenChiitoi(h); v < best {
			best = v
		}
		if v := ShantenKokushi(h); v < best {
			best = v
		}
	}
	return best
}

// ShantenKokushi 国士无双向听数
func ShantenKokushi(h tile.HandCount) int {
	unique := 0
	pair := false
	for _, k := range tile.TerminalHonors {
		if h[k] > 0 {
			unique++
			if h[k] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// ShantenChiitoi 七对子向听数，同种四张只算一个对子
func ShantenChiitoi(h tile.HandCount) int {
	pairs, unique := 0, 0
	for _, c := range h {
		if c > 0 {
			unique++
		}
		if c >= 2 {
			pairs++
		}
	}
	sh := 6 - pairs
	if unique < 7 {
		sh += 7 - unique
	}
	return sh
}

func ShantenNormal(h tile.HandCount, fixedMelds int) int {
	best := 8
	work := h
	dfsNormalShanten(&work, fixedMelds, 0, 0, &best)
	return best
}

func sameSuit(a, b int) bool {
	return a < int(tile.East) && b < int(tile.East) && a/9 == b/9
}

// dfsNormalShanten m 面子数(含副露)，p 雀头数，t 搭子数
func dfsNormalShanten(h *tile.HandCount, m, p, t int, best *int) {
	if m > 4 {
		return
	}
	t2 := t
	if limit := 4 - m; t2 > limit {
		t2 = limit
	}
	if sh := 8 - 2*m - t2 - p; sh < *best {
		*best = sh
	}

	i := -1
	for k := 0; k < tile.KindCount; k++ {
		if h[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return
	}

	if h[i] >= 3 {
		h[i] -= 3
		dfsNormalShanten(h, m+1, p, t, best)
		h[i] += 3
	}
	if i+2 < tile.KindCount && sameSuit(i, i+2) && h[i+1] > 0 && h[i+2] > 0 {
		h[i]--
		h[i+1]--
		h[i+2]--
		dfsNormalShanten(h, m+1, p, t, best)
		h[i]++
		h[i+1]++
		h[i+2]++
	}
	if h[i] >= 2 {
		h[i] -= 2
		if p == 0 {
			dfsNormalShanten(h, m, 1, t, best)
		} else {
			dfsNormalShanten(h, m, p, t+1, best)
		}
		h[i] += 2
	}
	if i+1 < tile.KindCount && sameSuit(i, i+1) && h[i+1] > 0 {
		h[i]--
		h[i+1]--
		dfsNormalShanten(h, m, p, t+1, best)
		h[i]++
		h[i+1]++
	}
	if i+2 < tile.KindCount && sameSuit(i, i+2) && h[i+2] > 0 {
		h[i]--
		h[i+2]--
		dfsNormalShanten(h, m, p, t+1, best)
		h[i]++
		h[i+2]++
	}

	h[i]--
	dfsNormalShanten(h, m, p, t, best)
	h[i]++
}

// Ukeire 进张数：能降低向听的牌种及其剩余张数，visible 为场上公开张数(不含自己手牌)
func Ukeire(h tile.HandCount, fixedMelds int, visible *[tile.KindCount]int) (tile.KindSet, int) {
	base := Shanten(h, fixedMelds)
	var kinds tile.KindSet
	total := 0
	for k := tile.Man1; k <= tile.Red; k++ {
		if h[k] >= 4 {
			continue
		}
		h[k]++
		if Shanten(h, fixedMelds) < base {
			kinds = kinds.Add(k)
			left := 4 - int(h[k]) + 1
			if visible != nil {
				left -= visible[k]
			}
			if left > 0 {
				total += left
			}
		}
		h[k]--
	}
	return kinds, total
}
