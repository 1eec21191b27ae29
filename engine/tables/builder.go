package tables

import (
	"sort"
	"time"

	"riichi/common/log"
	"riichi/engine/pattern"
)

// Tables 和牌表与听牌表，构建后只读
type Tables struct {
	Win    map[uint32][]Payload
	Tenpai map[uint32]struct{}
}

// Current 使 *Tables 自身即可作为 Source 注入
func (t *Tables) Current() *Tables { return t }

// Generation 单张表不会被替换
func (t *Tables) Generation() uint64 { return 0 }

func (t *Tables) LookupWin(key uint32) ([]Payload, bool) {
	ps, ok := t.Win[key]
	return ps, ok
}

func (t *Tables) IsTenpaiKey(key uint32) bool {
	_, ok := t.Tenpai[key]
	return ok
}

// groupDecomp 单个连续段的一种拆解，位置已加上段在整手牌中的偏移
type groupDecomp struct {
	triplets []int
	runs     []int
	pair     int
}

func decomposeGroup(counts []uint8, offset int) []groupDecomp {
	work := append([]uint8(nil), counts...)
	var out []groupDecomp
	var triplets, runs []int
	pair := -1

	var dfs func(i int)
	dfs = func(i int) {
		for i < len(work) && work[i] == 0 {
			i++
		}
		if i == len(work) {
			out = append(out, groupDecomp{
				triplets: append([]int(nil), triplets...),
				runs:     append([]int(nil), runs...),
				pair:     pair,
			})
			return
		}
		if work[i] >= 3 {
			work[i] -= 3
			triplets = append(triplets, offset+i)
			dfs(i)
			triplets = triplets[:len(triplets)-1]
			work[i] += 3
		}
		if i+2 < len(work) && work[i+1] > 0 && work[i+2] > 0 {
			work[i]--
			work[i+1]--
			work[i+2]--
			runs = append(runs, offset+i)
			dfs(i)
			runs = runs[:len(runs)-1]
			work[i]++
			work[i+1]++
			work[i+2]++
		}
		if pair < 0 && work[i] >= 2 {
			work[i] -= 2
			pair = offset + i
			dfs(i)
			pair = -1
			work[i] += 2
		}
	}
	dfs(0)
	return out
}

// Decompose 枚举整手牌所有含一个雀头的拆解
func Decompose(p pattern.Pattern) []Payload {
	offsets := make([]int, len(p))
	per := make([][]groupDecomp, len(p))
	off := 0
	for i, g := range p {
		offsets[i] = off
		per[i] = decomposeGroup(g, off)
		if len(per[i]) == 0 {
			return nil
		}
		off += len(g)
	}

	var out []Payload
	seen := make(map[Payload]struct{})
	var triplets, runs []int
	var walk func(gi, pair int)
	walk = func(gi, pair int) {
		if gi == len(p) {
			if pair < 0 {
				return
			}
			pl := encodePayload(triplets, runs, pair, 0)
			pl |= structuralFlags(p, offsets, triplets, runs)
			if _, dup := seen[pl]; !dup {
				seen[pl] = struct{}{}
				out = append(out, pl)
			}
			return
		}
		for _, d := range per[gi] {
			if d.pair >= 0 && pair >= 0 {
				continue
			}
			np := pair
			if d.pair >= 0 {
				np = d.pair
			}
			nt, nr := len(triplets), len(runs)
			triplets = append(triplets, d.triplets...)
			runs = append(runs, d.runs...)
			walk(gi+1, np)
			triplets, runs = triplets[:nt], runs[:nr]
		}
	}
	// 各段按偏移顺序拼接，位置天然升序，编码唯一
	walk(0, -1)
	return out
}

var chuurenBase = [9]uint8{3, 1, 1, 1, 1, 1, 1, 1, 3}

func structuralFlags(p pattern.Pattern, offsets []int, triplets, runs []int) Payload {
	var flags Payload

	if len(p) == 1 && len(p[0]) == 9 {
		extra := 0
		ok := true
		for i, c := range p[0] {
			if c < chuurenBase[i] {
				ok = false
				break
			}
			extra += int(c - chuurenBase[i])
		}
		if ok && extra == 1 {
			flags |= FlagChuuren
		}
	}

	for gi, g := range p {
		if len(g) != 9 {
			continue
		}
		o := offsets[gi]
		if containsAll(runs, o, o+3, o+6) {
			flags |= FlagIttsu
		}
	}

	if len(runs) >= 2 {
		rs := append([]int(nil), runs...)
		sort.Ints(rs)
		if len(rs) == 4 && rs[0] == rs[1] && rs[2] == rs[3] {
			flags |= FlagRyanpeikou
		} else if len(triplets)+len(runs) == 4 {
			for i := 1; i < len(rs); i++ {
				if rs[i] == rs[i-1] {
					flags |= FlagIipeikou
					break
				}
			}
		}
	}
	return flags
}

func containsAll(xs []int, want ...int) bool {
	for _, w := range want {
		found := false
		for _, x := range xs {
			if x == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type block struct {
	counts []uint8
	sets   int
	pair   bool
}

// enumerateBlocks 单个连续段(长度<=9，每种1-4张)中可完全拆解的形状
func enumerateBlocks() []block {
	var out []block
	counts := make([]uint8, 0, 9)
	var gen func(sum int)
	gen = func(sum int) {
		if len(counts) > 0 && sum%3 != 1 && len(decomposeGroup(counts, 0)) > 0 {
			out = append(out, block{
				counts: append([]uint8(nil), counts...),
				sets:   sum / 3,
				pair:   sum%3 == 2,
			})
		}
		if len(counts) == 9 {
			return
		}
		for c := uint8(1); c <= 4 && sum+int(c) <= 14; c++ {
			counts = append(counts, c)
			gen(sum + int(c))
			counts = counts[:len(counts)-1]
		}
	}
	gen(0)
	return out
}

// Build 构建和牌表与听牌表，构造不变量被破坏时直接 Fatal
func Build() *Tables {
	start := time.Now()
	t := &Tables{
		Win:    make(map[uint32][]Payload, 1<<15),
		Tenpai: make(map[uint32]struct{}, 1<<16),
	}
	shapes := make(map[uint32]string, 1<<15)

	record := func(p pattern.Pattern, payloads []Payload) {
		key := pattern.Key(p)
		sig := signature(p)
		if prev, ok := shapes[key]; ok {
			if prev != sig {
				log.Fatal("和牌表键冲突: key=%d %s vs %s", key, prev, sig)
			}
			return
		}
		shapes[key] = sig
		t.Win[key] = payloads
	}

	blocks := enumerateBlocks()
	var seq pattern.Pattern
	var compose func(sets int, pair bool)
	compose = func(sets int, pair bool) {
		if pair {
			payloads := Decompose(seq)
			if len(payloads) == 0 {
				log.Fatal("和牌形状无法拆解: %v", seq)
			}
			record(seq.Clone(), payloads)
		}
		for _, b := range blocks {
			if pair && b.pair {
				continue
			}
			if sets+b.sets > 4 {
				continue
			}
			seq = append(seq, b.counts)
			compose(sets+b.sets, pair || b.pair)
			seq = seq[:len(seq)-1]
		}
	}
	compose(0, false)

	// 七对子：7 个对子切成若干连续段
	var parts []int
	var chiitoi func(left int)
	chiitoi = func(left int) {
		if left == 0 {
			p := make(pattern.Pattern, len(parts))
			for i, n := range parts {
				p[i] = make([]uint8, n)
				for j := range p[i] {
					p[i][j] = 2
				}
			}
			if _, ok := t.Win[pattern.Key(p)]; !ok {
				record(p, []Payload{FlagChiitoi})
			}
			return
		}
		for n := 1; n <= left; n++ {
			parts = append(parts, n)
			chiitoi(left - n)
			parts = parts[:len(parts)-1]
		}
	}
	chiitoi(7)

	for key := range t.Win {
		deriveTenpai(t, parsePattern(shapes[key]))
	}

	log.Debug("和牌表构建完成: win=%d tenpai=%d 耗时=%s", len(t.Win), len(t.Tenpai), time.Since(start))
	return t
}

// deriveTenpai 每个和牌形状去掉任意一张即为听牌形状
func deriveTenpai(t *Tables, p pattern.Pattern) {
	for gi, g := range p {
		for j := range g {
			t.Tenpai[pattern.Key(removeAt(p, gi, j))] = struct{}{}
		}
	}
}

// removeAt 去掉第 gi 段第 j 个位置的一张，段内出现 0 时拆段
func removeAt(p pattern.Pattern, gi, j int) pattern.Pattern {
	out := make(pattern.Pattern, 0, len(p)+1)
	out = append(out, p[:gi]...)
	g := append([]uint8(nil), p[gi]...)
	g[j]--
	if g[j] > 0 {
		out = append(out, g)
	} else {
		if left := g[:j]; len(left) > 0 {
			out = append(out, left)
		}
		if right := g[j+1:]; len(right) > 0 {
			out = append(out, right)
		}
	}
	return append(out, p[gi+1:]...)
}

// signature 形状的文本签名，用于检测键冲突
func signature(p pattern.Pattern) string {
	b := make([]byte, 0, 20)
	for i, g := range p {
		if i > 0 {
			b = append(b, ',')
		}
		for _, c := range g {
			b = append(b, '0'+c)
		}
	}
	return string(b)
}

func parsePattern(sig string) pattern.Pattern {
	var p pattern.Pattern
	var cur []uint8
	for i := 0; i < len(sig); i++ {
		if sig[i] == ',' {
			p = append(p, cur)
			cur = nil
			continue
		}
		cur = append(cur, sig[i]-'0')
	}
	return append(p, cur)
}
