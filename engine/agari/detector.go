package agari

import (
	"strconv"

	"riichi/common/cache"
	"riichi/common/log"
	"riichi/engine/pattern"
	"riichi/engine/tables"
	"riichi/engine/tile"
)

// Status IsComplete 的判别结果
type Status int

const (
	StatusNone    Status = iota // 未和牌
	StatusKokushi               // 国士无双，不走表
	StatusRegular               // 查表命中，Payloads 为各种拆解
)

// Completion 查表结果；Regular 而 Payloads 为空表示表本身有缺陷
type Completion struct {
	Status   Status
	Payloads []tables.Payload
	// Kinds 拆解中位置到牌种的映射
	Kinds []tile.TileType
}

func (c Completion) Complete() bool {
	return c.Status == StatusKokushi || (c.Status == StatusRegular && len(c.Payloads) > 0)
}

// Defect 表命中但没有任何拆解
func (c Completion) Defect() bool {
	return c.Status == StatusRegular && len(c.Payloads) == 0
}

// Detector 和牌/听牌判定，表通过 Source 注入，可并发使用
type Detector struct {
	src   tables.Source
	cache *cache.GeneralCache
}

// NewDetector c 可为 nil，表示不缓存听牌结果
func NewDetector(src tables.Source, c *cache.GeneralCache) *Detector {
	return &Detector{src: src, cache: c}
}

// IsComplete is_complete
func (d *Detector) IsComplete(h tile.HandCount) Completion {
	if IsKokushi(&h) {
		return Completion{Status: StatusKokushi}
	}
	payloads, ok := d.src.Current().LookupWin(pattern.KeyOf(&h))
	if !ok {
		return Completion{Status: StatusNone}
	}
	if len(payloads) == 0 {
		log.Error("和牌表缺陷: 命中但没有拆解, hand=%s", h.Key())
	}
	return Completion{Status: StatusRegular, Payloads: payloads, Kinds: pattern.Kinds(&h)}
}

// WaitingTiles waiting_tiles，只考虑手里不足 4 张的牌种
func (d *Detector) WaitingTiles(h tile.HandCount) tile.KindSet {
	key := "w" + strconv.FormatUint(d.src.Generation(), 10) + ":" + h.Key()
	if d.cache != nil {
		if v, ok := d.cache.GetUint64(key); ok {
			return tile.KindSet(v)
		}
	}
	var waits tile.KindSet
	for k := tile.Man1; k <= tile.Red; k++ {
		if h[k] >= 4 {
			continue
		}
		h[k]++
		if d.IsComplete(h).Complete() {
			waits = waits.Add(k)
		}
		h[k]--
	}
	if d.cache != nil {
		d.cache.Set(key, uint64(waits))
	}
	return waits
}

// IsTenpai 听牌表命中且至少有一张实际可和的牌
func (d *Detector) IsTenpai(h tile.HandCount) bool {
	if IsKokushiTenpai(&h) {
		return true
	}
	if !d.src.Current().IsTenpaiKey(pattern.KeyOf(&h)) {
		return false
	}
	return !d.WaitingTiles(h).Empty()
}

// RiichiDiscards 打出后仍听牌的牌种
func (d *Detector) RiichiDiscards(h tile.HandCount) tile.KindSet {
	var out tile.KindSet
	for k := tile.Man1; k <= tile.Red; k++ {
		if h[k] == 0 {
			continue
		}
		h[k]--
		if d.IsTenpai(h) {
			out = out.Add(k)
		}
		h[k]++
	}
	return out
}

// CanDeclareRiichi can_declare_riichi
func (d *Detector) CanDeclareRiichi(h tile.HandCount) bool {
	return !d.RiichiDiscards(h).Empty()
}

// IsKokushi 13 种幺九各至少一张，共 14 张
func IsKokushi(h *tile.HandCount) bool {
	if h.Total() != 14 {
		return false
	}
	sum := 0
	for _, k := range tile.TerminalHonors {
		if h[k] == 0 {
			return false
		}
		sum += int(h[k])
	}
	return sum == 14
}

// IsKokushiTenpai 13 张全是幺九，最多一个对子，缺的种数等于对子数
func IsKokushiTenpai(h *tile.HandCount) bool {
	if h.Total() != 13 {
		return false
	}
	sum, pairs, missing := 0, 0, 0
	for _, k := range tile.TerminalHonors {
		switch c := h[k]; {
		case c == 0:
			missing++
		case c == 2:
			pairs++
		case c > 2:
			return false
		}
		sum += int(h[k])
	}
	return sum == 13 && pairs <= 1 && missing == pairs
}
