package yaku

import (
	"errors"
	"fmt"

	"riichi/common/log"
	"riichi/engine/agari"
	"riichi/engine/tile"
)

var (
	ErrNotComplete = errors.New("没有和牌")
	ErrNoYaku      = errors.New("无役")
	ErrBadContext  = errors.New("和牌参数不合法")
)

// Item 一个役及其番数；役满时 Han 为倍数
type Item struct {
	Yaku Yaku
	Han  int
}

// Candidate 一种解释下的得点
type Candidate struct {
	Items   []Item
	Han     int
	Fu      int
	Yakuman int // 役满倍数，0 表示不是役满
	Wait    Wait
	// Base 基本点，已按满贯等封顶
	Base int
}

// Result 最终选出的解释加宝牌明细
type Result struct {
	Candidate
	Dora, Ura, Aka int
}

// Payment 单位 100 点
type Payment struct {
	Ron    int // 放铳者支付
	Dealer int // 自摸时庄家支付
	Other  int // 自摸时每个闲家支付
}

// Scorer 无状态，可并发使用
type Scorer struct {
	det *agari.Detector
}

func NewScorer(det *agari.Detector) *Scorer {
	return &Scorer{det: det}
}

func (sc *Scorer) validate(ctx *Context) error {
	if ctx == nil {
		return fmt.Errorf("%w: nil", ErrBadContext)
	}
	n := len(ctx.Tiles) + 3*len(ctx.Melds)
	if n != 14 {
		return fmt.Errorf("%w: 牌数 %d", ErrBadContext, n)
	}
	for _, t := range ctx.Tiles {
		if t == ctx.WinTile {
			return nil
		}
	}
	return fmt.Errorf("%w: 和了牌 %s 不在手里", ErrBadContext, ctx.WinTile)
}

// Evaluate 列出全部有役的解释，没有和牌或无役时为空
func (sc *Scorer) Evaluate(ctx *Context) []Candidate {
	if sc.validate(ctx) != nil {
		return nil
	}
	c := sc.det.IsComplete(tile.CountOf(ctx.Tiles))
	if !c.Complete() {
		return nil
	}
	dora, ura, aka := ctx.countDora()

	out := make([]Candidate, 0, len(c.Payloads))
	yakuman := false
	for _, s := range expand(ctx, c) {
		if cand, ok := s.evaluate(dora, ura, aka); ok {
			out = append(out, cand)
			yakuman = yakuman || cand.Yakuman > 0
		}
	}
	if !yakuman {
		return out
	}
	// 有役满时只保留役满的拆法
	n := 0
	for _, cand := range out {
		if cand.Yakuman > 0 {
			out[n] = cand
			n++
		}
	}
	return out[:n]
}

func (s *shape) evaluate(dora, ura, aka int) (Candidate, bool) {
	cand := Candidate{Wait: s.wait, Fu: s.calculateFu()}

	for _, ck := range yakumanRegistry {
		if _, mult := ck.Check(s); mult > 0 {
			cand.Items = append(cand.Items, Item{Yaku: ck.ID(), Han: mult})
			cand.Yakuman += mult
		}
	}
	if cand.Yakuman > 0 {
		if s.firstDraw() && s.ctx.Dealer {
			cand.upgradeTenhou()
		}
		cand.Han = 13 * cand.Yakuman
		cand.Base = 8000 * cand.Yakuman
		return cand, true
	}

	for _, ck := range yakuRegistry {
		if h, _ := ck.Check(s); h > 0 {
			cand.Items = append(cand.Items, Item{Yaku: ck.ID(), Han: h})
			cand.Han += h
		}
	}
	// 只有宝牌的番不算和
	if cand.Han == 0 {
		return cand, false
	}
	for _, d := range []Item{{YakuDora, dora}, {YakuUraDora, ura}, {YakuAkaDora, aka}} {
		if d.Han > 0 {
			cand.Items = append(cand.Items, d)
			cand.Han += d.Han
		}
	}
	cand.Base = basePoints(cand.Han, cand.Fu)
	return cand, true
}

// upgradeTenhou 庄家天和时，国士/九莲/四暗刻按听牌最宽的形式计
func (c *Candidate) upgradeTenhou() {
	upgrades := []struct{ from, to Yaku }{
		{YakuKokushi, YakuKokushi13},
		{YakuChuuren, YakuJunseiChuuren},
		{YakuSuuankou, YakuSuuankouTanki},
	}
	for _, u := range upgrades {
		for i, it := range c.Items {
			if it.Yaku == u.from {
				c.Items[i] = Item{Yaku: u.to, Han: 2}
				c.Yakuman++
				return
			}
		}
	}
}

// basePoints 基本点 = 符 × 2^(2+番)，满贯以上取固定值
func basePoints(han, fu int) int {
	switch {
	case han >= 13: // 累计役满
		return 8000
	case han >= 11: // 三倍满
		return 6000
	case han >= 8: // 倍满
		return 4000
	case han >= 6: // 跳满
		return 3000
	case han == 5: // 满贯
		return 2000
	}
	base := fu << (2 + han)
	if base > 2000 {
		return 2000
	}
	return base
}

// SelectBest 得点最高者，同点取番数多者，再同取靠前者
func SelectBest(cands []Candidate) Candidate {
	var best Candidate
	for i, c := range cands {
		if i == 0 || c.Base > best.Base || (c.Base == best.Base && c.Han > best.Han) {
			best = c
		}
	}
	return best
}

// Score 和牌的最终得点
func (sc *Scorer) Score(ctx *Context) (*Result, error) {
	if err := sc.validate(ctx); err != nil {
		return nil, err
	}
	if !sc.det.IsComplete(tile.CountOf(ctx.Tiles)).Complete() {
		return nil, ErrNotComplete
	}
	cands := sc.Evaluate(ctx)
	if len(cands) == 0 {
		return nil, ErrNoYaku
	}
	best := SelectBest(cands)
	dora, ura, aka := ctx.countDora()
	log.Debug("得点 %d 番 %d 符 基本点 %d, 候选 %d 种", best.Han, best.Fu, best.Base, len(cands))
	return &Result{Candidate: best, Dora: dora, Ura: ura, Aka: aka}, nil
}

func ceil100(x int) int {
	return (x + 99) / 100
}

// Payment 各家支付，honba 为本场数
func (c Candidate) Payment(dealer, tsumo bool, honba int) Payment {
	b := c.Base
	switch {
	case !tsumo && dealer:
		return Payment{Ron: ceil100(b*6) + 3*honba}
	case !tsumo:
		return Payment{Ron: ceil100(b*4) + 3*honba}
	case dealer:
		return Payment{Other: ceil100(b*2) + honba}
	default:
		return Payment{Dealer: ceil100(b*2) + honba, Other: ceil100(b) + honba}
	}
}

// Total 和牌者的总收入（不含立直棒）
func (p Payment) Total(dealer, tsumo bool) int {
	switch {
	case !tsumo:
		return p.Ron
	case dealer:
		return 3 * p.Other
	default:
		return p.Dealer + 2*p.Other
	}
}

// Limit 满贯等称呼
func (c Candidate) Limit() string {
	switch {
	case c.Yakuman > 0:
		return fmt.Sprintf("%d 倍役满", c.Yakuman)
	case c.Base >= 8000:
		return "累计役满"
	case c.Base >= 6000:
		return "三倍满"
	case c.Base >= 4000:
		return "倍满"
	case c.Base >= 3000:
		return "跳满"
	case c.Base >= 2000:
		return "满贯"
	}
	return ""
}
