package game

import (
	"riichi/engine/agent"
	"riichi/engine/tile"
	"riichi/engine/yaku"
)

// 流局满贯与不听罚符，单位 100 点
const (
	nagashiDealer = 40
	nagashiOther  = 20
	notenPenalty  = 30
)

func (t *Table) newResult(kind EndKind) *HandResult {
	return &HandResult{Situation: t.sit, Kind: kind}
}

// takeSticks 场上的立直棒归和了者
func (t *Table) takeSticks(res *HandResult, seat int) int {
	n := t.sit.RiichiSticks * agent.RiichiStake
	t.sit.RiichiSticks = 0
	res.pay[seat] += n
	return n
}

func (t *Table) settleTsumo(p *agent.Agent, win *yaku.Result) *HandResult {
	res := t.newResult(EndTsumo)
	dealer := p.Seat == t.sit.Dealer
	pm := win.Payment(dealer, true, t.sit.Honba)
	for _, o := range t.agents {
		if o == p {
			continue
		}
		amt := pm.Other
		if o.Seat == t.sit.Dealer {
			amt = pm.Dealer
		}
		res.pay[o.Seat] -= amt
		res.pay[p.Seat] += amt
	}
	t.takeSticks(res, p.Seat)
	res.Wins = []Win{{Seat: p.Seat, From: -1, Tile: p.Drawn(), Result: win, Points: res.pay[p.Seat]}}
	res.DealerKeeps = dealer
	t.emitTile(EventTsumo, p.Seat, p.Drawn())
	return res
}

// settleRon 多家荣和时按离放铳者的远近依次结算，立直棒归最近的一家，三家和了流局
func (t *Table) settleRon(d *agent.Agent, tl tile.Tile, rons []reaction) *HandResult {
	if len(rons) == 3 {
		return t.abort(EndTripleRon)
	}
	res := t.newResult(EndRon)
	for i, r := range rons {
		dealer := r.seat == t.sit.Dealer
		amt := r.win.Payment(dealer, false, t.sit.Honba).Ron
		res.pay[d.Seat] -= amt
		res.pay[r.seat] += amt
		if i == 0 {
			amt += t.takeSticks(res, r.seat)
		}
		res.Wins = append(res.Wins, Win{Seat: r.seat, From: d.Seat, Tile: tl, Result: r.win, Points: amt})
		if dealer {
			res.DealerKeeps = true
		}
		t.emitTile(EventRon, r.seat, tl)
	}
	return res
}

func (t *Table) tenpai() [4]bool {
	var out [4]bool
	for i, a := range t.agents {
		out[i] = !a.Waits().Empty()
	}
	return out
}

// exhaustiveDraw 荒牌流局：有流局满贯时按满贯自摸支付，否则不听罚符
func (t *Table) exhaustiveDraw() *HandResult {
	res := t.newResult(EndExhaustive)
	res.Tenpai = t.tenpai()
	res.DealerKeeps = res.Tenpai[t.sit.Dealer]

	for _, a := range t.agents {
		if !a.NagashiEligible() {
			continue
		}
		res.Kind = EndNagashi
		for _, o := range t.agents {
			if o == a {
				continue
			}
			amt := nagashiOther
			if a.Seat == t.sit.Dealer || o.Seat == t.sit.Dealer {
				amt = nagashiDealer
			}
			res.pay[o.Seat] -= amt
			res.pay[a.Seat] += amt
		}
	}
	if res.Kind == EndNagashi {
		return res
	}

	n := 0
	for _, ok := range res.Tenpai {
		if ok {
			n++
		}
	}
	if n == 0 || n == 4 {
		return res
	}
	for i, ok := range res.Tenpai {
		if ok {
			res.pay[i] += notenPenalty / n
		} else {
			res.pay[i] -= notenPenalty / (4 - n)
		}
	}
	return res
}

// abort 途中流局，庄家连庄
func (t *Table) abort(kind EndKind) *HandResult {
	res := t.newResult(kind)
	res.Tenpai = t.tenpai()
	res.DealerKeeps = true
	return res
}

// finish 更新点数、本场与庄家，判断对局是否结束
func (t *Table) finish(res *HandResult) {
	for i, a := range t.agents {
		s := a.Score + res.pay[i]
		res.Delta[i] = s - t.scores[i]
		t.scores[i] = s
	}
	res.Scores = t.scores
	t.hands = append(t.hands, res)

	if res.DealerKeeps || res.Kind.IsDraw() {
		t.sit.Honba++
	} else {
		t.sit.Honba = 0
	}
	changed := !res.DealerKeeps
	if changed {
		t.sit.Dealer = (t.sit.Dealer + 1) % 4
		t.sit.Round++
	}
	t.over = t.gameOver(changed)
	t.emit(&Event{Type: EventRoundEnd, Seat: -1, Tile: tile.NoTile, MeldCode: -1, Hand: res})
}

// gameOver 被飞、西4 结束，或南4(延长战)以后有人达到返点
func (t *Table) gameOver(dealerChanged bool) bool {
	for _, s := range t.scores {
		if s < t.rules.MinScore {
			return true
		}
	}
	if t.sit.Round > t.rules.MaxRound {
		return true
	}
	last := 7
	if !t.rules.Hanchan {
		last = 3
	}
	// 南入/西入之后的每一局，或者 all last 连庄
	if t.sit.Round > last || (t.sit.Round == last && !dealerChanged) {
		top := 0
		for _, s := range t.scores {
			top = max(top, s)
		}
		if top < t.rules.ReturnScore {
			return false
		}
		if dealerChanged {
			return true
		}
		// 和了止め：庄家为第一时结束
		return t.rank()[t.sit.Dealer] == 1
	}
	return false
}
