package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"riichi/common/config"
	"riichi/common/log"
	"riichi/engine/agari"
	"riichi/engine/agent"
	"riichi/engine/meld"
	"riichi/engine/tables"
	"riichi/engine/tile"
	"riichi/engine/yaku"
)

var ErrGameOver = errors.New("对局已结束")

// maxRetries 决策者连续给出非法操作的容忍次数
const maxRetries = 3

// Options 创建牌桌的参数，零值字段取默认
type Options struct {
	GameID    string
	Seed      int64
	Rules     config.RuleConf
	Detector  *agari.Detector
	Providers [4]DecisionProvider
	Sinks     []EventSink
	// Deck 非空时第 n 局按返回的 136 张顺序摆牌
	Deck func(n int) []tile.Tile
}

// Table 四人牌桌，单线程驱动
type Table struct {
	id        string
	rules     config.RuleConf
	det       *agari.Detector
	scorer    *yaku.Scorer
	wall      *Wall
	deck      func(int) []tile.Tile
	providers [4]DecisionProvider
	sinks     []EventSink

	agents    [4]*agent.Agent
	scores    [4]int
	sit       Situation
	turn      int
	firstTurn bool // 第一巡且无人鸣牌
	windRun   []tile.TileType
	visible   [tile.KindCount]int
	seq       int

	hands   []*HandResult
	started bool
	over    bool
	result  *GameResult
}

func defaultRules(r config.RuleConf) config.RuleConf {
	if r.StartScore == 0 {
		r.StartScore = 250
		r.UseRedFives = true
		r.AllowKuitan = true
		r.Hanchan = true
	}
	if r.ReturnScore == 0 {
		r.ReturnScore = 300
	}
	if r.MaxRound == 0 {
		r.MaxRound = 11
	}
	// 东风战的延长最多到南4
	if !r.Hanchan && r.MaxRound > 7 {
		r.MaxRound = 7
	}
	return r
}

func NewTable(opts Options) *Table {
	t := &Table{
		id:        opts.GameID,
		rules:     defaultRules(opts.Rules),
		det:       opts.Detector,
		wall:      NewWall(rand.New(rand.NewSource(opts.Seed))),
		deck:      opts.Deck,
		providers: opts.Providers,
		sinks:     opts.Sinks,
	}
	if t.id == "" {
		t.id = uuid.NewString()
	}
	if t.det == nil {
		t.det = agari.NewDetector(tables.Default(), nil)
	}
	t.scorer = yaku.NewScorer(t.det)
	for i := range t.providers {
		if t.providers[i] == nil {
			t.providers[i] = Baseline{}
		}
		t.scores[i] = t.rules.StartScore
	}
	return t
}

func (t *Table) ID() string { return t.id }

func (t *Table) Scores() [4]int { return t.scores }

func (t *Table) Situation() Situation { return t.sit }

func (t *Table) Over() bool { return t.over }

// SetRules 规则从下一局生效，已有点数不变
func (t *Table) SetRules(r config.RuleConf) {
	t.rules = defaultRules(r)
}

func (t *Table) emit(e *Event) {
	if len(t.sinks) == 0 {
		return
	}
	e.GameID = t.id
	e.Seq = t.seq
	e.Situation = t.sit
	if e.Type != EventGameEnd {
		e.Public = t.Snapshot(-1)
	}
	t.seq++
	for _, s := range t.sinks {
		s.OnEvent(e)
	}
}

func (t *Table) emitTile(typ EventType, seat int, tl tile.Tile) {
	t.emit(&Event{Type: typ, Seat: seat, Tile: tl, MeldCode: -1})
}

func (t *Table) emitMeld(typ EventType, seat int, m meld.Meld) {
	code, err := meld.Encode(m)
	if err != nil {
		log.Warn("副露编码失败 %s: %v", m, err)
		code = -1
	}
	t.emit(&Event{Type: typ, Seat: seat, Tile: m.Claimed, Meld: &m, MeldCode: code})
}

// PlayGame 从当前状态打到对局结束
func (t *Table) PlayGame() (*GameResult, error) {
	if t.over {
		return nil, ErrGameOver
	}
	for !t.over {
		if _, err := t.PlayHand(); err != nil {
			return nil, err
		}
	}
	return t.result, nil
}

// Result 对局结束前为 nil
func (t *Table) Result() *GameResult { return t.result }

// endGame 剩余立直棒归第一名，排定名次
func (t *Table) endGame() {
	for seat, r := range t.rank() {
		if r == 1 {
			t.scores[seat] += t.sit.RiichiSticks * agent.RiichiStake
			t.sit.RiichiSticks = 0
		}
	}
	t.result = &GameResult{ID: t.id, Scores: t.scores, Ranks: t.rank(), Hands: t.hands}
	t.emit(&Event{Type: EventGameEnd, Seat: -1, Tile: tile.NoTile, MeldCode: -1, Game: t.result})
}

// rank 按点数排名，同点时起家顺位靠前者在前
func (t *Table) rank() [4]int {
	seats := []int{0, 1, 2, 3}
	sort.SliceStable(seats, func(i, j int) bool { return t.scores[seats[i]] > t.scores[seats[j]] })
	var ranks [4]int
	for r, s := range seats {
		ranks[s] = r + 1
	}
	return ranks
}

// PlayHand 打一局并结算
func (t *Table) PlayHand() (*HandResult, error) {
	if t.over {
		return nil, ErrGameOver
	}
	if !t.started {
		t.started = true
		t.emit(&Event{Type: EventGameStart, Seat: -1, Tile: tile.NoTile, MeldCode: -1})
	}
	t.deal()
	res, err := t.play()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.sit, err)
	}
	t.finish(res)
	if t.over {
		t.endGame()
	}
	return res, nil
}

func (t *Table) deal() {
	var stack []tile.Tile
	if t.deck != nil {
		stack = t.deck(len(t.hands))
	}
	t.wall.Reset(stack)
	t.visible = [tile.KindCount]int{}
	for i := 0; i < 4; i++ {
		seat := (t.sit.Dealer + i) % 4
		t.agents[seat] = agent.New(t.det, seat, t.sit.SeatWind(seat), t.scores[seat], t.wall.Deal(i))
	}
	for _, d := range t.wall.DoraIndicators() {
		t.visible[d.Type()]++
	}
	t.turn = t.sit.Dealer
	t.firstTurn = true
	t.windRun = t.windRun[:0]
	t.emit(&Event{Type: EventRoundStart, Seat: t.sit.Dealer, Tile: tile.NoTile, MeldCode: -1})
}

func (t *Table) totalKans() int {
	n := 0
	for _, a := range t.agents {
		n += a.Kans()
	}
	return n
}

// canKan 场上不足 4 杠且还有岭上牌可摸
func (t *Table) canKan() bool {
	return t.totalKans() < maxKans && t.wall.Left() > 0
}

// interrupt 鸣牌与杠打断第一巡和所有人的一发
func (t *Table) interrupt() {
	t.firstTurn = false
	for _, a := range t.agents {
		a.ClearIppatsu()
	}
}

func (t *Table) revealDora() {
	if d, ok := t.wall.RevealDora(); ok {
		t.visible[d.Type()]++
		t.emitTile(EventDora, -1, d)
	}
}

func (t *Table) play() (*HandResult, error) {
	draw, rinshan := true, false
	for {
		p := t.agents[t.turn]
		if draw {
			var tl tile.Tile
			var ok bool
			if rinshan {
				tl, ok = t.wall.DrawRinshan()
			} else {
				tl, ok = t.wall.Draw()
			}
			if !ok {
				return t.exhaustiveDraw(), nil
			}
			p.Draw(tl)
			t.emitTile(EventDraw, p.Seat, tl)
		}

		opts, def, win := t.turnOptions(p, rinshan)
		act := t.ask(p.Seat, PhaseTurn, opts, def, tile.NoTile)
		if win != nil && act.Type != ActTsumo {
			p.PassWin(false)
		}

		switch act.Type {
		case ActTsumo:
			return t.settleTsumo(p, win), nil
		case ActKyuushu:
			return t.abort(EndKyuushu), nil
		case ActAnkan:
			if err := p.Ankan(act.Kind); err != nil {
				return nil, fmt.Errorf("暗杠 %s: %w", act.Kind, err)
			}
			t.visible[act.Kind] += 4
			t.interrupt()
			melds := p.Melds()
			t.emitMeld(EventAnkan, p.Seat, melds[len(melds)-1])
			t.revealDora()
			draw, rinshan = true, true
			continue
		case ActKakan:
			if res := t.chankan(p, act.Tile); res != nil {
				return res, nil
			}
			if err := p.Kakan(act.Tile); err != nil {
				return nil, fmt.Errorf("加杠 %s: %w", act.Tile, err)
			}
			t.visible[act.Tile.Type()]++
			t.interrupt()
			for _, m := range p.Melds() {
				if m.Kind == meld.Kakan && m.Added == act.Tile {
					t.emitMeld(EventKakan, p.Seat, m)
				}
			}
			t.revealDora()
			draw, rinshan = true, true
			continue
		}

		declare := act.Type == ActRiichi
		double := t.firstTurn
		p.ClearIppatsu()
		if err := p.Discard(act.Tile); err != nil {
			return nil, fmt.Errorf("出牌 %s: %w", act.Tile, err)
		}
		t.visible[act.Tile.Type()]++
		t.emitTile(EventDiscard, p.Seat, act.Tile)
		rinshan = false
		if t.firstTurn {
			t.windRun = append(t.windRun, act.Tile.Type())
		}

		res, caller, call := t.react(p, act.Tile)
		if res != nil {
			return res, nil
		}
		if declare && p.DeclareRiichi(double) {
			t.sit.RiichiSticks++
			t.emitTile(EventRiichi, p.Seat, act.Tile)
		}

		if caller < 0 {
			p.ResolveDiscard(false)
			if t.fourWinds() {
				return t.abort(EndSuufon), nil
			}
		} else {
			p.ResolveDiscard(true)
		}
		if t.allRiichi() {
			return t.abort(EndSuucha), nil
		}
		if t.fourKans() {
			return t.abort(EndSuukan), nil
		}

		if caller < 0 {
			if t.turn == (t.sit.Dealer+3)%4 {
				t.firstTurn = false
			}
			t.turn = (t.turn + 1) % 4
			draw = true
			continue
		}

		if err := t.applyCall(t.agents[caller], p.Seat, call); err != nil {
			return nil, err
		}
		t.turn = caller
		draw, rinshan = call.Type == ActMinkan, call.Type == ActMinkan
	}
}

// fourWinds 第一巡四家打出同一种风牌
func (t *Table) fourWinds() bool {
	if !t.firstTurn || len(t.windRun) != 4 {
		return false
	}
	k := t.windRun[0]
	if !k.IsWind() {
		return false
	}
	for _, x := range t.windRun[1:] {
		if x != k {
			return false
		}
	}
	return true
}

func (t *Table) allRiichi() bool {
	for _, a := range t.agents {
		if a.Riichi() == agent.RiichiNone {
			return false
		}
	}
	return true
}

// fourKans 4 个杠不是同一家开的
func (t *Table) fourKans() bool {
	if t.totalKans() < maxKans {
		return false
	}
	for _, a := range t.agents {
		if a.Kans() == maxKans {
			return false
		}
	}
	return true
}

func (t *Table) applyCall(c *agent.Agent, from int, act Action) error {
	rel := (from - c.Seat + 4) % 4
	var err error
	typ := EventChi
	switch act.Type {
	case ActChi:
		err = c.Chi(act.Tiles, act.Tile)
	case ActPon:
		typ = EventPon
		err = c.Pon(act.Tiles, act.Tile, rel)
	case ActMinkan:
		typ = EventMinkan
		err = c.Minkan(act.Tile, rel)
	default:
		return fmt.Errorf("%w: %s", ErrActionUnavailable, act)
	}
	if err != nil {
		return fmt.Errorf("座位 %d %s: %w", c.Seat, act, err)
	}
	t.interrupt()
	melds := c.Melds()
	m := melds[len(melds)-1]
	for _, x := range m.Tiles {
		if x != act.Tile {
			t.visible[x.Type()]++
		}
	}
	t.emitMeld(typ, c.Seat, m)
	if act.Type == ActMinkan {
		t.revealDora()
	}
	return nil
}

// ask 只在可选操作多于一个时询问决策者，非法答复重试后取默认
func (t *Table) ask(seat int, phase Phase, opts []Action, def Action, target tile.Tile) Action {
	if len(opts) == 1 {
		return opts[0]
	}
	req := &DecisionRequest{
		Seat:    seat,
		Phase:   phase,
		Options: opts,
		Default: def,
		Target:  target,
		view:    func() *Snapshot { return t.Snapshot(seat) },
	}
	for i := 0; i < maxRetries; i++ {
		a := t.providers[seat].Choose(req)
		for _, o := range opts {
			if o.Equal(a) {
				return o
			}
		}
		log.Warn("座位 %d 第 %d 次选择 %s: %v", seat, i+1, a, ErrActionUnavailable)
	}
	log.Warn("座位 %d 连续 %d 次非法操作，改为 %s", seat, maxRetries, def)
	return def
}

func (t *Table) winContext(a *agent.Agent, win tile.Tile, tsumo bool, special yaku.Special) *yaku.Context {
	tiles := a.Tiles()
	if !tsumo {
		tiles = append(tiles, win)
	}
	return &yaku.Context{
		Tiles:     tiles,
		Melds:     a.Melds(),
		WinTile:   win,
		Tsumo:     tsumo,
		Riichi:    int(a.Riichi()),
		Ippatsu:   a.Ippatsu(),
		Special:   special,
		FirstTurn: tsumo && t.firstTurn,
		Dealer:    a.Seat == t.sit.Dealer,
		RoundWind: t.sit.RoundWind().Type(),
		SeatWind:  a.Wind.Type(),
		Dora:      kindsOf(t.wall.DoraIndicators()),
		UraDora:   kindsOf(t.wall.UraIndicators()),
		NoKuitan:  !t.rules.AllowKuitan,
		NoAka:     !t.rules.UseRedFives,
	}
}

// tryWin 和牌且有役时返回得点
func (t *Table) tryWin(a *agent.Agent, win tile.Tile, tsumo bool, special yaku.Special) *yaku.Result {
	r, err := t.scorer.Score(t.winContext(a, win, tsumo, special))
	if err != nil {
		if !errors.Is(err, yaku.ErrNoYaku) {
			log.Debug("座位 %d 和牌 %s 不成立: %v", a.Seat, win, err)
		}
		return nil
	}
	return r
}

func isKyuushu(a *agent.Agent) bool {
	h := a.Hand()
	n := 0
	for k := tile.Man1; k <= tile.Red; k++ {
		if k.IsYaochu() && h[k] > 0 {
			n++
		}
	}
	return n >= 9
}

// turnOptions 摸牌或鸣牌后可选的操作，win 为能自摸时的得点
func (t *Table) turnOptions(p *agent.Agent, rinshan bool) ([]Action, Action, *yaku.Result) {
	opts := make([]Action, 0, 16)
	drawn := p.Drawn()
	var win *yaku.Result
	if drawn != tile.NoTile && p.CanTsumo() {
		special := yaku.SpecialNone
		switch {
		case rinshan:
			special = yaku.SpecialRinshan
		case t.wall.Left() == 0:
			special = yaku.SpecialLast
		}
		if win = t.tryWin(p, drawn, true, special); win != nil {
			opts = append(opts, Action{Type: ActTsumo, Tile: drawn})
		}
	}
	if t.firstTurn && len(p.Discards()) == 0 && drawn != tile.NoTile && isKyuushu(p) {
		opts = append(opts, Action{Type: ActKyuushu})
	}
	if drawn != tile.NoTile && t.canKan() {
		for _, k := range p.CheckAnkan() {
			opts = append(opts, Action{Type: ActAnkan, Kind: k, Tile: tile.New(k, 0)})
		}
		for _, tl := range p.CheckKakan() {
			opts = append(opts, Action{Type: ActKakan, Tile: tl})
		}
	}

	if p.Riichi() != agent.RiichiNone {
		def := Action{Type: ActDiscard, Tile: drawn}
		return append(opts, def), def, win
	}
	if p.CanDeclareRiichi(t.wall.Left()) {
		for _, tl := range p.RiichiDiscards() {
			opts = append(opts, Action{Type: ActRiichi, Tile: tl})
		}
	}
	// 默认摸切，鸣牌后为最后一张可打的牌
	def := Action{Type: ActDiscard, Tile: drawn}
	banned := p.Kuikae()
	for _, tl := range p.Tiles() {
		if banned.Has(tl.Type()) {
			continue
		}
		opts = append(opts, Action{Type: ActDiscard, Tile: tl})
		if drawn == tile.NoTile {
			def.Tile = tl
		}
	}
	return opts, def, win
}

type reaction struct {
	seat int
	act  Action
	win  *yaku.Result
}

// react 收集其他三家对舍牌的反应：荣和优先，其次碰/明杠，最后吃
func (t *Table) react(d *agent.Agent, tl tile.Tile) (*HandResult, int, Action) {
	k := tl.Type()
	last := t.wall.Left() == 0
	special := yaku.SpecialNone
	if last {
		special = yaku.SpecialLast
	}

	var rons, kans, pons, chis []reaction
	for i := 1; i < 4; i++ {
		a := t.agents[(d.Seat+i)%4]
		opts := make([]Action, 0, 6)
		var win *yaku.Result
		canRon := a.CanRon(k)
		if canRon {
			if win = t.tryWin(a, tl, false, special); win != nil {
				opts = append(opts, Action{Type: ActRon, Tile: tl})
			}
		}
		if !last {
			for _, ts := range a.CheckPon(tl) {
				opts = append(opts, Action{Type: ActPon, Tile: tl, Tiles: ts})
			}
			if t.canKan() && a.CheckMinkan(tl) {
				opts = append(opts, Action{Type: ActMinkan, Tile: tl})
			}
			if i == 1 {
				for _, ts := range a.CheckChi(tl) {
					opts = append(opts, Action{Type: ActChi, Tile: tl, Tiles: ts})
				}
			}
		}
		// 听的牌没有役也算见逃，同巡振听
		if len(opts) == 0 {
			if canRon {
				a.PassWin(true)
			}
			continue
		}
		pass := Action{Type: ActPass}
		act := t.ask(a.Seat, PhaseCall, append(opts, pass), pass, tl)
		if canRon && act.Type != ActRon {
			a.PassWin(true)
		}
		r := reaction{seat: a.Seat, act: act, win: win}
		switch act.Type {
		case ActRon:
			rons = append(rons, r)
		case ActMinkan:
			kans = append(kans, r)
		case ActPon:
			pons = append(pons, r)
		case ActChi:
			chis = append(chis, r)
		}
	}

	if len(rons) > 0 {
		return t.settleRon(d, tl, rons), -1, Action{}
	}
	for _, group := range [][]reaction{kans, pons, chis} {
		if len(group) > 0 {
			return nil, group[0].seat, group[0].act
		}
	}
	return nil, -1, Action{}
}

// chankan 加杠时其他家只能抢杠
func (t *Table) chankan(p *agent.Agent, tl tile.Tile) *HandResult {
	var rons []reaction
	for i := 1; i < 4; i++ {
		a := t.agents[(p.Seat+i)%4]
		if !a.CanRon(tl.Type()) {
			continue
		}
		win := t.tryWin(a, tl, false, yaku.SpecialChankan)
		if win == nil {
			a.PassWin(true)
			continue
		}
		ron := Action{Type: ActRon, Tile: tl}
		pass := Action{Type: ActPass}
		if t.ask(a.Seat, PhaseChankan, []Action{ron, pass}, pass, tl).Type == ActRon {
			rons = append(rons, reaction{seat: a.Seat, act: ron, win: win})
		} else {
			a.PassWin(true)
		}
	}
	if len(rons) == 0 {
		return nil
	}
	return t.settleRon(p, tl, rons)
}
