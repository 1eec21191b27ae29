package yaku

import (
	"errors"
	"reflect"
	"testing"

	"riichi/engine/agari"
	"riichi/engine/meld"
	"riichi/engine/tables"
	"riichi/engine/tile"
)

func newScorer() *Scorer {
	return NewScorer(agari.NewDetector(tables.Default(), nil))
}

// hand 的最后一张是和了牌
func newCtx(hand string, tsumo bool) *Context {
	ts := tile.MustParse(hand)
	return &Context{
		Tiles:     ts,
		WinTile:   ts[len(ts)-1],
		Tsumo:     tsumo,
		RoundWind: tile.East,
		SeatWind:  tile.South,
	}
}

func hasYaku(c Candidate, y Yaku) bool {
	for _, it := range c.Items {
		if it.Yaku == y {
			return true
		}
	}
	return false
}

func TestScore_PinfuTsumo(t *testing.T) {
	r, err := newScorer().Score(newCtx("23m456p789s234s88p1m", true))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if r.Han != 2 || r.Fu != 20 || r.Base != 320 || !hasYaku(r.Candidate, YakuPinfu) || !hasYaku(r.Candidate, YakuTsumo) {
		t.Fatalf("unexpected result %+v", r)
	}
	p := r.Payment(false, true, 0)
	if p.Dealer != 7 || p.Other != 4 {
		t.Fatalf("payment = %+v, want 700/400", p)
	}
}

func TestEvaluate_PinfuTsumoAmongAlternatives(t *testing.T) {
	sc := newScorer()
	ctx := newCtx("22233344m567p88s4m", true)
	cands := sc.Evaluate(ctx)
	if len(cands) < 2 {
		t.Fatalf("expected several readings, got %+v", cands)
	}
	var pinfu *Candidate
	for i := range cands {
		if hasYaku(cands[i], YakuPinfu) {
			pinfu = &cands[i]
		}
	}
	if pinfu == nil {
		t.Fatalf("no pinfu reading in %+v", cands)
	}
	// 门清自摸 平和 一杯口 断幺
	if pinfu.Fu != 20 || pinfu.Han != 4 || pinfu.Wait != WaitRyanmen {
		t.Fatalf("pinfu reading = %+v, want 4 han 20 fu", *pinfu)
	}

	best := SelectBest(cands)
	// 门清自摸 三暗刻 断幺，40 符 4 番满贯
	if !hasYaku(best, YakuSanankou) || best.Fu != 40 || best.Base != 2000 {
		t.Fatalf("best = %+v", best)
	}
}

func TestScore_Chiitoi(t *testing.T) {
	ctx := newCtx("1122m3344p5566s7z7z", false)
	ctx.Riichi = 1
	r, err := newScorer().Score(ctx)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if r.Fu != 25 || r.Han != 3 || !hasYaku(r.Candidate, YakuChiitoi) {
		t.Fatalf("unexpected result %+v", r)
	}
	if p := r.Payment(false, false, 0); p.Ron != 32 {
		t.Fatalf("ron payment = %d, want 32", p.Ron)
	}
}

func TestScore_KanchanRon(t *testing.T) {
	ctx := newCtx("13m456p789s234s88p2m", false)
	ctx.Riichi = 1
	r, err := newScorer().Score(ctx)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if r.Fu != 40 || r.Han != 1 || r.Wait != WaitKanchan {
		t.Fatalf("unexpected result %+v", r)
	}
	if p := r.Payment(false, false, 1); p.Ron != 16 {
		t.Fatalf("ron payment = %d, want 13 + 3 honba", p.Ron)
	}
}

func TestScore_Yakuman(t *testing.T) {
	sc := newScorer()
	t.Run("daisangen", func(t *testing.T) {
		r, err := sc.Score(newCtx("55566677z234m11p7z", false))
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if r.Yakuman != 1 || r.Base != 8000 || !hasYaku(r.Candidate, YakuDaisangen) {
			t.Fatalf("unexpected result %+v", r)
		}
		if p := r.Payment(false, false, 0); p.Ron != 320 {
			t.Fatalf("ron payment = %d", p.Ron)
		}
	})
	t.Run("kokushi 13 wait", func(t *testing.T) {
		r, err := sc.Score(newCtx("19m19p19s1234567z1m", true))
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if r.Yakuman != 2 || !hasYaku(r.Candidate, YakuKokushi13) {
			t.Fatalf("unexpected result %+v", r)
		}
		if p := r.Payment(true, true, 0); p.Other != 320 {
			t.Fatalf("dealer tsumo payment = %+v", p)
		}
	})
	t.Run("chuuren", func(t *testing.T) {
		r, err := sc.Score(newCtx("1112345678899m9m", false))
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if r.Yakuman != 1 || !hasYaku(r.Candidate, YakuChuuren) {
			t.Fatalf("unexpected result %+v", r)
		}
	})
	t.Run("junsei chuuren", func(t *testing.T) {
		r, err := sc.Score(newCtx("1112345678999m5m", false))
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if r.Yakuman != 2 || !hasYaku(r.Candidate, YakuJunseiChuuren) {
			t.Fatalf("unexpected result %+v", r)
		}
	})
	t.Run("tenhou", func(t *testing.T) {
		ctx := newCtx("23m456p789s234s88p1m", true)
		ctx.FirstTurn, ctx.Dealer = true, true
		r, err := sc.Score(ctx)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if r.Yakuman != 1 || !hasYaku(r.Candidate, YakuTenhou) {
			t.Fatalf("unexpected result %+v", r)
		}
	})
	t.Run("tenhou upgrades suuankou", func(t *testing.T) {
		ctx := newCtx("111m222p333s44s55z5z", true)
		ctx.FirstTurn, ctx.Dealer = true, true
		r, err := sc.Score(ctx)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if !hasYaku(r.Candidate, YakuSuuankouTanki) || hasYaku(r.Candidate, YakuSuuankou) || r.Yakuman != 3 {
			t.Fatalf("unexpected result %+v", r)
		}
	})
}

func TestEvaluate_YakumanDropsOrdinaryReadings(t *testing.T) {
	sc := newScorer()
	ctx := newCtx("111222333m99m55m5m", true)
	ctx.Riichi = 1
	ctx.Ippatsu = true
	ctx.Dora = []tile.TileType{tile.Man9}
	ctx.UraDora = []tile.TileType{tile.Man4}

	cands := sc.Evaluate(ctx)
	if len(cands) == 0 {
		t.Fatalf("no candidate")
	}
	for _, c := range cands {
		if c.Yakuman == 0 {
			t.Fatalf("ordinary reading kept next to a yakuman: %+v", c)
		}
	}
	r, err := sc.Score(ctx)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// 三连刻拆成一杯口可以数到 16 番，仍然只按四暗刻计
	if r.Yakuman != 1 || r.Han != 13 || !hasYaku(r.Candidate, YakuSuuankou) || hasYaku(r.Candidate, YakuRiichi) {
		t.Fatalf("unexpected result %+v", r)
	}
}

func chi(s string) meld.Meld {
	ts := tile.MustParse(s)
	return meld.NewChi(ts, ts[0])
}

func pon(s string) meld.Meld {
	ts := tile.MustParse(s)
	return meld.NewPon(ts, ts[0], 2)
}

func ankans(kinds ...tile.TileType) []meld.Meld {
	out := make([]meld.Meld, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, meld.NewAnkan(k))
	}
	return out
}

func TestScore_YakuCheckers(t *testing.T) {
	cases := []struct {
		name    string
		hand    string
		tsumo   bool
		melds   []meld.Meld
		riichi  int
		special Special
		first   bool
		want    Yaku
		han     int // 役满时为倍数
	}{
		{name: "double riichi", hand: "234m456p678s345s88p", riichi: 2, want: YakuDoubleRiichi, han: 2},
		{name: "iipeikou", hand: "112233m456p789s55p", want: YakuIipeikou, han: 1},
		{name: "ryanpeikou over chiitoi", hand: "112233m556677p99s", want: YakuRyanpeikou, han: 3},
		{name: "tanyao", hand: "234m456p678s345s88p", want: YakuTanyao, han: 1},
		{name: "kuitan", hand: "234m456p345s88p", melds: []meld.Meld{chi("678s")}, want: YakuTanyao, han: 1},
		{name: "haku", hand: "555z123m456p789s11p", want: YakuHaku, han: 1},
		{name: "hatsu", hand: "666z123m456p789s11p", want: YakuHatsu, han: 1},
		{name: "chun", hand: "777z123m456p789s11p", want: YakuChun, han: 1},
		{name: "round wind", hand: "111z123m456p789s99p", want: YakuBakaze, han: 1},
		{name: "seat wind", hand: "222z123m456p789s99p", want: YakuJikaze, han: 1},
		{name: "rinshan", hand: "234m456p678s345s88p", tsumo: true, special: SpecialRinshan, want: YakuRinshan, han: 1},
		{name: "chankan", hand: "234m456p678s345s88p", special: SpecialChankan, want: YakuChankan, han: 1},
		{name: "haitei", hand: "234m456p678s345s88p", tsumo: true, special: SpecialLast, want: YakuHaitei, han: 1},
		{name: "houtei", hand: "234m456p678s345s88p", special: SpecialLast, want: YakuHoutei, han: 1},
		{name: "sanshoku", hand: "123m123p12s789m55p3s", want: YakuSanshoku, han: 2},
		{name: "sanshoku open", hand: "123m123p789m55p", melds: []meld.Meld{chi("123s")}, want: YakuSanshoku, han: 1},
		{name: "ittsu", hand: "123456789m234p55p", want: YakuIttsu, han: 2},
		{name: "ittsu open", hand: "456789m234p55p", melds: []meld.Meld{chi("123m")}, want: YakuIttsu, han: 1},
		{name: "chanta", hand: "123m789p789s999m11z", want: YakuChanta, han: 2},
		{name: "junchan", hand: "123m789p789s999m11p", want: YakuJunchan, han: 3},
		{name: "toitoi", hand: "777s888s99m", melds: []meld.Meld{pon("222m"), pon("333p")}, want: YakuToitoi, han: 2},
		{name: "sanankou tsumo shanpon", hand: "111m333p789s55s99m9m", tsumo: true, want: YakuSanankou, han: 2},
		{name: "sankantsu", hand: "123m55p", melds: ankans(tile.Man9, tile.Pin1, tile.So9), want: YakuSankantsu, han: 2},
		{name: "sanshoku dokou", hand: "222m222p222s456m99s", want: YakuSanshokuDokou, han: 2},
		{name: "shousangen", hand: "555z666z123m456m77z", want: YakuShousangen, han: 2},
		{name: "honroutou", hand: "111m999p111z55z99s9s", want: YakuHonroutou, han: 2},
		{name: "honitsu", hand: "123m456m999m11z55z5z", want: YakuHonitsu, han: 3},
		{name: "honitsu open", hand: "456m999m11z55z5z", melds: []meld.Meld{chi("123m")}, want: YakuHonitsu, han: 2},
		{name: "chinitsu", hand: "123m345m567m789m2m2m", want: YakuChinitsu, han: 6},
		{name: "chinitsu open", hand: "345m567m789m22m", melds: []meld.Meld{chi("123m")}, want: YakuChinitsu, han: 5},

		{name: "kokushi", hand: "119m19p19s123456z7z", want: YakuKokushi, han: 1},
		{name: "suuankou", hand: "111222333m99m55m5m", tsumo: true, want: YakuSuuankou, han: 1},
		{name: "suuankou tanki", hand: "111m222p333s444s55z", want: YakuSuuankouTanki, han: 2},
		{name: "shousuushi", hand: "111z222z333z123m44z", want: YakuShousuushi, han: 1},
		{name: "daisuushi", hand: "111z222z333z444z55m", want: YakuDaisuushi, han: 2},
		{name: "tsuuiisou", hand: "111z222z555z66z77z7z", want: YakuTsuuiisou, han: 1},
		{name: "chinroutou", hand: "111m999m111p11s99s9s", want: YakuChinroutou, han: 1},
		{name: "ryuuiisou", hand: "234s234s666s88s66z6z", want: YakuRyuuiisou, han: 1},
		{name: "suukantsu", hand: "55p", melds: ankans(tile.Man1, tile.Pin9, tile.So1, tile.North), want: YakuSuukantsu, han: 1},
		{name: "chiihou", hand: "23m456p789s234s88p1m", tsumo: true, first: true, want: YakuChiihou, han: 1},
	}
	sc := newScorer()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := newCtx(c.hand, c.tsumo)
			ctx.Melds = c.melds
			ctx.Riichi = c.riichi
			ctx.Special = c.special
			ctx.FirstTurn = c.first
			r, err := sc.Score(ctx)
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			for _, it := range r.Items {
				if it.Yaku == c.want {
					if it.Han != c.han {
						t.Fatalf("%s counted %d, want %d", c.want, it.Han, c.han)
					}
					return
				}
			}
			t.Fatalf("%s missing from %+v", c.want, r.Items)
		})
	}
}

func TestScore_SanankouShanponRon(t *testing.T) {
	sc := newScorer()
	ctx := newCtx("111m333p789s55s99m9m", false)
	ctx.Riichi = 1
	r, err := sc.Score(ctx)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// 荣和完成的刻子算明刻，只剩两个暗刻
	if hasYaku(r.Candidate, YakuSanankou) || r.Wait != WaitShanpon {
		t.Fatalf("unexpected result %+v", r)
	}
	// 副底 20 门清荣和 10，1m 暗刻 8，3p 暗刻 4，9m 明刻 4
	if r.Fu != 50 {
		t.Fatalf("fu = %d, want 50", r.Fu)
	}
}

func TestScore_NoYaku(t *testing.T) {
	sc := newScorer()
	chi := meld.NewChi(tile.MustParse("789s"), tile.New(tile.So7, 0))
	ctx := newCtx("23m456p234s88p1m", false)
	ctx.Melds = []meld.Meld{chi}
	ctx.Dora = []tile.TileType{tile.Pin7}
	if _, err := sc.Score(ctx); !errors.Is(err, ErrNoYaku) {
		t.Fatalf("dora alone must not make a win, err = %v", err)
	}
	if c := sc.Evaluate(ctx); len(c) != 0 {
		t.Fatalf("no candidate expected, got %+v", c)
	}
}

func TestScore_OpenPinfuShapeRon(t *testing.T) {
	sc := newScorer()
	chi := meld.NewChi(tile.MustParse("678s"), tile.New(tile.So6, 0))
	ctx := newCtx("34m456p234s88p2m", false)
	ctx.Melds = []meld.Meld{chi}
	r, err := sc.Score(ctx)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if r.Fu != 30 || r.Han != 1 || !hasYaku(r.Candidate, YakuTanyao) {
		t.Fatalf("unexpected result %+v", r)
	}
	if p := r.Payment(false, false, 0); p.Ron != 10 {
		t.Fatalf("ron payment = %d, want 10", p.Ron)
	}

	ctx.NoKuitan = true
	if _, err := sc.Score(ctx); !errors.Is(err, ErrNoYaku) {
		t.Fatalf("open tanyao without kuitan must be no-yaku, err = %v", err)
	}
}

func TestScore_DoraKinds(t *testing.T) {
	ctx := newCtx("23m406p789s234s88p1m", false)
	ctx.Riichi = 1
	ctx.Ippatsu = true
	ctx.Dora = []tile.TileType{tile.Pin7}    // 8p x2
	ctx.UraDora = []tile.TileType{tile.Man1} // 2m x1
	r, err := newScorer().Score(ctx)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if r.Dora != 2 || r.Ura != 1 || r.Aka != 1 {
		t.Fatalf("dora=%d ura=%d aka=%d", r.Dora, r.Ura, r.Aka)
	}
	// 立直 一发 平和 + 4 宝牌 = 7 番跳满
	if r.Han != 7 || r.Base != 3000 || r.Limit() != "跳满" {
		t.Fatalf("unexpected result %+v", r)
	}

	ctx.Riichi = 0
	ctx.Ippatsu = false
	r, err = newScorer().Score(ctx)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if r.Ura != 0 {
		t.Fatalf("ura dora only counts under riichi")
	}
}

func TestScore_Purity(t *testing.T) {
	sc := newScorer()
	ctx := newCtx("22233344m567p88s4m", true)
	before := append([]tile.Tile(nil), ctx.Tiles...)
	a, err := sc.Score(ctx)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	b, err := sc.Score(ctx)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("scoring is not deterministic: %+v vs %+v", a, b)
	}
	if !reflect.DeepEqual(before, ctx.Tiles) {
		t.Fatalf("Score mutated its input")
	}
}

func TestScore_BadInput(t *testing.T) {
	sc := newScorer()
	if _, err := sc.Score(newCtx("23m456p789s234s8p1m", true)); !errors.Is(err, ErrBadContext) {
		t.Fatalf("13 tiles must be rejected, err = %v", err)
	}
	if _, err := sc.Score(newCtx("23m456p789s234s89p1m", true)); !errors.Is(err, ErrNotComplete) {
		t.Fatalf("incomplete hand, err = %v", err)
	}
}

func TestBasePoints(t *testing.T) {
	cases := []struct {
		han, fu, want int
	}{
		{1, 30, 240},
		{3, 30, 960},
		{4, 30, 1920},
		{4, 40, 2000},
		{3, 70, 2000},
		{5, 30, 2000},
		{7, 30, 3000},
		{10, 30, 4000},
		{12, 30, 6000},
		{13, 30, 8000},
	}
	for _, c := range cases {
		if got := basePoints(c.han, c.fu); got != c.want {
			t.Errorf("basePoints(%d, %d) = %d, want %d", c.han, c.fu, got, c.want)
		}
	}
}

func TestPayment(t *testing.T) {
	mangan := Candidate{Base: 2000}
	cases := []struct {
		name          string
		dealer, tsumo bool
		honba         int
		want          Payment
	}{
		{"non-dealer ron", false, false, 0, Payment{Ron: 80}},
		{"dealer ron", true, false, 2, Payment{Ron: 126}},
		{"dealer tsumo", true, true, 1, Payment{Other: 41}},
		{"non-dealer tsumo", false, true, 0, Payment{Dealer: 40, Other: 20}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := mangan.Payment(c.dealer, c.tsumo, c.honba); got != c.want {
				t.Fatalf("got %+v, want %+v", got, c.want)
			}
		})
	}
}
