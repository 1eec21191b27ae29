package game

import (
	"testing"

	"riichi/engine/tile"
	"riichi/engine/yaku"
)

// prefer 按给定顺序选第一个可用的操作，否则取默认
func prefer(types ...ActionType) DecisionProvider {
	return ProviderFunc(func(req *DecisionRequest) Action {
		for _, typ := range types {
			for _, o := range req.Options {
				if o.Type == typ {
					return o
				}
			}
		}
		return req.Default
	})
}

// discardWhere 轮到自己时优先打出满足 pred 的牌，摸到的牌最优先
func discardWhere(pred func(tile.Tile) bool) DecisionProvider {
	return ProviderFunc(func(req *DecisionRequest) Action {
		if req.Phase != PhaseTurn {
			return req.Default
		}
		if d := req.Default; d.Type == ActDiscard && pred(d.Tile) {
			return d
		}
		for _, o := range req.Options {
			if o.Type == ActDiscard && pred(o.Tile) {
				return o
			}
		}
		return req.Default
	})
}

func hasYaku(r *yaku.Result, y yaku.Yaku) bool {
	for _, it := range r.Items {
		if it.Yaku == y {
			return true
		}
	}
	return false
}

func playOneHand(t *testing.T, opts Options) (*Table, *HandResult) {
	t.Helper()
	tb := NewTable(opts)
	res, err := tb.PlayHand()
	if err != nil {
		t.Fatalf("PlayHand: %v", err)
	}
	return tb, res
}

func TestPlayHand_Aborts(t *testing.T) {
	cases := []struct {
		name      string
		hands     [4]string
		draws     string
		providers [4]DecisionProvider
		want      EndKind
		delta     [4]int
		sticks    int
	}{
		{
			name:      "nine terminals",
			hands:     [4]string{"15679m19p19s1234z", "2468m2468p2468s5z", "3579m3579p3579s6z", "2468m2468p2468s7z"},
			providers: [4]DecisionProvider{prefer(ActKyuushu)},
			want:      EndKyuushu,
		},
		{
			// 四家第一巡都打东
			name:  "four winds",
			hands: [4]string{"2468m2468p2468s1z", "3579m3579p3579s1z", "2468m2468p2468s1z", "3579m3579p3579s1z"},
			providers: func() [4]DecisionProvider {
				east := discardWhere(func(x tile.Tile) bool { return x.Type() == tile.East })
				return [4]DecisionProvider{east, east, east, east}
			}(),
			want: EndSuufon,
		},
		{
			// 四家都摸切立直 1m，听的牌没人打
			name:  "four riichi",
			hands: [4]string{"123p456p789p1122z", "123s456s789s3344z", "234p567p234s567s5z", "345p678p345s678s6z"},
			providers: [4]DecisionProvider{
				Baseline{Riichi: true}, Baseline{Riichi: true}, Baseline{Riichi: true}, Baseline{Riichi: true},
			},
			want:   EndSuucha,
			delta:  [4]int{-10, -10, -10, -10},
			sticks: 4,
		},
		{
			// 庄家和下家各暗杠两次
			name:      "four kans by two players",
			hands:     [4]string{"1111p2222p3579s1z", "3333p4444p2468s2z", "56789m56789s334z", "1234m1234s55667z"},
			providers: [4]DecisionProvider{prefer(ActAnkan), prefer(ActAnkan)},
			want:      EndSuukan,
		},
		{
			// 庄家摸切赤 5m，三家同时荣和
			name:  "triple ron",
			hands: [4]string{"1379m1379p1379s1z", "46m234p567p678s22s", "55m234p567p678s33s", "2225m345p678p345s"},
			draws: "5m",
			want:  EndTripleRon,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := &recorder{}
			tb, res := playOneHand(t, Options{
				Deck:      fixedDeck(stackDeck(t, c.hands, c.draws)),
				Providers: c.providers,
				Sinks:     []EventSink{rec},
			})
			if res.Kind != c.want {
				t.Fatalf("kind = %s, want %s", res.Kind, c.want)
			}
			if len(res.Wins) != 0 || res.Delta != c.delta {
				t.Fatalf("abort moved points: %+v", res)
			}
			s := tb.Situation()
			if !res.DealerKeeps || s.Dealer != 0 || s.Honba != 1 || s.RiichiSticks != c.sticks {
				t.Fatalf("dealer keeps with one more honba, got %+v", s)
			}
			if len(rec.ofType(EventRon)) != 0 || len(rec.ofType(EventRoundEnd)) != 1 {
				t.Fatalf("abort emits only round_end")
			}
		})
	}
}

func TestPlayHand_FourKansRevealDora(t *testing.T) {
	rec := &recorder{}
	hands := [4]string{"1111p2222p3579s1z", "3333p4444p2468s2z", "56789m56789s334z", "1234m1234s55667z"}
	_, res := playOneHand(t, Options{
		Deck:      fixedDeck(stackDeck(t, hands, "")),
		Providers: [4]DecisionProvider{prefer(ActAnkan), prefer(ActAnkan)},
		Sinks:     []EventSink{rec},
	})
	if res.Kind != EndSuukan || len(rec.ofType(EventAnkan)) != 4 {
		t.Fatalf("kind %s after %d kans", res.Kind, len(rec.ofType(EventAnkan)))
	}
	// 每次杠都翻一张新宝牌指示牌
	if got := len(rec.ofType(EventDora)); got != 4 {
		t.Fatalf("dora reveals = %d, want 4", got)
	}
}

func TestPlayHand_Nagashi(t *testing.T) {
	hands := [4]string{"1199m1199p1s1234z", "24568m2468p2468s", "3578m35678p3578s", "2468m2468p24568s"}
	// 庄家前五次摸到幺九，其余三家第一张就打中张
	draws := "9s3m4p7s" + "5z3p7m3s" + "6z7p4s6m" + "7z5p3m5s" + "9s7m6p4m"
	yaochu := discardWhere(func(x tile.Tile) bool { return x.Type().IsYaochu() })
	tb, res := playOneHand(t, Options{
		Deck:      fixedDeck(stackDeck(t, hands, draws)),
		Providers: [4]DecisionProvider{yaochu},
	})
	if res.Kind != EndNagashi {
		t.Fatalf("kind = %s, want nagashi", res.Kind)
	}
	for _, x := range tb.agents[0].Discards() {
		if !x.Type().IsYaochu() {
			t.Fatalf("dealer discarded %s", x)
		}
	}
	// 庄家流局满贯：每家 40
	if want := [4]int{120, -40, -40, -40}; res.Delta != want {
		t.Fatalf("delta = %v, want %v", res.Delta, want)
	}
	if tb.wall.Left() != 0 || tb.Situation().Honba != 1 {
		t.Fatalf("nagashi is a draw, honba %d", tb.Situation().Honba)
	}
}

func TestPlayHand_Chankan(t *testing.T) {
	hands := [4]string{
		"2468m2468s2468p1z",
		"3579m3579s34677z",
		"55p1379m1379s123z",
		"46p123m789m789s11s", // 嵌张 5p，没有别的役
	}
	// 庄家打 5p 被对家碰，对家第二次摸到最后一张 5p 加杠
	rec := &recorder{}
	_, res := playOneHand(t, Options{
		Deck:      fixedDeck(stackDeck(t, hands, "5p2z4z6p5p")),
		Providers: [4]DecisionProvider{nil, nil, prefer(ActKakan, ActPon)},
		Sinks:     []EventSink{rec},
	})
	if len(rec.ofType(EventPon)) != 1 || len(rec.ofType(EventKakan)) != 0 {
		t.Fatalf("pon %d kakan %d", len(rec.ofType(EventPon)), len(rec.ofType(EventKakan)))
	}
	if res.Kind != EndRon || len(res.Wins) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	w := res.Wins[0]
	if w.Seat != 3 || w.From != 2 || w.Tile.Type() != tile.Pin5 || !hasYaku(w.Result, yaku.YakuChankan) {
		t.Fatalf("seat 3 robs the kan, got %+v / %+v", w, w.Result)
	}
	if res.Delta[2] >= 0 || res.Delta[3] <= 0 || res.Delta[0] != 0 || res.Delta[1] != 0 {
		t.Fatalf("only the kan caller pays, delta %v", res.Delta)
	}
}

func TestPlayHand_Rinshan(t *testing.T) {
	hands := [4]string{"1111p234m567m789s", "2468m2468p2468s5z", "3579m3579p3579s6z", "2468m2468p2468s7z"}
	deck := stackDeck(t, hands, "8s")
	// 第一张岭上牌
	deck = place(deck, tile.TileLimit-2, tile.New(tile.So8, 3))
	rec := &recorder{}
	_, res := playOneHand(t, Options{
		Deck:      fixedDeck(deck),
		Providers: [4]DecisionProvider{prefer(ActTsumo, ActAnkan)},
		Sinks:     []EventSink{rec},
	})
	if res.Kind != EndTsumo || res.Wins[0].Seat != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	r := res.Wins[0].Result
	if !hasYaku(r, yaku.YakuRinshan) || !hasYaku(r, yaku.YakuTsumo) {
		t.Fatalf("rinshan tsumo expected, got %+v", r)
	}
	if len(rec.ofType(EventAnkan)) != 1 || len(rec.ofType(EventDora)) != 1 {
		t.Fatalf("one kan, one new indicator")
	}
}

func TestPlayHand_LastTile(t *testing.T) {
	// 最后一张活牌由座位 1 摸到，单骑 7z 的另外三张都在别家手里
	last := tile.New(tile.Red, 3)
	t.Run("haitei", func(t *testing.T) {
		hands := [4]string{"2468m2468p2468s7z", "123m456p789s999m7z", "3579m3579p3579s7z", "2468m2468p2468s6z"}
		deck := place(stackDeck(t, hands, ""), dealSize+liveWallSize-1, last)
		tb, res := playOneHand(t, Options{Deck: fixedDeck(deck)})
		if res.Kind != EndTsumo || res.Wins[0].Seat != 1 || tb.wall.Left() != 0 {
			t.Fatalf("unexpected result %+v", res)
		}
		if r := res.Wins[0].Result; !hasYaku(r, yaku.YakuHaitei) || hasYaku(r, yaku.YakuHoutei) {
			t.Fatalf("haitei expected, got %+v", r)
		}
	})
	t.Run("houtei", func(t *testing.T) {
		hands := [4]string{"2468m2468p2468s7z", "3579m3579p3579s6z", "123m456p789s999m7z", "2468m2468p2468s7z"}
		deck := place(stackDeck(t, hands, ""), dealSize+liveWallSize-1, last)
		_, res := playOneHand(t, Options{Deck: fixedDeck(deck)})
		if res.Kind != EndRon || res.Wins[0].Seat != 2 || res.Wins[0].From != 1 {
			t.Fatalf("unexpected result %+v", res)
		}
		if r := res.Wins[0].Result; !hasYaku(r, yaku.YakuHoutei) || hasYaku(r, yaku.YakuHaitei) {
			t.Fatalf("houtei expected, got %+v", r)
		}
	})
}
