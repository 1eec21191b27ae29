package agari

import (
	"testing"
	"time"

	"riichi/common/cache"
	"riichi/engine/tables"
	"riichi/engine/tile"
)

func newDetector(t testing.TB) *Detector {
	t.Helper()
	c, err := cache.NewGeneralCache(1<<12, time.Minute)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	return NewDetector(tables.Default(), c)
}

func TestIsComplete_SevenPairs(t *testing.T) {
	d := newDetector(t)
	h := tile.MustCount("1133m5577p99s1122z")
	got := d.IsComplete(h)
	if !got.Complete() || got.Status != StatusRegular || !got.Payloads[0].Chiitoi() {
		t.Fatalf("seven pairs must be complete, got %+v", got)
	}
	for _, k := range []tile.TileType{tile.Man1, tile.Pin5, tile.East} {
		broken := h
		broken[k] = 1
		if res := d.IsComplete(broken); res.Status != StatusNone {
			t.Fatalf("breaking pair %s must return none, got %+v", k, res)
		}
	}
}

func TestIsComplete_Kokushi(t *testing.T) {
	d := newDetector(t)
	h := tile.MustCount("19m19p19s12345677z")
	if got := d.IsComplete(h); got.Status != StatusKokushi {
		t.Fatalf("thirteen orphans must be reported as kokushi, got %+v", got)
	}

	// 去掉重复的那张：十三面听牌
	h13 := h
	h13[tile.Red]--
	if d.IsComplete(h13).Complete() {
		t.Fatalf("13 singles is not a win")
	}
	if !d.IsTenpai(h13) {
		t.Fatalf("13 singles must be tenpai")
	}
	if waits := d.WaitingTiles(h13); waits.Len() != 13 {
		t.Fatalf("13-sided wait expected, got %s", waits)
	}

	// 12 种 + 对子，缺一种
	h12 := tile.MustCount("19m19p19s1234566z")
	if !d.IsTenpai(h12) {
		t.Fatalf("12 kinds with a pair must be tenpai")
	}
	if waits := d.WaitingTiles(h12); waits.Len() != 1 || !waits.Has(tile.Red) {
		t.Fatalf("single wait on 7z expected, got %s", waits)
	}
}

func TestIsComplete_Defect(t *testing.T) {
	h := tile.MustCount("123m456p789s11122z")
	broken := &tables.Tables{
		Win:    map[uint32][]tables.Payload{},
		Tenpai: map[uint32]struct{}{},
	}
	for k := range tables.Default().Win {
		broken.Win[k] = nil
	}
	got := NewDetector(broken, nil).IsComplete(h)
	if !got.Defect() || got.Complete() {
		t.Fatalf("empty payload list must be reported as a defect, got %+v", got)
	}
}

func TestWaitingTiles(t *testing.T) {
	d := newDetector(t)
	cases := []struct {
		hand string
		want tile.KindSet
	}{
		{"23m456p789s11122z", tile.SetOf(tile.Man1, tile.Man4)},
		{"13m456p789s11122z", tile.SetOf(tile.Man2)},
		{"1112345678999m", tile.SetOf(tile.Man1, tile.Man2, tile.Man3, tile.Man4, tile.Man5, tile.Man6, tile.Man7, tile.Man8, tile.Man9)},
		{"123m456p789s1112z", tile.SetOf(tile.South)},
		{"7z", tile.SetOf(tile.Red)},
	}
	for _, c := range cases {
		got := d.WaitingTiles(tile.MustCount(c.hand))
		if got != c.want {
			t.Errorf("WaitingTiles(%s) = %s, want %s", c.hand, got, c.want)
		}
	}
}

func TestWaitingTiles_FifthCopy(t *testing.T) {
	d := newDetector(t)
	// 1111m 只能等第五张 1m，不算听牌
	h := tile.MustCount("1111m456p789s111z")
	if w := d.WaitingTiles(h); w.Has(tile.Man1) {
		t.Fatalf("a fifth copy can never be a wait, got %s", w)
	}
}

func TestWaitingTiles_Cached(t *testing.T) {
	d := newDetector(t)
	h := tile.MustCount("23m456p789s11122z")
	first := d.WaitingTiles(h)
	d.cache.Wait()
	second := d.WaitingTiles(h)
	if first != second {
		t.Fatalf("cached waits differ: %s vs %s", first, second)
	}
}

func TestWaitingTiles_CacheFollowsTableSwap(t *testing.T) {
	c, err := cache.NewGeneralCache(1<<12, time.Minute)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	defer c.Close()
	store := tables.NewStore(tables.Default())
	d := NewDetector(store, c)
	h := tile.MustCount("23m456p789s11122z")
	if w := d.WaitingTiles(h); w != tile.SetOf(tile.Man1, tile.Man4) {
		t.Fatalf("waits before swap = %s", w)
	}
	c.Wait()

	// 换成空表后旧的听牌结果不能再被读到
	store.Swap(&tables.Tables{Win: map[uint32][]tables.Payload{}, Tenpai: map[uint32]struct{}{}})
	if w := d.WaitingTiles(h); !w.Empty() {
		t.Fatalf("stale waits served after swap: %s", w)
	}
}

func TestCanDeclareRiichi(t *testing.T) {
	d := newDetector(t)
	h := tile.MustCount("23m456p789s11122z9m")
	if !d.CanDeclareRiichi(h) {
		t.Fatalf("discarding 9m keeps the hand tenpai")
	}
	discards := d.RiichiDiscards(h)
	if !discards.Has(tile.Man9) {
		t.Fatalf("9m must be a riichi discard, got %s", discards)
	}
	h = tile.MustCount("159m159p159s12345z")
	if d.CanDeclareRiichi(h) {
		t.Fatalf("scattered hand cannot riichi")
	}
}

func TestShanten(t *testing.T) {
	cases := []struct {
		hand  string
		melds int
		want  int
	}{
		{"123m456p789s11122z", 0, -1},
		{"123m456p789s1122z", 0, 0},
		{"1133m5577p99s1123z", 0, 0},
		{"19m19p19s1234567z", 0, 0},
		{"123m456p78s11223z", 0, 1},
		{"456p789s1z", 2, 0},
	}
	for _, c := range cases {
		if got := Shanten(tile.MustCount(c.hand), c.melds); got != c.want {
			t.Errorf("Shanten(%s, %d) = %d, want %d", c.hand, c.melds, got, c.want)
		}
	}
}

func TestUkeire(t *testing.T) {
	h := tile.MustCount("23m456p789s11122z")
	kinds, n := Ukeire(h, 0, nil)
	if kinds != tile.SetOf(tile.Man1, tile.Man4) || n != 8 {
		t.Fatalf("ryanmen ukeire expected 1m4m x8, got %s x%d", kinds, n)
	}
	var visible [tile.KindCount]int
	visible[tile.Man1] = 3
	if _, n := Ukeire(h, 0, &visible); n != 5 {
		t.Fatalf("visible tiles must reduce ukeire to 5, got %d", n)
	}
}

func BenchmarkWaitingTiles(b *testing.B) {
	d := NewDetector(tables.Default(), nil)
	h := tile.MustCount("1112345678999m")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.WaitingTiles(h)
	}
}
