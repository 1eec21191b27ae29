package tables

import (
	"bytes"
	"errors"
	"testing"

	"riichi/engine/pattern"
	"riichi/engine/tile"
)

func lookup(t *testing.T, hand string) []Payload {
	t.Helper()
	h := tile.MustCount(hand)
	ps, ok := Default().LookupWin(pattern.KeyOf(&h))
	if !ok {
		t.Fatalf("%s should be in the win table", hand)
	}
	return ps
}

func anyFlag(ps []Payload, flag Payload) bool {
	for _, p := range ps {
		if p&flag != 0 {
			return true
		}
	}
	return false
}

func TestDecompose_SmallShape(t *testing.T) {
	ps := Decompose(pattern.Pattern{{3, 1, 1}})
	if len(ps) != 1 {
		t.Fatalf("expected exactly one decomposition, got %d", len(ps))
	}
	p := ps[0]
	if p.Triplets() != 0 || p.Runs() != 1 || p.PairPos() != 0 || p.Group(0) != 0 {
		t.Fatalf("unexpected payload t=%d r=%d pair=%d g0=%d", p.Triplets(), p.Runs(), p.PairPos(), p.Group(0))
	}
}

func TestBuild_RegularHands(t *testing.T) {
	ps := lookup(t, "123m456p789s11122z")
	if len(ps) != 1 || ps[0].Triplets() != 1 || ps[0].Runs() != 3 {
		t.Fatalf("unexpected decomposition %v", ps)
	}

	// 111222333m 可拆成三刻子或三顺子
	ps = lookup(t, "111222333m456p77s")
	var triplets, runs bool
	for _, p := range ps {
		if p.Triplets() == 3 {
			triplets = true
		}
		if p.Runs() == 4 {
			runs = true
		}
	}
	if !triplets || !runs {
		t.Fatalf("both triplet and run readings expected, got %v", ps)
	}

	// 副露后的 8 张、2 张形状也在表里
	lookup(t, "123m456p77s")
	lookup(t, "55z")

	h := tile.MustCount("123m456p789s11223z")
	if _, ok := Default().LookupWin(pattern.KeyOf(&h)); ok {
		t.Fatalf("broken hand must not be a win")
	}
}

func TestBuild_StructuralFlags(t *testing.T) {
	if ps := lookup(t, "11123455678999m"); !anyFlag(ps, FlagChuuren) {
		t.Fatalf("nine gates flag missing")
	}
	if ps := lookup(t, "123456789m123p11s"); !anyFlag(ps, FlagIttsu) {
		t.Fatalf("pure straight flag missing")
	}
	ps := lookup(t, "112233m445566p77s")
	if !anyFlag(ps, FlagRyanpeikou) {
		t.Fatalf("twice double-run flag missing")
	}
	if anyFlag(ps, FlagChiitoi) {
		t.Fatalf("seven pairs must not be offered when a regular reading exists")
	}
	if ps := lookup(t, "112233m456p789s11z"); !anyFlag(ps, FlagIipeikou) {
		t.Fatalf("double-run flag missing")
	}
}

func TestBuild_SevenPairs(t *testing.T) {
	ps := lookup(t, "1122m3344p5566s77z")
	if len(ps) != 1 || !ps[0].Chiitoi() {
		t.Fatalf("expected the seven pairs payload, got %v", ps)
	}
	h := tile.MustCount("1122m3344p5566s7z")
	h[tile.Green]++
	if _, ok := Default().LookupWin(pattern.KeyOf(&h)); ok {
		t.Fatalf("six pairs and two singles is not a win")
	}
}

func TestBuild_Tenpai(t *testing.T) {
	for _, hand := range []string{
		"123m456p789s1122z",
		"1112345678999m",
		"1122m3344p5566s7z",
		"12m55p",
		"1z",
	} {
		h := tile.MustCount(hand)
		if !Default().IsTenpaiKey(pattern.KeyOf(&h)) {
			t.Errorf("%s should be a tenpai shape", hand)
		}
	}
	h := tile.MustCount("159m159p159s1234z")
	if Default().IsTenpaiKey(pattern.KeyOf(&h)) {
		t.Fatalf("scattered hand must not be tenpai")
	}
}

func TestRemoveAt_Splits(t *testing.T) {
	got := removeAt(pattern.Pattern{{1, 1, 1}, {2}}, 0, 1)
	if signature(got) != "1,1,2" {
		t.Fatalf("unexpected split %s", signature(got))
	}
	got = removeAt(pattern.Pattern{{1}, {2}}, 0, 0)
	if signature(got) != "2" {
		t.Fatalf("unexpected drop %s", signature(got))
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	src := Default()
	b, err := src.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var dst Tables
	if err := dst.UnmarshalBinary(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(dst.Win) != len(src.Win) || len(dst.Tenpai) != len(src.Tenpai) {
		t.Fatalf("size mismatch win %d/%d tenpai %d/%d", len(dst.Win), len(src.Win), len(dst.Tenpai), len(src.Tenpai))
	}
	for k, ps := range src.Win {
		got := dst.Win[k]
		if len(got) != len(ps) {
			t.Fatalf("key %d payload count mismatch", k)
		}
		for i := range ps {
			if got[i] != ps[i] {
				t.Fatalf("key %d payload %d mismatch", k, i)
			}
		}
	}
	again, _ := dst.MarshalBinary()
	if !bytes.Equal(b, again) {
		t.Fatalf("encoding is not stable")
	}
}

func TestUnmarshalCorrupt(t *testing.T) {
	b, _ := Default().MarshalBinary()
	var dst Tables
	truncated := append(append([]byte(nil), b...), 0x12, 0x05)
	if err := dst.UnmarshalBinary(truncated); !errors.Is(err, ErrCorruptTables) {
		t.Fatalf("expected ErrCorruptTables, got %v", err)
	}
	if err := dst.UnmarshalBinary([]byte{0x08, 0x07}); !errors.Is(err, ErrCorruptTables) {
		t.Fatalf("wrong version must be rejected, got %v", err)
	}
}

func TestStoreSwap(t *testing.T) {
	small := &Tables{Win: map[uint32][]Payload{}, Tenpai: map[uint32]struct{}{}}
	s := NewStore(small)
	if s.Current() != small {
		t.Fatalf("store should return the injected tables")
	}
	if s.Generation() != 0 {
		t.Fatalf("fresh store generation = %d", s.Generation())
	}
	old := s.Swap(Default())
	if old != small || s.Current() != Default() {
		t.Fatalf("swap did not replace atomically")
	}
	if s.Generation() != 1 {
		t.Fatalf("swap must bump the generation, got %d", s.Generation())
	}
}

func TestLoadOrBuild(t *testing.T) {
	path := t.TempDir() + "/tables.bin"
	built, err := LoadOrBuild(path, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	loaded, err := LoadOrBuild(path, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Win) != len(built.Win) {
		t.Fatalf("loaded table differs from built table")
	}
}

func BenchmarkBuild(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Build()
	}
}
