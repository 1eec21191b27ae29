package main

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"riichi/engine/meld"
	"riichi/engine/tile"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--quiet"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMeldDecode(t *testing.T) {
	pon, err := meld.EncodePon(
		[]tile.Tile{tile.New(tile.Man1, 0), tile.New(tile.Man1, 1), tile.New(tile.Man1, 2)},
		tile.New(tile.Man1, 1), 2)
	if err != nil {
		t.Fatalf("EncodePon: %v", err)
	}
	out, err := execute(t, "meld", "decode", strconv.Itoa(pon))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, "pon[1m1m1m] from=2") || !strings.Contains(out, "claimed=1m") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := execute(t, "meld", "decode", "abc"); err == nil {
		t.Fatalf("non-numeric code must be rejected")
	}
}

func TestTablesBuildCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.bin")
	if _, err := execute(t, "tables", "build", "--out", path); err != nil {
		t.Fatalf("build: %v", err)
	}
	out, err := execute(t, "tables", "check", "--in", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "ok") {
		t.Fatalf("unexpected output %q", out)
	}
}
