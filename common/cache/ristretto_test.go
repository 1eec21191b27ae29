package cache

import (
	"testing"
	"time"
)

func TestGeneralCache_SetGet(t *testing.T) {
	c, err := NewGeneralCache(1024, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer c.Close()

	c.Set("waits", uint64(0b1010))
	c.Wait()

	got, ok := c.GetUint64("waits")
	if !ok || got != 0b1010 {
		t.Fatalf("expected cached 0b1010, got %b ok=%v", got, ok)
	}

	c.Delete("waits")
	if _, ok := c.Get("waits"); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestGeneralCache_WrongType(t *testing.T) {
	c, err := NewGeneralCache(0, 0)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer c.Close()

	c.Set("k", "text")
	c.Wait()
	if _, ok := c.GetUint64("k"); ok {
		t.Fatalf("string value must not read as uint64")
	}
}

func TestGeneralCache_Clear(t *testing.T) {
	c, err := NewGeneralCache(1024, 0)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer c.Close()

	c.Set("w0:a", uint64(1))
	c.Wait()
	c.Clear()
	if _, ok := c.Get("w0:a"); ok {
		t.Fatalf("expected cache to be empty after Clear")
	}
}
