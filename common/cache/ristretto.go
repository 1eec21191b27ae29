package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache 本地缓存，value 固定 cost 为 1，MaxCost 即条目上限
type GeneralCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewGeneralCache ttl 为 0 表示不过期
func NewGeneralCache(maxCost int64, ttl time.Duration) (*GeneralCache, error) {
	if maxCost <= 0 {
		maxCost = 1 << 20
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}
	return &GeneralCache{cache: c, ttl: ttl}, nil
}

func (c *GeneralCache) Set(key string, value any) bool {
	return c.cache.SetWithTTL(key, value, 1, c.ttl)
}

func (c *GeneralCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// GetUint64 读取位集类缓存值
func (c *GeneralCache) GetUint64(key string) (uint64, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := v.(uint64)
	return n, ok
}

// Wait 等待写缓冲落地，Set 之后立即 Get 前调用
func (c *GeneralCache) Wait() {
	c.cache.Wait()
}

func (c *GeneralCache) Delete(key string) {
	c.cache.Del(key)
}

// Clear 丢弃全部条目，换表后旧代数的听牌结果不会再被读到
func (c *GeneralCache) Clear() {
	c.cache.Clear()
}

func (c *GeneralCache) Close() {
	c.cache.Close()
}
