package tables

import (
	"errors"
	"io/fs"
	"sync"
	"sync/atomic"

	"riichi/common/log"
)

// Source 查表方只依赖这个接口，测试可注入小表
// Generation 每次换表加一，查表结果的缓存键要带上它
type Source interface {
	Current() *Tables
	Generation() uint64
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default 进程内共享的表，首次调用时构建
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTables = Build()
	})
	return defaultTables
}

// Store 可整体替换的表引用，替换是原子的，旧表不被修改
type Store struct {
	cur atomic.Pointer[Tables]
	gen atomic.Uint64
}

func NewStore(t *Tables) *Store {
	s := &Store{}
	s.cur.Store(t)
	return s
}

func (s *Store) Current() *Tables { return s.cur.Load() }

func (s *Store) Generation() uint64 { return s.gen.Load() }

// Swap 先换表再加代数，读到新代数的一方一定看到新表
func (s *Store) Swap(t *Tables) *Tables {
	old := s.cur.Swap(t)
	s.gen.Add(1)
	return old
}

// LoadOrBuild 文件存在则加载，否则构建并写回；rebuild 为 true 时总是重建
func LoadOrBuild(path string, rebuild bool) (*Tables, error) {
	if path == "" {
		return Default(), nil
	}
	if !rebuild {
		t, err := Load(path)
		if err == nil {
			log.Info("和牌表已加载: %s win=%d tenpai=%d", path, len(t.Win), len(t.Tenpai))
			return t, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	t := Build()
	if err := t.Save(path); err != nil {
		return nil, err
	}
	log.Info("和牌表已重建并保存: %s", path)
	return t, nil
}
