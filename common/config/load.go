package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "RIICHI"

func setDefaults(v *viper.Viper) {
	v.SetDefault("id", "riichi-1")
	v.SetDefault("metricPort", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("rule.startScore", 250)
	v.SetDefault("rule.returnScore", 300)
	v.SetDefault("rule.minScore", 0)
	v.SetDefault("rule.useRedFives", true)
	v.SetDefault("rule.allowKuitan", true)
	v.SetDefault("rule.hanchan", true)
	v.SetDefault("rule.maxRound", 11)
	v.SetDefault("table.path", "")
	v.SetDefault("table.rebuild", false)
	v.SetDefault("cache.maxCost", 1<<24)
	v.SetDefault("cache.ttl", 600)
	v.SetDefault("database.redis.snapshotTTL", 3600)
	v.SetDefault("nats.subject", "riichi.table")
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	return v
}

// Load 读取配置文件，configFile 为空时只使用默认值和环境变量
func Load(configFile string) (*EngineConfiguration, error) {
	v := newViper(configFile)
	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件出错: %w", err)
		}
	}
	cfg := new(EngineConfiguration)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件出错: %w", err)
	}
	return cfg, nil
}

// InitConfig 加载全局配置 Conf，失败直接 panic
func InitConfig(configFile string) {
	cfg, err := Load(configFile)
	if err != nil {
		panic(err)
	}
	Conf = cfg
}

// Watcher 监听配置文件变化，规则配置在下一局生效
type Watcher struct {
	mu  sync.RWMutex
	cur *EngineConfiguration
	v   *viper.Viper
}

func Watch(configFile string, onChange func(*EngineConfiguration)) (*Watcher, error) {
	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件出错: %w", err)
	}
	w := &Watcher{v: v, cur: new(EngineConfiguration)}
	if err := v.Unmarshal(w.cur); err != nil {
		return nil, fmt.Errorf("解析配置文件出错: %w", err)
	}
	v.OnConfigChange(func(in fsnotify.Event) {
		if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Create) {
			return
		}
		next := new(EngineConfiguration)
		if err := v.Unmarshal(next); err != nil {
			return
		}
		w.mu.Lock()
		w.cur = next
		w.mu.Unlock()
		if onChange != nil {
			onChange(next)
		}
	})
	v.WatchConfig()
	return w, nil
}

// Current 返回最近一次成功解析的配置
func (w *Watcher) Current() *EngineConfiguration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cur
}
