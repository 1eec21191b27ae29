package container

import (
	"fmt"
	"sync"
	"time"

	"riichi/common/cache"
	"riichi/common/config"
	"riichi/common/database"
	"riichi/common/log"
	"riichi/core/domain/repository"
	"riichi/core/infrastructure/message"
	"riichi/core/infrastructure/persistence"
	"riichi/engine/agari"
	"riichi/engine/game"
	"riichi/engine/tables"
)

// EngineContainer 规则引擎进程的依赖：和牌表、缓存，以及可选的 mongo、redis、nats
// 未配置地址的外部组件不创建，对应的事件落点也不挂
type EngineContainer struct {
	Tables   *tables.Store
	Cache    *cache.GeneralCache
	Detector *agari.Detector

	mongo     *database.MongoManager
	redis     *database.RedisManager
	publisher *message.NatsPublisher

	records   repository.GameRecordRepository
	snapshots repository.SnapshotRepository

	persisters []*game.GamePersister
	closed     bool
	mu         sync.Mutex
}

// NewEngineContainer 外部组件连接失败时返回错误，已创建的资源会被关闭
func NewEngineContainer(conf *config.EngineConfiguration) (*EngineContainer, error) {
	t, err := tables.LoadOrBuild(conf.TableConf.Path, conf.TableConf.Rebuild)
	if err != nil {
		return nil, fmt.Errorf("和牌表初始化失败: %w", err)
	}
	c, err := cache.NewGeneralCache(conf.CacheConf.MaxCost, time.Duration(conf.CacheConf.TTL)*time.Second)
	if err != nil {
		return nil, err
	}
	ec := &EngineContainer{Tables: tables.NewStore(t), Cache: c}
	ec.Detector = agari.NewDetector(ec.Tables, c)

	if conf.MongoConf.Enabled() {
		if ec.mongo, err = database.NewMongo(conf.MongoConf); err != nil {
			_ = ec.Close()
			return nil, err
		}
		ec.records = persistence.NewGameRecordRepository(ec.mongo)
	}
	if conf.RedisConf.Enabled() {
		if ec.redis, err = database.NewRedis(conf.RedisConf); err != nil {
			_ = ec.Close()
			return nil, err
		}
		ttl := time.Duration(conf.RedisConf.SnapshotTTL) * time.Second
		ec.snapshots = persistence.NewSnapshotRepository(ec.redis, ttl)
	}
	if conf.NatsConfig.Enabled() {
		if ec.publisher, err = message.NewNatsPublisher(conf.NatsConfig); err != nil {
			_ = ec.Close()
			return nil, err
		}
	}
	log.Info("EngineContainer 创建完成 mongo=%v redis=%v nats=%v",
		ec.mongo != nil, ec.redis != nil, ec.publisher != nil)
	return ec, nil
}

// Sinks 一场对局的事件落点，providers 为各座位决策者的名字
func (c *EngineContainer) Sinks(gameID string, seed int64, providers [4]string) []game.EventSink {
	sinks := []game.EventSink{game.LogSink{}}
	if c.records != nil {
		gp := game.NewGamePersister(c.records, gameID, seed, providers)
		c.mu.Lock()
		c.persisters = append(c.persisters, gp)
		c.mu.Unlock()
		sinks = append(sinks, gp)
	}
	if c.snapshots != nil {
		sinks = append(sinks, game.NewSnapshotSink(c.snapshots))
	}
	if c.publisher != nil {
		sinks = append(sinks, game.NewPublishSink(c.publisher))
	}
	return sinks
}

// Records 未启用 mongo 时为 nil
func (c *EngineContainer) Records() repository.GameRecordRepository { return c.records }

// ReloadTables 重新加载和牌表，进行中的牌桌下一次查表生效
func (c *EngineContainer) ReloadTables(conf config.TableConf) error {
	t, err := tables.LoadOrBuild(conf.Path, conf.Rebuild)
	if err != nil {
		return err
	}
	c.Tables.Swap(t)
	if c.Cache != nil {
		c.Cache.Clear()
	}
	log.Info("和牌表已替换, generation=%d", c.Tables.Generation())
	return nil
}

// Close 等待牌谱写完后再断开连接，可重复调用
func (c *EngineContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	for _, gp := range c.persisters {
		gp.Wait()
	}
	var errs []error
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.mongo != nil {
		if err := c.mongo.Close(); err != nil {
			log.Error("mongo 关闭失败: %v", err)
			errs = append(errs, err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Cache != nil {
		c.Cache.Close()
	}
	if len(errs) > 0 {
		return fmt.Errorf("关闭资源时发生 %d 个错误", len(errs))
	}
	log.Info("EngineContainer 已关闭")
	return nil
}
