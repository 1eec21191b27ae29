package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"riichi/common/config"
	"riichi/common/log"

	"github.com/redis/go-redis/v9"
)

var ErrRedisNotInit = errors.New("redis 客户端未初始化")

type RedisManager struct {
	Cli        *redis.Client
	ClusterCli *redis.ClusterClient
}

func NewRedis(redisConf config.RedisConf) (*RedisManager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := &RedisManager{}
	if len(redisConf.ClusterAddrs) == 0 {
		addr := redisConf.Addr
		if addr == "" {
			if redisConf.Host == "" || redisConf.Port <= 0 {
				return nil, errors.New("redis 配置出错")
			}
			addr = fmt.Sprintf("%s:%d", redisConf.Host, redisConf.Port)
		}
		r.Cli = redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	} else {
		r.ClusterCli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        redisConf.ClusterAddrs,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	}

	cli, _ := r.GetClient()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis 连接错误: %w", err)
	}
	return r, nil
}

// NewRedisWithClient 复用外部创建的客户端
func NewRedisWithClient(cli *redis.Client) *RedisManager {
	return &RedisManager{Cli: cli}
}

func (r *RedisManager) GetClient() (redis.Cmdable, error) {
	if r.Cli != nil {
		return r.Cli, nil
	}
	if r.ClusterCli != nil {
		return r.ClusterCli, nil
	}
	return nil, ErrRedisNotInit
}

func (r *RedisManager) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	return cli.Set(ctx, key, value, expiration).Err()
}

func (r *RedisManager) Get(ctx context.Context, key string) (string, error) {
	cli, err := r.GetClient()
	if err != nil {
		return "", err
	}
	return cli.Get(ctx, key).Result()
}

func (r *RedisManager) Del(ctx context.Context, keys ...string) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	return cli.Del(ctx, keys...).Err()
}

// RPushTrim 追加并保留最近 n 条
func (r *RedisManager) RPushTrim(ctx context.Context, key string, n int64, value string, expiration time.Duration) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	_, err = cli.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, value)
		p.LTrim(ctx, key, -n, -1)
		p.Expire(ctx, key, expiration)
		return nil
	})
	return err
}

func (r *RedisManager) LRange(ctx context.Context, key string) ([]string, error) {
	cli, err := r.GetClient()
	if err != nil {
		return nil, err
	}
	return cli.LRange(ctx, key, 0, -1).Result()
}

func (r *RedisManager) Close() error {
	if r.Cli != nil {
		if err := r.Cli.Close(); err != nil {
			log.Error("redis 关闭出错: %v", err)
			return err
		}
	}
	if r.ClusterCli != nil {
		if err := r.ClusterCli.Close(); err != nil {
			log.Error("redisCluster 关闭出错: %v", err)
			return err
		}
	}
	return nil
}
