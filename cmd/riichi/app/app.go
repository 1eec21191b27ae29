package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"

	"riichi/common/config"
	"riichi/common/log"
	"riichi/common/metrics"
	"riichi/core/container"
	"riichi/engine/game"
)

var ErrUnknownProvider = errors.New("未知的决策者")

// Options simulate 的参数
type Options struct {
	Games      int
	Seed       int64
	Provider   string
	MetricPort int
	Watch      bool
	ConfigFile string
}

// Summary 全部对局的统计
type Summary struct {
	Games    int
	Hands    int
	RankSum  [4]int
	ScoreSum [4]int
}

func (s *Summary) add(res *game.GameResult) {
	s.Games++
	s.Hands += len(res.Hands)
	for i := range res.Ranks {
		s.RankSum[i] += res.Ranks[i]
		s.ScoreSum[i] += res.Scores[i]
	}
}

func (s *Summary) AvgRank(seat int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.RankSum[seat]) / float64(s.Games)
}

func (s *Summary) AvgScore(seat int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.ScoreSum[seat]) / float64(s.Games)
}

// newProviders seed 只给 random 用
func newProviders(name string, seed int64) ([4]game.DecisionProvider, error) {
	var ps [4]game.DecisionProvider
	for i := range ps {
		switch name {
		case "", "baseline":
			ps[i] = game.Baseline{}
		case "riichi":
			ps[i] = game.Baseline{Riichi: true}
		case "random":
			ps[i] = game.NewRandomProvider(seed*4 + int64(i))
		default:
			return ps, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
		}
	}
	return ps, nil
}

// Run 依次打完 opts.Games 场对局；收到中断信号时当前对局记为中止
func Run(ctx context.Context, conf *config.EngineConfiguration, opts Options) (*Summary, error) {
	if _, err := newProviders(opts.Provider, 0); err != nil {
		return nil, err
	}
	ec, err := container.NewEngineContainer(conf)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := ec.Close(); err != nil {
			log.Error("关闭 engine 容器失败: %v", err)
		}
	}()

	if conf.MetricPort > 0 {
		go func() {
			log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
			if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
				log.Error("监控服务退出: %v", err)
			}
		}()
	}

	var rules atomic.Pointer[config.RuleConf]
	r := conf.RuleConf
	rules.Store(&r)
	if opts.Watch && opts.ConfigFile != "" {
		_, err := config.Watch(opts.ConfigFile, func(next *config.EngineConfiguration) {
			nr := next.RuleConf
			rules.Store(&nr)
			log.SetLevel(next.LogConf.Level)
			if err := ec.ReloadTables(next.TableConf); err != nil {
				log.Warn("和牌表重新加载失败: %v", err)
			}
			log.Info("配置已更新，下一局生效: %+v", nr)
		})
		if err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(c)
	go func() {
		select {
		case s := <-c:
			log.Info("收到信号 %s，当前局结束后停止", s)
			cancel()
		case <-ctx.Done():
		}
	}()

	sum := &Summary{}
	start := time.Now()
	for i := 0; i < opts.Games; i++ {
		if ctx.Err() != nil {
			break
		}
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		} else {
			seed += int64(i)
		}
		res, err := playOne(ctx, ec, conf.BaseConfig.ID, &rules, opts.Provider, seed)
		if err != nil {
			return sum, err
		}
		if res == nil {
			break
		}
		sum.add(res)
	}
	log.Info("模拟结束 games=%d hands=%d, 耗时 %s", sum.Games, sum.Hands, time.Since(start))
	return sum, nil
}

// playOne 逐局推进以便在局间响应取消和规则变更；被取消时返回 nil
func playOne(ctx context.Context, ec *container.EngineContainer, node string,
	rules *atomic.Pointer[config.RuleConf], provider string, seed int64) (*game.GameResult, error) {
	ps, _ := newProviders(provider, seed)
	id := uuid.NewString()
	sinks := ec.Sinks(id, seed, [4]string{provider, provider, provider, provider})
	t := game.NewTable(game.Options{
		GameID:    id,
		Seed:      seed,
		Rules:     *rules.Load(),
		Detector:  ec.Detector,
		Providers: ps,
		Sinks:     sinks,
	})
	log.Debug("[%s] 开始对局 node=%s seed=%d", t.ID(), node, seed)

	for !t.Over() {
		if ctx.Err() != nil {
			for _, s := range sinks {
				if gp, ok := s.(*game.GamePersister); ok {
					gp.FinalizeGame(nil)
				}
			}
			log.Warn("[%s] 对局中止于 %s", t.ID(), t.Situation())
			return nil, nil
		}
		t.SetRules(*rules.Load())
		if _, err := t.PlayHand(); err != nil {
			return nil, err
		}
	}
	return t.Result(), nil
}
