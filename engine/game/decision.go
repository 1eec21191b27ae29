package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"riichi/engine/tile"
)

var ErrActionUnavailable = errors.New("操作不在可选范围内")

type ActionType int

const (
	ActPass    ActionType = iota // 过
	ActDiscard                   // 出牌
	ActRiichi                    // 立直宣言并打出 Tile
	ActTsumo                     // 自摸
	ActRon                       // 荣和/抢杠
	ActChi
	ActPon
	ActMinkan
	ActAnkan
	ActKakan
	ActKyuushu // 九种九牌
)

var actionNames = [...]string{"过", "出牌", "立直", "自摸", "荣和", "吃", "碰", "明杠", "暗杠", "加杠", "九种九牌"}

func (a ActionType) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "未知"
	}
	return actionNames[a]
}

// Action 一个座位的一次选择
type Action struct {
	Type  ActionType
	Tile  tile.Tile     // 打出/鸣的/加杠的牌
	Tiles []tile.Tile   // 吃碰时包含被鸣牌在内的三张
	Kind  tile.TileType // 暗杠牌种
}

func (a Action) String() string {
	switch a.Type {
	case ActChi, ActPon:
		return fmt.Sprintf("%s%v", a.Type, a.Tiles)
	case ActAnkan:
		return fmt.Sprintf("%s%s", a.Type, a.Kind)
	case ActPass, ActTsumo, ActKyuushu:
		return a.Type.String()
	}
	return fmt.Sprintf("%s%s", a.Type, a.Tile)
}

func sortedCopy(ts []tile.Tile) []tile.Tile {
	out := append([]tile.Tile(nil), ts...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal 吃碰的组合按实体牌比较，与顺序无关
func (a Action) Equal(b Action) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ActPass, ActTsumo, ActKyuushu:
		return true
	case ActAnkan:
		return a.Kind == b.Kind
	case ActChi, ActPon:
		if a.Tile != b.Tile || len(a.Tiles) != len(b.Tiles) {
			return false
		}
		x, y := sortedCopy(a.Tiles), sortedCopy(b.Tiles)
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	}
	return a.Tile == b.Tile
}

type Phase int

const (
	PhaseTurn    Phase = iota // 摸牌或鸣牌后轮到自己
	PhaseCall                 // 对他家舍牌的反应
	PhaseChankan              // 对他家加杠的反应
)

// DecisionRequest 只有可选操作多于一个时才会发出
type DecisionRequest struct {
	Seat    int
	Phase   Phase
	Options []Action
	Default Action
	// Target 被反应的牌，PhaseTurn 时为 NoTile
	Target tile.Tile
	view   func() *Snapshot
}

// View 当前座位视角的局面
func (r *DecisionRequest) View() *Snapshot {
	if r.view == nil {
		return nil
	}
	return r.view()
}

// Offers 请求中是否包含该操作
func (r *DecisionRequest) Offers(a Action) bool {
	for _, o := range r.Options {
		if o.Equal(a) {
			return true
		}
	}
	return false
}

// DecisionProvider 由外部实现的决策者，Table 在单线程里同步调用
type DecisionProvider interface {
	Choose(req *DecisionRequest) Action
}

// ProviderFunc 函数适配器
type ProviderFunc func(req *DecisionRequest) Action

func (f ProviderFunc) Choose(req *DecisionRequest) Action { return f(req) }

// Baseline 能和就和，能用摸到的牌立直就立直，其余摸切或过
type Baseline struct {
	Riichi bool
}

func (b Baseline) Choose(req *DecisionRequest) Action {
	for _, o := range req.Options {
		if o.Type == ActTsumo || o.Type == ActRon {
			return o
		}
	}
	if b.Riichi && req.Default.Type == ActDiscard {
		for _, o := range req.Options {
			if o.Type == ActRiichi && o.Tile == req.Default.Tile {
				return o
			}
		}
	}
	return req.Default
}

// RandomProvider 在可选操作里均匀随机，用于压测规则的各个分支
type RandomProvider struct {
	rng *rand.Rand
}

func NewRandomProvider(seed int64) *RandomProvider {
	return &RandomProvider{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomProvider) Choose(req *DecisionRequest) Action {
	return req.Options[p.rng.Intn(len(req.Options))]
}
