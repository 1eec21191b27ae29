package game

import (
	"fmt"

	"riichi/engine/tile"
	"riichi/engine/yaku"
)

// EndKind 一局的结束方式
type EndKind int

const (
	EndTsumo      EndKind = iota // 自摸
	EndRon                       // 荣和（含一炮双响、抢杠）
	EndExhaustive                // 荒牌流局
	EndNagashi                   // 流局满贯
	EndKyuushu                   // 九种九牌
	EndSuufon                    // 四风连打
	EndSuucha                    // 四家立直
	EndSuukan                    // 四杠散了
	EndTripleRon                 // 三家和了
)

var endNames = [...]string{"TSUMO", "RON", "DRAW_EXHAUSTIVE", "DRAW_NAGASHI", "DRAW_KYUUSHU", "DRAW_4WIND", "DRAW_4RIICHI", "DRAW_4KAN", "DRAW_3RON"}

func (k EndKind) String() string {
	if k < 0 || int(k) >= len(endNames) {
		return "UNKNOWN"
	}
	return endNames[k]
}

// IsDraw 流局类（含途中流局）
func (k EndKind) IsDraw() bool { return k >= EndExhaustive }

// Win 一个和了者
type Win struct {
	Seat   int
	From   int // 放铳者座位，自摸为 -1
	Tile   tile.Tile
	Result *yaku.Result
	Points int // 和了者的收入，单位 100 点，含本场与立直棒
}

// HandResult 一局的结果，点数单位 100 点
type HandResult struct {
	Situation Situation
	Kind      EndKind
	Wins      []Win
	Tenpai    [4]bool
	Delta     [4]int
	Scores    [4]int
	// DealerKeeps 连庄
	DealerKeeps bool

	pay [4]int // 本局结算的收支，不含立直棒的支出
}

func (r *HandResult) String() string {
	return fmt.Sprintf("%s %s 和了 %d 家 点数变化 %v", r.Situation, r.Kind, len(r.Wins), r.Delta)
}

// GameResult 一场的结果
type GameResult struct {
	ID     string
	Scores [4]int
	Ranks  [4]int // 名次 1-4，按座位
	Hands  []*HandResult
}
