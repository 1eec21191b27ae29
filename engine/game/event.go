package game

import (
	"riichi/common/log"
	"riichi/engine/meld"
	"riichi/engine/tile"
)

type EventType string

const (
	EventGameStart  EventType = "game_start"
	EventRoundStart EventType = "round_start"
	EventDraw       EventType = "draw_tile"
	EventDiscard    EventType = "discard_tile"
	EventChi        EventType = "chi"
	EventPon        EventType = "pon"
	EventMinkan     EventType = "minkan"
	EventAnkan      EventType = "ankan"
	EventKakan      EventType = "kakan"
	EventRiichi     EventType = "riichi" // 立直成立
	EventDora       EventType = "dora"   // 新宝牌指示牌
	EventRon        EventType = "ron"
	EventTsumo      EventType = "tsumo"
	EventRoundEnd   EventType = "round_end"
	EventGameEnd    EventType = "game_end"
)

// Event 牌桌状态变化，Seat 为 -1 表示系统事件
type Event struct {
	GameID    string
	Seq       int
	Type      EventType
	Seat      int
	Tile      tile.Tile
	Meld      *meld.Meld
	MeldCode  int // 副露的牌谱编码，没有副露时为 -1
	Situation Situation
	Hand      *HandResult
	Game      *GameResult
	// Public 事件发生后的公开局面
	Public *Snapshot
}

// EventSink 接收牌桌事件；实现不应阻塞牌桌
type EventSink interface {
	OnEvent(e *Event)
}

// LogSink 以 debug 级别记录每个事件，局和场的结束用 info
type LogSink struct{}

func (LogSink) OnEvent(e *Event) {
	switch e.Type {
	case EventRoundEnd:
		log.Info("[%s] %s", e.GameID, e.Hand)
	case EventGameEnd:
		log.Info("[%s] 对局结束 点数 %v 名次 %v", e.GameID, e.Game.Scores, e.Game.Ranks)
	case EventChi, EventPon, EventMinkan, EventAnkan, EventKakan:
		log.Debug("[%s] #%d 座位 %d %s 编码 %d", e.GameID, e.Seq, e.Seat, e.Meld, e.MeldCode)
	default:
		log.Debug("[%s] #%d 座位 %d %s %s", e.GameID, e.Seq, e.Seat, e.Type, e.Tile)
	}
}
