package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoundRecord 一局一个文档，保存事件流和结果
type RoundRecord struct {
	ID           primitive.ObjectID `bson:"_id"`
	GameRecordID primitive.ObjectID `bson:"game_record_id"`
	GameID       string             `bson:"game_id"`
	Index        int                `bson:"index"`        // 本场对局中的第几局，从 0 开始
	RoundNumber  int                `bson:"round_number"` // 东1 为 0
	RoundWind    string             `bson:"round_wind"`
	DealerIndex  int                `bson:"dealer_index"`
	Honba        int                `bson:"honba"`
	RiichiSticks int                `bson:"riichi_sticks"`
	Events       []RoundEvent       `bson:"events"`
	RoundResult  *RoundResult       `bson:"round_result"`
	StartTime    time.Time          `bson:"start_time"`
	EndTime      time.Time          `bson:"end_time"`
	Duration     int                `bson:"duration"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// RoundEvent 只存事件，不存快照
type RoundEvent struct {
	Sequence  int            `bson:"sequence"`
	EventType string         `bson:"event_type"`
	Timestamp time.Time      `bson:"timestamp"`
	SeatIndex int            `bson:"seat_index"` // -1 为系统事件
	Data      map[string]any `bson:"data"`
}

type RoundResult struct {
	EndType     string    `bson:"end_type"` // "RON", "TSUMO", "DRAW_EXHAUSTIVE", "DRAW_3RON" ...
	Claims      []HuClaim `bson:"claims"`
	Tenpai      [4]bool   `bson:"tenpai"`
	Delta       [4]int    `bson:"delta"`
	Points      [4]int    `bson:"points"`
	DealerKeeps bool      `bson:"dealer_keeps"`
}

// HuClaim 和牌信息，WinTile 为牌的编号 0-135
type HuClaim struct {
	WinnerSeat int      `bson:"winner_seat"`
	LoserSeat  int      `bson:"loser_seat"` // 自摸为 -1
	WinTile    int      `bson:"win_tile"`
	Han        int      `bson:"han"`
	Fu         int      `bson:"fu"`
	Yakuman    int      `bson:"yakuman"`
	Yaku       []string `bson:"yaku"`
	Limit      string   `bson:"limit,omitempty"`
	Points     int      `bson:"points"`
}

func NewRoundRecord(gameRecordID primitive.ObjectID, gameID string, index, roundNumber int, roundWind string, dealerIndex, honba, sticks int) *RoundRecord {
	now := time.Now()
	return &RoundRecord{
		ID:           primitive.NewObjectID(),
		GameRecordID: gameRecordID,
		GameID:       gameID,
		Index:        index,
		RoundNumber:  roundNumber,
		RoundWind:    roundWind,
		DealerIndex:  dealerIndex,
		Honba:        honba,
		RiichiSticks: sticks,
		Events:       make([]RoundEvent, 0, 128),
		StartTime:    now,
		CreatedAt:    now,
	}
}

func (rr *RoundRecord) AddEvent(eventType string, seatIndex int, data map[string]any) {
	rr.Events = append(rr.Events, RoundEvent{
		Sequence:  len(rr.Events),
		EventType: eventType,
		Timestamp: time.Now(),
		SeatIndex: seatIndex,
		Data:      data,
	})
}

func (rr *RoundRecord) CompleteRound(result *RoundResult) {
	rr.EndTime = time.Now()
	rr.Duration = int(rr.EndTime.Sub(rr.StartTime).Seconds())
	rr.RoundResult = result
}
