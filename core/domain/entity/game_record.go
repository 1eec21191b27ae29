package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GameTypeRiichi4p = "riichi_mahjong_4p"

	GameStatusInProgress = "in_progress"
	GameStatusCompleted  = "completed"
	GameStatusAborted    = "aborted"
)

// GameRecord 一场对局的元数据（聚合根）
type GameRecord struct {
	ID          primitive.ObjectID `bson:"_id"`
	GameID      string             `bson:"game_id"` // 牌桌 uuid
	GameType    string             `bson:"game_type"`
	Seed        int64              `bson:"seed"`
	Players     []PlayerInfo       `bson:"players"`
	StartTime   time.Time          `bson:"start_time"`
	EndTime     time.Time          `bson:"end_time"`
	Duration    int                `bson:"duration"` // 秒
	FinalResult *GameFinalResult   `bson:"final_result"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// PlayerInfo 座位与决策者
type PlayerInfo struct {
	SeatIndex int    `bson:"seat_index"`
	Provider  string `bson:"provider"`
}

type GameFinalResult struct {
	Rankings []PlayerRanking `bson:"rankings"` // 按名次排序
	Points   [4]int          `bson:"points"`   // 按座位，单位 100 点
}

type PlayerRanking struct {
	SeatIndex int `bson:"seat_index"`
	Points    int `bson:"points"`
	Rank      int `bson:"rank"` // 1-4
}

func NewGameRecord(gameID string, seed int64, players []PlayerInfo) *GameRecord {
	now := time.Now()
	return &GameRecord{
		ID:        primitive.NewObjectID(),
		GameID:    gameID,
		GameType:  GameTypeRiichi4p,
		Seed:      seed,
		Players:   players,
		StartTime: now,
		Status:    GameStatusInProgress,
		CreatedAt: now,
	}
}

// CompleteGame 设置最终结果
func (gr *GameRecord) CompleteGame(finalResult *GameFinalResult) {
	gr.EndTime = time.Now()
	gr.Duration = int(gr.EndTime.Sub(gr.StartTime).Seconds())
	gr.FinalResult = finalResult
	gr.Status = GameStatusCompleted
}

// AbortGame 对局出错中止
func (gr *GameRecord) AbortGame() {
	gr.EndTime = time.Now()
	gr.Duration = int(gr.EndTime.Sub(gr.StartTime).Seconds())
	gr.Status = GameStatusAborted
}
