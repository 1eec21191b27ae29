package game

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"riichi/common/log"
	"riichi/core/domain/repository"
	"riichi/engine/tile"
)

const sinkTimeout = 2 * time.Second

// eventMessage 对外发布的事件格式
type eventMessage struct {
	GameID    string      `json:"gameId"`
	Seq       int         `json:"seq"`
	Type      EventType   `json:"type"`
	Seat      int         `json:"seat"`
	Tile      tile.Tile   `json:"tile"`
	MeldCode  int         `json:"meldCode"`
	Situation Situation   `json:"situation"`
	Hand      *HandResult `json:"hand,omitempty"`
	Game      *GameResult `json:"game,omitempty"`
}

func marshalEvent(e *Event) ([]byte, error) {
	msg := eventMessage{
		GameID:    e.GameID,
		Seq:       e.Seq,
		Type:      e.Type,
		Seat:      e.Seat,
		Tile:      e.Tile,
		MeldCode:  e.MeldCode,
		Situation: e.Situation,
		Hand:      e.Hand,
	}
	if e.Game != nil {
		// 每局的明细已在 round_end 里发过
		g := *e.Game
		g.Hands = nil
		msg.Game = &g
	}
	return json.Marshal(&msg)
}

// Publisher 事件的发布通道，如 nats
type Publisher interface {
	Publish(gameID string, data []byte) error
}

// PublishSink 把事件发布出去，失败只记日志
type PublishSink struct {
	pub    Publisher
	failed atomic.Int64
}

func NewPublishSink(pub Publisher) *PublishSink {
	return &PublishSink{pub: pub}
}

func (s *PublishSink) OnEvent(e *Event) {
	data, err := marshalEvent(e)
	if err != nil {
		log.Error("事件序列化失败: %v", err)
		return
	}
	if err := s.pub.Publish(e.GameID, data); err != nil && s.failed.Add(1) == 1 {
		log.Warn("[%s] 事件发布失败: %v", e.GameID, err)
	}
}

// SnapshotSink 把公开局面和最近事件写入快照仓储
type SnapshotSink struct {
	repo   repository.SnapshotRepository
	failed atomic.Int64
}

func NewSnapshotSink(repo repository.SnapshotRepository) *SnapshotSink {
	return &SnapshotSink{repo: repo}
}

func (s *SnapshotSink) OnEvent(e *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	if e.Public != nil {
		data, err := json.Marshal(e.Public)
		if err == nil {
			err = s.repo.SaveSnapshot(ctx, e.GameID, data)
		}
		s.report(e.GameID, err)
	}
	data, err := marshalEvent(e)
	if err == nil {
		err = s.repo.AppendEvent(ctx, e.GameID, data)
	}
	s.report(e.GameID, err)
}

// report 只记录第一次失败，避免刷屏
func (s *SnapshotSink) report(gameID string, err error) {
	if err != nil && s.failed.Add(1) == 1 {
		log.Warn("[%s] 快照写入失败: %v", gameID, err)
	}
}
