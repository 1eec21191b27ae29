package game

import (
	"context"
	"sync"
	"time"

	"riichi/common/log"
	"riichi/core/domain/entity"
	"riichi/core/domain/repository"
	"riichi/engine/tile"
)

// GamePersister 收集一场对局的事件，对局结束后异步写入牌谱仓储
type GamePersister struct {
	repo    repository.GameRecordRepository
	record  *entity.GameRecord
	rounds  []*entity.RoundRecord
	current *entity.RoundRecord
	mu      sync.Mutex
	closed  bool
	wg      sync.WaitGroup
}

// NewGamePersister providers 为各座位决策者的名字
func NewGamePersister(repo repository.GameRecordRepository, gameID string, seed int64, providers [4]string) *GamePersister {
	players := make([]entity.PlayerInfo, 0, 4)
	for i, p := range providers {
		players = append(players, entity.PlayerInfo{SeatIndex: i, Provider: p})
	}
	return &GamePersister{
		repo:   repo,
		record: entity.NewGameRecord(gameID, seed, players),
		rounds: make([]*entity.RoundRecord, 0, 8),
	}
}

func (gp *GamePersister) Record() *entity.GameRecord { return gp.record }

func (gp *GamePersister) OnEvent(e *Event) {
	gp.mu.Lock()
	if gp.closed {
		gp.mu.Unlock()
		return
	}
	switch e.Type {
	case EventGameStart:
	case EventRoundStart:
		gp.startRound(e)
	case EventRoundEnd:
		gp.completeRound(e.Hand)
	case EventGameEnd:
		gp.mu.Unlock()
		gp.FinalizeGame(e.Game)
		return
	default:
		if gp.current != nil {
			gp.current.AddEvent(string(e.Type), e.Seat, eventData(e))
		}
	}
	gp.mu.Unlock()
}

func (gp *GamePersister) startRound(e *Event) {
	s := e.Situation
	gp.current = entity.NewRoundRecord(gp.record.ID, gp.record.GameID, len(gp.rounds),
		s.Round, s.RoundWind().String(), s.Dealer, s.Honba, s.RiichiSticks)
	gp.rounds = append(gp.rounds, gp.current)

	data := map[string]any{"current_turn": s.Dealer}
	if e.Public != nil {
		data["dora_indicators"] = tileIDs(e.Public.DoraIndicators)
	}
	gp.current.AddEvent(string(EventRoundStart), -1, data)
}

func (gp *GamePersister) completeRound(res *HandResult) {
	if gp.current == nil || res == nil {
		return
	}
	claims := make([]entity.HuClaim, 0, len(res.Wins))
	for _, w := range res.Wins {
		c := entity.HuClaim{
			WinnerSeat: w.Seat,
			LoserSeat:  w.From,
			WinTile:    int(w.Tile),
			Points:     w.Points,
		}
		if w.Result != nil {
			c.Han, c.Fu, c.Yakuman = w.Result.Han, w.Result.Fu, w.Result.Yakuman
			c.Limit = w.Result.Limit()
			for _, it := range w.Result.Items {
				c.Yaku = append(c.Yaku, it.Yaku.String())
			}
		}
		claims = append(claims, c)
	}
	gp.current.CompleteRound(&entity.RoundResult{
		EndType:     res.Kind.String(),
		Claims:      claims,
		Tenpai:      res.Tenpai,
		Delta:       res.Delta,
		Points:      res.Scores,
		DealerKeeps: res.DealerKeeps,
	})
	gp.current.AddEvent(string(EventRoundEnd), -1, map[string]any{})
	gp.current = nil
}

// FinalizeGame 异步保存对局与全部局记录
func (gp *GamePersister) FinalizeGame(res *GameResult) {
	gp.mu.Lock()
	if gp.closed {
		gp.mu.Unlock()
		return
	}
	gp.closed = true
	rounds := make([]*entity.RoundRecord, len(gp.rounds))
	copy(rounds, gp.rounds)
	gp.mu.Unlock()

	if res != nil {
		gp.record.CompleteGame(finalResult(res))
	} else {
		gp.record.AbortGame()
	}

	gp.wg.Add(1)
	go func() {
		defer gp.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := gp.repo.SaveGameRecord(ctx, gp.record); err != nil {
			log.Error("保存对局记录失败: %v", err)
			return
		}
		if err := gp.repo.SaveRoundRecords(ctx, rounds); err != nil {
			log.Error("批量保存局记录失败: %v", err)
			return
		}
		log.Info("对局记录保存成功: gameID=%s, rounds=%d", gp.record.GameID, len(rounds))
	}()
}

// Wait 等待异步写入结束
func (gp *GamePersister) Wait() {
	gp.wg.Wait()
}

func finalResult(res *GameResult) *entity.GameFinalResult {
	rankings := make([]entity.PlayerRanking, 4)
	for seat, r := range res.Ranks {
		rankings[r-1] = entity.PlayerRanking{SeatIndex: seat, Points: res.Scores[seat], Rank: r}
	}
	return &entity.GameFinalResult{Rankings: rankings, Points: res.Scores}
}

func tileIDs(ts []tile.Tile) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		out[i] = int(t)
	}
	return out
}

func eventData(e *Event) map[string]any {
	data := map[string]any{}
	if e.Tile.Valid() {
		data["tile"] = int(e.Tile)
	}
	if e.Meld != nil {
		data["meld_code"] = e.MeldCode
		data["meld_kind"] = e.Meld.Kind.String()
		data["tiles"] = tileIDs(e.Meld.Tiles)
		data["from"] = e.Meld.From
	}
	return data
}
