package repository

import (
	"context"

	"riichi/core/domain/entity"
)

// GameRecordRepository 牌谱仓储
type GameRecordRepository interface {
	SaveGameRecord(ctx context.Context, record *entity.GameRecord) error

	// FindGameRecord 按牌桌 uuid 查找
	FindGameRecord(ctx context.Context, gameID string) (*entity.GameRecord, error)

	// FindRecentGameRecords 最近结束的对局，按开始时间倒序
	FindRecentGameRecords(ctx context.Context, limit int) ([]*entity.GameRecord, error)

	// SaveRoundRecords 批量保存局记录（InsertMany）
	SaveRoundRecords(ctx context.Context, rounds []*entity.RoundRecord) error

	// FindRoundRecords 一场对局的全部局记录，按局序排序
	FindRoundRecords(ctx context.Context, gameID string) ([]*entity.RoundRecord, error)
}
