package repository

import "context"

// SnapshotRepository 对局进行中的公开局面和最近事件，供观战端拉取
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, gameID string, data []byte) error
	LoadSnapshot(ctx context.Context, gameID string) ([]byte, error)

	// AppendEvent 追加事件，只保留最近若干条
	AppendEvent(ctx context.Context, gameID string, data []byte) error
	RecentEvents(ctx context.Context, gameID string) ([][]byte, error)
}
