package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"riichi/common/database"
	"riichi/common/log"
	"riichi/core/domain/entity"
	"riichi/core/domain/repository"
)

const (
	gameRecordCollection  = "game_records"
	roundRecordCollection = "round_records"
)

type GameRecordRepository struct {
	mongo *database.MongoManager
}

func NewGameRecordRepository(mongo *database.MongoManager) repository.GameRecordRepository {
	return &GameRecordRepository{mongo: mongo}
}

func (r *GameRecordRepository) SaveGameRecord(ctx context.Context, record *entity.GameRecord) error {
	collection := r.mongo.Db.Collection(gameRecordCollection)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		log.Error("保存对局记录失败: %v", err)
		return errors.Join(repository.ErrMongodb, err)
	}
	return nil
}

func (r *GameRecordRepository) FindGameRecord(ctx context.Context, gameID string) (*entity.GameRecord, error) {
	collection := r.mongo.Db.Collection(gameRecordCollection)

	record := new(entity.GameRecord)
	err := collection.FindOne(ctx, bson.M{"game_id": gameID}).Decode(record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrGameRecordNotFound
		}
		log.Error("查询对局记录失败: %v", err)
		return nil, errors.Join(repository.ErrMongodb, err)
	}
	return record, nil
}

func (r *GameRecordRepository) FindRecentGameRecords(ctx context.Context, limit int) ([]*entity.GameRecord, error) {
	collection := r.mongo.Db.Collection(gameRecordCollection)

	opts := options.Find().
		SetSort(bson.M{"start_time": -1}).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, bson.M{"status": entity.GameStatusCompleted}, opts)
	if err != nil {
		log.Error("查询对局记录失败: %v", err)
		return nil, errors.Join(repository.ErrMongodb, err)
	}
	defer cursor.Close(ctx)

	var records []*entity.GameRecord
	if err := cursor.All(ctx, &records); err != nil {
		log.Error("解析对局记录失败: %v", err)
		return nil, errors.Join(repository.ErrMongodb, err)
	}
	return records, nil
}

func (r *GameRecordRepository) SaveRoundRecords(ctx context.Context, rounds []*entity.RoundRecord) error {
	docs := make([]any, 0, len(rounds))
	for _, round := range rounds {
		if round != nil {
			docs = append(docs, round)
		}
	}
	if len(docs) == 0 {
		return nil
	}

	collection := r.mongo.Db.Collection(roundRecordCollection)
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		log.Error("批量保存局记录失败: %v", err)
		return errors.Join(repository.ErrMongodb, err)
	}
	log.Debug("批量保存局记录成功: count=%d", len(docs))
	return nil
}

func (r *GameRecordRepository) FindRoundRecords(ctx context.Context, gameID string) ([]*entity.RoundRecord, error) {
	collection := r.mongo.Db.Collection(roundRecordCollection)

	opts := options.Find().SetSort(bson.M{"index": 1})
	cursor, err := collection.Find(ctx, bson.M{"game_id": gameID}, opts)
	if err != nil {
		log.Error("查询局记录失败: %v", err)
		return nil, errors.Join(repository.ErrMongodb, err)
	}
	defer cursor.Close(ctx)

	var rounds []*entity.RoundRecord
	if err := cursor.All(ctx, &rounds); err != nil {
		log.Error("解析局记录失败: %v", err)
		return nil, errors.Join(repository.ErrMongodb, err)
	}
	if len(rounds) == 0 {
		return nil, repository.ErrGameRecordNotFound
	}
	return rounds, nil
}
