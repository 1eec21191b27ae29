package repository

import "errors"

var (
	ErrGameRecordNotFound = errors.New("game record not found")
	ErrSnapshotNotFound   = errors.New("snapshot not found")

	ErrMongodb = errors.New("mongodb error happen")
	ErrRedis   = errors.New("redis error happen")
)
