package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"quill/internal/model"
)

// EnsureIndexes 应用启动时创建所有集合的索引
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return EnsureAllIndexes(ctx, db,
		&model.GenerationUsage{},
	)
}
