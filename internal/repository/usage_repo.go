package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quill/internal/model"
	"quill/internal/pkg/id"
)

// UsageRepo 生成用量仓库
type UsageRepo struct {
	collection *mongo.Collection
}

// NewUsageRepo 创建用量仓库
func NewUsageRepo(db *mongo.Database) *UsageRepo {
	return &UsageRepo{
		collection: db.Collection((&model.GenerationUsage{}).Collection()),
	}
}

// Create 追加一条用量记录
func (r *UsageRepo) Create(ctx context.Context, usage *model.GenerationUsage) error {
	if usage.ID == "" {
		usage.ID = id.New()
	}
	if usage.CreatedAt.IsZero() {
		usage.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, usage)
	return err
}

// ListByCaller 查询调用方最近的用量记录
func (r *UsageRepo) ListByCaller(ctx context.Context, callerKey string, limit int64) ([]*model.GenerationUsage, error) {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"caller_key": callerKey}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var usages []*model.GenerationUsage
	if err := cursor.All(ctx, &usages); err != nil {
		return nil, err
	}
	return usages, nil
}
