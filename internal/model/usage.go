package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GenerationUsage 一次成功生成的用量记录
type GenerationUsage struct {
	ID         string     `bson:"_id" json:"id"`
	RequestID  string     `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Intent     string     `bson:"intent" json:"intent"`
	CallerKey  string     `bson:"caller_key" json:"caller_key"`
	Provider   string     `bson:"provider" json:"provider"`
	Model      string     `bson:"model" json:"model"`
	Usage      TokenUsage `bson:"usage" json:"usage"`
	Estimated  bool       `bson:"estimated" json:"estimated"`
	DurationMs int64      `bson:"duration_ms" json:"duration_ms"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
}

// Collection 返回集合名称
func (u *GenerationUsage) Collection() string {
	return "generation_usage"
}

// EnsureIndexes 创建和维护索引
func (u *GenerationUsage) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(u.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "caller_key", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_caller_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "intent", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_intent_created"),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
