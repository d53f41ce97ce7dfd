package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ChurchLoop/models"
)

type mongoStore[T any] struct {
	coll *mongo.Collection
}

// NewMongoStore wraps a collection in the generic Store interface.
func NewMongoStore[T any](coll *mongo.Collection) Store[T] {
	return &mongoStore[T]{coll: coll}
}

func (s *mongoStore[T]) List(ctx context.Context, filter bson.M, opts ListOptions) ([]T, int64, error) {
	findOpts := options.Find()
	if opts.Sort != nil {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cur, err := s.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (s *mongoStore[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *mongoStore[T]) Insert(ctx context.Context, doc *T) error {
	prepare(doc)
	_, err := s.coll.InsertOne(ctx, doc)
	return err
}

func (s *mongoStore[T]) InsertMany(ctx context.Context, docs []*T) error {
	if len(docs) == 0 {
		return nil
	}
	rows := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		prepare(doc)
		rows = append(rows, doc)
	}
	_, err := s.coll.InsertMany(ctx, rows)
	return err
}

func (s *mongoStore[T]) UpdateOne(ctx context.Context, filter bson.M, update bson.M) (*T, error) {
	var doc T
	err := s.coll.FindOneAndUpdate(
		ctx,
		filter,
		withUpdatedAt(update, time.Now().UTC()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *mongoStore[T]) DeleteOne(ctx context.Context, filter bson.M) error {
	res, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.coll.CountDocuments(ctx, filter)
}

func prepare(doc any) {
	if d, ok := doc.(models.Document); ok {
		d.Prepare(time.Now().UTC())
	}
}
