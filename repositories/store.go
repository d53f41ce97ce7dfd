package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound covers both genuinely absent documents and ids belonging to
// another church: callers cannot tell the two apart.
var ErrNotFound = errors.New("document not found")

// ListOptions controls sorting and paging for Store.List.
type ListOptions struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

// Store is the uniform collection interface every resource service uses.
// Filters are bson documents; tenant scoping is the caller's responsibility
// via Tenant / TenantByID so it is built in exactly one place.
type Store[T any] interface {
	List(ctx context.Context, filter bson.M, opts ListOptions) ([]T, int64, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	Insert(ctx context.Context, doc *T) error
	InsertMany(ctx context.Context, docs []*T) error
	UpdateOne(ctx context.Context, filter bson.M, update bson.M) (*T, error)
	DeleteOne(ctx context.Context, filter bson.M) error
	Count(ctx context.Context, filter bson.M) (int64, error)
}

// Tenant is the base filter every tenant-owned query starts from.
func Tenant(churchID primitive.ObjectID) bson.M {
	return bson.M{"churchId": churchID}
}

// TenantByID scopes a single-document lookup to the caller's church.
func TenantByID(churchID, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "churchId": churchID}
}

// withUpdatedAt stamps updatedAt on every $set, mirroring schema timestamps.
func withUpdatedAt(update bson.M, now time.Time) bson.M {
	out := bson.M{}
	for op, fields := range update {
		out[op] = fields
	}
	set, _ := out["$set"].(bson.M)
	merged := bson.M{"updatedAt": now}
	for k, v := range set {
		merged[k] = v
	}
	out["$set"] = merged
	return out
}
