package repositories

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore is a map-backed Store used by the test suite in place of a
// running database, the same way the teacher projects swap their store
// implementations for in-memory ones. It interprets the subset of query and
// update operators the controllers actually issue.
type memoryStore[T any] struct {
	mu   sync.RWMutex
	docs []bson.M
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore[T any]() Store[T] {
	return &memoryStore[T]{}
}

func (s *memoryStore[T]) List(ctx context.Context, filter bson.M, opts ListOptions) ([]T, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []bson.M{}
	for _, doc := range s.docs {
		if matchDoc(doc, filter) {
			matched = append(matched, doc)
		}
	}
	total := int64(len(matched))

	if opts.Sort != nil {
		sortDocs(matched, opts.Sort)
	}
	if opts.Skip > 0 {
		if opts.Skip >= int64(len(matched)) {
			matched = nil
		} else {
			matched = matched[opts.Skip:]
		}
	}
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	out := make([]T, 0, len(matched))
	for _, doc := range matched {
		typed, err := fromDoc[T](doc)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *typed)
	}
	return out, total, nil
}

func (s *memoryStore[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if matchDoc(doc, filter) {
			return fromDoc[T](doc)
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore[T]) Insert(ctx context.Context, doc *T) error {
	prepare(doc)
	raw, err := toDoc(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, raw)
	return nil
}

func (s *memoryStore[T]) InsertMany(ctx context.Context, docs []*T) error {
	for _, doc := range docs {
		if err := s.Insert(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *memoryStore[T]) UpdateOne(ctx context.Context, filter bson.M, update bson.M) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.docs {
		if !matchDoc(doc, filter) {
			continue
		}
		updated, err := applyUpdate(doc, withUpdatedAt(update, time.Now().UTC()))
		if err != nil {
			return nil, err
		}
		s.docs[i] = updated
		return fromDoc[T](updated)
	}
	return nil, ErrNotFound
}

func (s *memoryStore[T]) DeleteOne(ctx context.Context, filter bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.docs {
		if matchDoc(doc, filter) {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoryStore[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, doc := range s.docs {
		if matchDoc(doc, filter) {
			n++
		}
	}
	return n, nil
}

// all returns decoded copies of every document matching filter, for the
// in-memory reports implementation.
func (s *memoryStore[T]) all(filter bson.M) []T {
	docs, _, _ := s.List(context.Background(), filter, ListOptions{})
	return docs
}

// toDoc round-trips a struct through bson so stored documents look exactly
// like what the driver would persist.
func toDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromDoc[T any](m bson.M) (*T, error) {
	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func toValue(v any) any {
	m, err := toDoc(bson.M{"v": v})
	if err != nil {
		return v
	}
	return m["v"]
}

// matchDoc evaluates the filter subset the controllers use: field equality
// (including array containment), $or, $in, range operators and $regex.
func matchDoc(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		if key == "$or" {
			if !matchOr(doc, cond) {
				return false
			}
			continue
		}
		if !matchField(doc[key], cond) {
			return false
		}
	}
	return true
}

func matchOr(doc bson.M, cond any) bool {
	for _, sub := range asSlice(cond) {
		if m, ok := sub.(bson.M); ok && matchDoc(doc, m) {
			return true
		}
	}
	return false
}

func matchField(val any, cond any) bool {
	ops, isOps := cond.(bson.M)
	if !isOps {
		return equalOrContains(val, cond)
	}
	for op, arg := range ops {
		switch op {
		case "$gte":
			if compareValues(val, arg) < 0 {
				return false
			}
		case "$lte":
			if compareValues(val, arg) > 0 {
				return false
			}
		case "$gt":
			if compareValues(val, arg) <= 0 {
				return false
			}
		case "$lt":
			if compareValues(val, arg) >= 0 {
				return false
			}
		case "$ne":
			if equalOrContains(val, arg) {
				return false
			}
		case "$in":
			found := false
			for _, candidate := range asSlice(arg) {
				if equalOrContains(val, candidate) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "$regex":
			pattern, _ := arg.(string)
			if opts, _ := ops["$options"].(string); strings.Contains(opts, "i") {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return false
			}
			str, ok := val.(string)
			if !ok || !re.MatchString(str) {
				return false
			}
		case "$options":
			// consumed together with $regex
		default:
			return false
		}
	}
	return true
}

// equalOrContains treats equality against an array field as containment,
// matching the server's semantics for queries like {recipientIds: userId}.
func equalOrContains(val any, want any) bool {
	if arr, ok := val.(bson.A); ok {
		for _, elem := range arr {
			if equalValues(elem, want) {
				return true
			}
		}
		return false
	}
	return equalValues(val, want)
}

func equalValues(a, b any) bool {
	na, nb := normalize(a), normalize(b)
	if ta, ok := na.(time.Time); ok {
		tb, ok := nb.(time.Time)
		return ok && ta.Equal(tb)
	}
	return na == nb
}

// compareValues orders two scalars; mixed or unordered types compare as equal
// so range operators simply fail to match them.
func compareValues(a, b any) int {
	na, nb := normalize(a), normalize(b)
	switch ta := na.(type) {
	case float64:
		if tb, ok := nb.(float64); ok {
			switch {
			case ta < tb:
				return -1
			case ta > tb:
				return 1
			}
			return 0
		}
	case string:
		if tb, ok := nb.(string); ok {
			return strings.Compare(ta, tb)
		}
	case time.Time:
		if tb, ok := nb.(time.Time); ok {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			}
			return 0
		}
	}
	return 0
}

func normalize(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case float64:
		return t
	}
	return v
}

func asSlice(v any) []any {
	switch t := v.(type) {
	case bson.A:
		return t
	case []any:
		return t
	case []bson.M:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out
	}
	return nil
}

// applyUpdate interprets $set, $addToSet and $pull against a stored document.
func applyUpdate(doc bson.M, update bson.M) (bson.M, error) {
	out := bson.M{}
	for k, v := range doc {
		out[k] = v
	}
	for op, rawFields := range update {
		fields, ok := rawFields.(bson.M)
		if !ok {
			continue
		}
		switch op {
		case "$set":
			for k, v := range fields {
				out[k] = toValue(v)
			}
		case "$addToSet":
			for k, v := range fields {
				arr, _ := out[k].(bson.A)
				val := toValue(v)
				exists := false
				for _, elem := range arr {
					if equalValues(elem, val) {
						exists = true
						break
					}
				}
				if !exists {
					out[k] = append(arr, val)
				}
			}
		case "$pull":
			for k, v := range fields {
				arr, _ := out[k].(bson.A)
				val := toValue(v)
				kept := bson.A{}
				for _, elem := range arr {
					if !equalValues(elem, val) {
						kept = append(kept, elem)
					}
				}
				out[k] = kept
			}
		}
	}
	return out, nil
}

func sortDocs(docs []bson.M, keys bson.D) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, key := range keys {
			dir := 1
			if d, ok := key.Value.(int); ok && d < 0 {
				dir = -1
			}
			c := compareValues(docs[i][key.Key], docs[j][key.Key])
			if c != 0 {
				return c*dir < 0
			}
		}
		return false
	})
}
