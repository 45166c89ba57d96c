package memory

import (
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// collection keeps documents as ordered bson.D in insertion order, the way a
// store without indexes returns them.
type collection struct {
	mu   sync.RWMutex
	docs []bson.D
}

type matchFunc func(bson.D) bool

func byID(id primitive.ObjectID) matchFunc {
	return func(doc bson.D) bool {
		v, ok := lookup(doc, "_id")
		return ok && v == id
	}
}

func byKey(key string, value interface{}) matchFunc {
	return func(doc bson.D) bool {
		v, ok := lookup(doc, key)
		return ok && v == value
	}
}

func lookup(doc bson.D, key string) (interface{}, bool) {
	for _, e := range doc {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// set replaces key in place or appends it, keeping the other elements untouched.
func set(doc bson.D, key string, value interface{}) (bson.D, bool) {
	for i, e := range doc {
		if e.Key == key {
			if reflect.DeepEqual(e.Value, value) {
				return doc, false
			}
			doc[i].Value = value
			return doc, true
		}
	}
	return append(doc, bson.E{Key: key, Value: value}), true
}

// toDocument encodes v and assigns a new _id when it has none.
func toDocument(v interface{}) (bson.D, primitive.ObjectID, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, primitive.NilObjectID, fmt.Errorf("encode document: %w", err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, primitive.NilObjectID, fmt.Errorf("decode document: %w", err)
	}

	if v, ok := lookup(doc, "_id"); ok {
		if id, ok := v.(primitive.ObjectID); ok {
			return doc, id, nil
		}
		return nil, primitive.NilObjectID, fmt.Errorf("_id must be an ObjectID, got %T", v)
	}
	id := primitive.NewObjectID()
	return append(bson.D{{Key: "_id", Value: id}}, doc...), id, nil
}

// decode copies doc into a new T. Embedded documents decode as maps, matching
// the mongo client options used in production.
func decode[T any](doc bson.D) (*T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(raw))
	if err != nil {
		return nil, err
	}
	dec.DefaultDocumentM()

	var out T
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &out, nil
}

func (c *collection) insert(v interface{}) (primitive.ObjectID, error) {
	doc, id, err := toDocument(v)
	if err != nil {
		return primitive.NilObjectID, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(byID(id)) >= 0 {
		return primitive.NilObjectID, fmt.Errorf("duplicate key: _id %s", id.Hex())
	}
	c.docs = append(c.docs, doc)
	return id, nil
}

// indexOf must be called with c.mu held.
func (c *collection) indexOf(match matchFunc) int {
	for i, doc := range c.docs {
		if match(doc) {
			return i
		}
	}
	return -1
}

func (c *collection) findOne(match matchFunc) bson.D {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(match); i >= 0 {
		return copyDoc(c.docs[i])
	}
	return nil
}

// window returns docs[offset:offset+limit] and the total count. limit 0 is unbounded.
func (c *collection) window(offset, limit int64) ([]bson.D, int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := int64(len(c.docs))
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && limit < total-offset {
		end = offset + limit
	}

	out := make([]bson.D, 0, end-offset)
	for _, doc := range c.docs[offset:end] {
		out = append(out, copyDoc(doc))
	}
	return out, total
}

func (c *collection) deleteOne(match matchFunc) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(match)
	if i < 0 {
		return 0
	}
	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return 1
}

// updateOne applies fields as a $set. It reports matched and modified counts.
func (c *collection) updateOne(match matchFunc, fields bson.D) (int64, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(match)
	if i < 0 {
		return 0, 0
	}

	if c.apply(i, fields) {
		return 1, 1
	}
	return 1, 0
}

// apply must be called with c.mu held.
func (c *collection) apply(i int, fields bson.D) bool {
	doc := c.docs[i]
	modified := false
	for _, f := range fields {
		var changed bool
		doc, changed = set(doc, f.Key, f.Value)
		modified = modified || changed
	}
	c.docs[i] = doc
	return modified
}

// upsertOne applies fields to the first match, or inserts them as a new
// document with a fresh _id. It returns matched, modified and the upserted id.
func (c *collection) upsertOne(match matchFunc, fields bson.D) (int64, int64, *primitive.ObjectID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(match); i >= 0 {
		if c.apply(i, fields) {
			return 1, 1, nil
		}
		return 1, 0, nil
	}

	id := primitive.NewObjectID()
	doc := append(bson.D{{Key: "_id", Value: id}}, fields...)
	c.docs = append(c.docs, doc)
	return 0, 0, &id
}

func copyDoc(doc bson.D) bson.D {
	out := make(bson.D, len(doc))
	copy(out, doc)
	return out
}
