package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/codec"
	"github.com/iov-one/phtlc/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// Model is impelemented by any entity that can be stored using ModelBucket.
type Model interface {
	phtlc.Persistent
	Validate() error
}

// ModelBucket is implemented by buckets that operates on Models rather than
// raw bytes.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db phtlc.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db phtlc.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database, overwriting any previous
	// value stored under the same key.
	Put(db phtlc.KVStore, key []byte, m Model) error

	// Create saves given model in the database. It returns ErrDuplicate
	// if an entity with given key already exists.
	Create(db phtlc.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db phtlc.KVStore, key []byte) error

	// Register registers this bucket for querying.
	Register(name string, r phtlc.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as given prototype.
//
// Bucket name must be lower case letters or underscore, between 3 and 20
// characters long. This function panics otherwise.
func NewModelBucket(name string, proto Model) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	tp := reflect.TypeOf(proto)
	if tp == nil || tp.Kind() != reflect.Ptr {
		panic("model prototype must be a pointer")
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
		model:  tp.Elem(),
	}
}

type modelBucket struct {
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) One(db phtlc.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := codec.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

func (mb *modelBucket) Has(db phtlc.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Put(db phtlc.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.prefix)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := codec.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Create(db phtlc.KVStore, key []byte, m Model) error {
	switch err := mb.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "key %X", key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return mb.Put(db, key, m)
}

func (mb *modelBucket) Delete(db phtlc.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return db.Delete(mb.dbKey(key))
}

func (mb *modelBucket) Register(name string, r phtlc.QueryRouter) {
	r.Register("/"+name, &queryHandler{prefix: mb.prefix})
}

// queryHandler returns the raw value stored under the requested key.
type queryHandler struct {
	prefix []byte
}

var _ phtlc.QueryHandler = (*queryHandler)(nil)

func (q *queryHandler) Query(db phtlc.ReadOnlyKVStore, mod string, key []byte) ([]phtlc.Model, error) {
	if mod != phtlc.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mode %q", mod)
	}
	dbKey := append(append([]byte{}, q.prefix...), key...)
	raw, err := db.Get(dbKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return []phtlc.Model{phtlc.Pair(dbKey, raw)}, nil
}
