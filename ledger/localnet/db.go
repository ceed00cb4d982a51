package localnet

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/btcq-org/ctoken/x/ctoken/keeper"
)

// NewLevelDB opens the ledger database, in memory when path is empty.
func NewLevelDB(path string, compactOnInit bool) (*leveldb.DB, error) {
	if path == "" {
		return leveldb.Open(storage.NewMemStorage(), nil)
	}

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open level db %s: %w", path, err)
	}

	if compactOnInit {
		log.Info().Str("path", path).Msg("compacting leveldb...")
		if err := db.CompactRange(util.Range{}); err != nil {
			return nil, fmt.Errorf("failed to compact level db %s: %w", path, err)
		}
		log.Info().Str("path", path).Msg("leveldb compacted")
	}
	return db, nil
}

// reader is the read side shared by *leveldb.DB and *leveldb.Transaction.
type reader interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
}

// txStore runs the program against one leveldb transaction.
type txStore struct {
	tr *leveldb.Transaction
}

var _ keeper.KVStore = txStore{}

func (s txStore) Get(key []byte) ([]byte, error) {
	return get(s.tr, key)
}

func (s txStore) Put(key, value []byte) error {
	return s.tr.Put(key, value, nil)
}

func (s txStore) Delete(key []byte) error {
	return s.tr.Delete(key, nil)
}

// readStore serves queries from the committed state. Writes are rejected.
type readStore struct {
	db *leveldb.DB
}

var _ keeper.KVStore = readStore{}

var errReadOnly = errors.New("read only store")

func (s readStore) Get(key []byte) ([]byte, error) {
	return get(s.db, key)
}

func (s readStore) Put([]byte, []byte) error {
	return errReadOnly
}

func (s readStore) Delete([]byte) error {
	return errReadOnly
}

func get(r reader, key []byte) ([]byte, error) {
	value, err := r.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, keeper.ErrKeyNotFound
	}
	return value, err
}
