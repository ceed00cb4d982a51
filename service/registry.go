package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/btcq-org/ctoken/common"
)

var ErrNotRegistered = errors.New("not registered")

const (
	mintKeyPrefix    = "mint/"
	accountKeyPrefix = "account/"
)

// MintRecord is a mint created by this wallet.
type MintRecord struct {
	Name      string         `json:"name"`
	Address   common.Address `json:"address"`
	Authority common.Address `json:"authority"`
	Decimals  uint8          `json:"decimals"`
}

// AccountRecord is a token account owned by a key of this wallet.
type AccountRecord struct {
	Name     string         `json:"name"`
	Address  common.Address `json:"address"`
	Mint     common.Address `json:"mint"`
	OwnerKey string         `json:"owner_key"`
}

// Registry maps local names to mints and accounts.
type Registry struct {
	db *leveldb.DB
}

func NewRegistry(db *leveldb.DB) *Registry {
	return &Registry{db: db}
}

func (r *Registry) put(key string, v interface{}) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("fail to marshal %s: %w", key, err)
	}
	if err := r.db.Put([]byte(key), buf, nil); err != nil {
		return fmt.Errorf("fail to save %s: %w", key, err)
	}
	return nil
}

func (r *Registry) get(key string, v interface{}) error {
	buf, err := r.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return fmt.Errorf("%s: %w", key, ErrNotRegistered)
		}
		return fmt.Errorf("fail to get %s: %w", key, err)
	}
	if err := json.Unmarshal(buf, v); err != nil {
		return fmt.Errorf("fail to unmarshal %s: %w", key, err)
	}
	return nil
}

func (r *Registry) ensureFree(key string) error {
	exists, err := r.db.Has([]byte(key), nil)
	if err != nil {
		return fmt.Errorf("fail to check %s: %w", key, err)
	}
	if exists {
		return fmt.Errorf("%s is already registered", key)
	}
	return nil
}

func (r *Registry) PutMint(rec MintRecord) error {
	return r.put(mintKeyPrefix+rec.Name, rec)
}

func (r *Registry) GetMint(name string) (*MintRecord, error) {
	var rec MintRecord
	if err := r.get(mintKeyPrefix+name, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Registry) PutAccount(rec AccountRecord) error {
	return r.put(accountKeyPrefix+rec.Name, rec)
}

func (r *Registry) GetAccount(name string) (*AccountRecord, error) {
	var rec AccountRecord
	if err := r.get(accountKeyPrefix+name, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Accounts lists the registered accounts ordered by name.
func (r *Registry) Accounts() ([]AccountRecord, error) {
	iter := r.db.NewIterator(util.BytesPrefix([]byte(accountKeyPrefix)), nil)
	defer iter.Release()
	var out []AccountRecord
	for iter.Next() {
		var rec AccountRecord
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, fmt.Errorf("fail to unmarshal %s: %w", iter.Key(), err)
		}
		out = append(out, rec)
	}
	return out, iter.Error()
}
