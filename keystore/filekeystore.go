package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const keyFileSuffix = ".json"

type fileKeyStore struct {
	rootPath string
	keysLk   sync.Mutex
}

func NewFileKeyStore(rootPath string) (Keystore, error) {
	err := ensureDir(rootPath)
	if err != nil {
		return nil, err
	}
	return &fileKeyStore{rootPath: rootPath}, nil
}

func ensureDir(path string) error {
	err := os.MkdirAll(path, 0755)
	if err != nil && !os.IsExist(err) {
		return fmt.Errorf("keystore: failed to make a dir: %w", err)
	}
	return nil
}

func (f *fileKeyStore) path(keyName string) (string, error) {
	if keyName == "" || strings.ContainsAny(keyName, `/\`) || keyName == "." || keyName == ".." {
		return "", fmt.Errorf("keystore: invalid key name '%s'", keyName)
	}
	return filepath.Join(f.rootPath, keyName+keyFileSuffix), nil
}

func (f *fileKeyStore) Get(keyName string) (PrivKey, error) {
	f.keysLk.Lock()
	defer f.keysLk.Unlock()

	keyPath, err := f.path(keyName)
	if err != nil {
		return PrivKey{}, err
	}

	content, err := os.ReadFile(keyPath)
	if err != nil && os.IsNotExist(err) {
		return PrivKey{}, ErrKeyNotFound
	}

	if err != nil {
		return PrivKey{}, err
	}

	k := PrivKey{}
	err = json.Unmarshal(content, &k)
	if err != nil {
		return PrivKey{}, err
	}
	return k, nil
}

func (f *fileKeyStore) Put(keyName string, value PrivKey) error {
	f.keysLk.Lock()
	defer f.keysLk.Unlock()

	keyPath, err := f.path(keyName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(keyPath); err == nil {
		return fmt.Errorf("keystore: key '%s' already exists", keyName)
	}

	content, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return os.WriteFile(keyPath, content, 0600)
}

func (f *fileKeyStore) Delete(keyName string) error {
	f.keysLk.Lock()
	defer f.keysLk.Unlock()

	keyPath, err := f.path(keyName)
	if err != nil {
		return err
	}
	return os.Remove(keyPath)
}

func (f *fileKeyStore) List() ([]string, error) {
	f.keysLk.Lock()
	defer f.keysLk.Unlock()

	entries, err := os.ReadDir(f.rootPath)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), keyFileSuffix) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(e.Name(), keyFileSuffix))
	}
	sort.Strings(keys)
	return keys, nil
}
