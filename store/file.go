package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	pendingFile  = "pendentes.json"
	answeredFile = "respondidas.json"
	salesFile    = "vendas.json"
)

// Mirror receives a copy of every saved state file and hands back the last
// copy when a local file is missing. Used to survive ephemeral-disk hosts.
type Mirror interface {
	Upload(name string, data []byte) error
	Download(name string) ([]byte, error)
}

// FileStore keeps each collection in its own JSON file under dir. Saves go
// through a temp file and rename so a crash mid-write never corrupts the
// previous state. One mutex per collection serializes the reply loop
// against the manual sale-editing API.
type FileStore struct {
	dir    string
	mirror Mirror

	pendingMu  sync.Mutex
	answeredMu sync.Mutex
	salesMu    sync.Mutex
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string, mirror Mirror) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	fs := &FileStore{dir: dir, mirror: mirror}

	if mirror != nil {
		for _, name := range []string{pendingFile, answeredFile, salesFile} {
			fs.restoreMissing(name)
		}
	}

	return fs, nil
}

func (fs *FileStore) restoreMissing(name string) {
	path := filepath.Join(fs.dir, name)
	if _, err := os.Stat(path); err == nil {
		return
	}

	data, err := fs.mirror.Download(name)
	if err != nil {
		log.Warn().Err(err).Str("file", name).Msg("No mirrored state to restore")
		return
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error().Err(err).Str("file", name).Msg("Failed to restore mirrored state")
		return
	}

	log.Info().Str("file", name).Msg("Restored state file from mirror")
}

func (fs *FileStore) Pending() ([]string, error) {
	fs.pendingMu.Lock()
	defer fs.pendingMu.Unlock()
	return fs.loadIDs(pendingFile)
}

func (fs *FileStore) MarkPending(threadID string) error {
	fs.pendingMu.Lock()
	defer fs.pendingMu.Unlock()
	return fs.appendID(pendingFile, threadID)
}

func (fs *FileStore) Answered() ([]string, error) {
	fs.answeredMu.Lock()
	defer fs.answeredMu.Unlock()
	return fs.loadIDs(answeredFile)
}

func (fs *FileStore) MarkAnswered(threadID string) error {
	fs.answeredMu.Lock()
	defer fs.answeredMu.Unlock()
	return fs.appendID(answeredFile, threadID)
}

func (fs *FileStore) Sales() ([]SaleRecord, error) {
	fs.salesMu.Lock()
	defer fs.salesMu.Unlock()
	return fs.loadSales()
}

func (fs *FileStore) AddSale(sale SaleRecord) error {
	fs.salesMu.Lock()
	defer fs.salesMu.Unlock()

	sales, err := fs.loadSales()
	if err != nil {
		return err
	}

	return fs.save(salesFile, append(sales, sale))
}

func (fs *FileStore) UpdateSale(index int, customer *string, amount *float64) (SaleRecord, error) {
	fs.salesMu.Lock()
	defer fs.salesMu.Unlock()

	sales, err := fs.loadSales()
	if err != nil {
		return SaleRecord{}, err
	}

	if index < 0 || index >= len(sales) {
		return SaleRecord{}, ErrSaleNotFound
	}

	if customer != nil {
		sales[index].Customer = *customer
	}
	if amount != nil {
		sales[index].Amount = *amount
	}

	if err := fs.save(salesFile, sales); err != nil {
		return SaleRecord{}, err
	}

	return sales[index], nil
}

func (fs *FileStore) loadIDs(name string) ([]string, error) {
	var ids []string
	fs.load(name, &ids)
	return ids, nil
}

func (fs *FileStore) appendID(name, threadID string) error {
	ids, _ := fs.loadIDs(name)
	for _, id := range ids {
		if id == threadID {
			return nil
		}
	}
	return fs.save(name, append(ids, threadID))
}

func (fs *FileStore) loadSales() ([]SaleRecord, error) {
	var sales []SaleRecord
	fs.load(salesFile, &sales)
	return sales, nil
}

// load reads a collection into v. A missing or unreadable file is treated
// as the empty collection so a corrupt write never takes the process down.
func (fs *FileStore) load(name string, v any) {
	data, err := os.ReadFile(filepath.Join(fs.dir, name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("file", name).Msg("Failed to read state file, treating as empty")
		}
		return
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("Corrupt state file, treating as empty")
	}
}

func (fs *FileStore) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(fs.dir, name)

	tmp, err := os.CreateTemp(fs.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	if fs.mirror != nil {
		if err := fs.mirror.Upload(name, data); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("State mirror upload failed")
		}
	}

	return nil
}
