// Package storage keeps replay sessions on disk, one directory per session
// holding metadata.json and the write journal as writes.csv.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/chaospanel/internal/journal"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SessionMetadata struct {
	ID        string    `json:"id"`
	Script    string    `json:"script"`
	Timestamp time.Time `json:"timestamp"`
	Preset    string    `json:"preset,omitempty"`
	Extended  bool      `json:"extended"`
	Events    int       `json:"events"`
	Writes    int       `json:"writes"`
}

// Save stores a session and returns its id. ID, Timestamp and Writes are
// filled in from the call.
func (s *Store) Save(meta SessionMetadata, entries []journal.Entry) (string, error) {
	now := s.now()
	name := strings.TrimSuffix(filepath.Base(meta.Script), filepath.Ext(meta.Script))
	if name == "" || name == "." {
		name = "session"
	}
	meta.ID = fmt.Sprintf("%s_%d", name, now.UnixMilli())
	meta.Timestamp = now
	meta.Writes = len(entries)

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "writes.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := journal.WriteCSV(csvFile, entries); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable session, oldest first.
func (s *Store) List() ([]SessionMetadata, error) {
	dirs, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		meta, err := s.Load(d.Name())
		if err != nil {
			continue
		}
		sessions = append(sessions, *meta)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.Before(sessions[j].Timestamp)
	})
	return sessions, nil
}

func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadWrites(id string) ([]journal.Entry, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "writes.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return journal.ReadCSV(f)
}
