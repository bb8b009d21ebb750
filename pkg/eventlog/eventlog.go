// Package eventlog keeps a bounded journal of application lifecycle events.
package eventlog

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/utils"
	"github.com/spf13/afero"
)

// Journal file name suffix.
const journalSuffix = ".jl.zst"

type Config interface {
	// Get the maximum allowed size of the journal store.
	// If the store is larger than this, the oldest journals will be removed.
	// If this is 0, the store is unbounded.
	MaxSize() int64
}

// Event types recorded in a journal.
const (
	EventApplicationRegistered = "application_registered"
	EventApplicationDead       = "application_dead"
	EventExecutorAdded         = "executor_added"
	EventExecutorRemoved       = "executor_removed"
)

// A single journal record, encoded as one JSON line.
type Event struct {
	Time          time.Time `json:"time"`
	Type          string    `json:"type"`
	ApplicationID string    `json:"application_id,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	ExecutorID    string    `json:"executor_id,omitempty"`
	WorkerID      string    `json:"worker_id,omitempty"`
	HostPort      string    `json:"host_port,omitempty"`
	Units         int       `json:"units,omitempty"`
	MemoryMB      int       `json:"memory_mb,omitempty"`
}

type journalFile struct {
	fs   utils.Fs
	path string
	size int64
}

func newJournalFile(fs utils.Fs, path string) *journalFile {
	var size int64 = 0

	st, err := fs.Stat(path)
	if err == nil {
		size = st.Size()
	}

	return &journalFile{
		fs:   fs,
		path: path,
		size: size,
	}
}

func (f *journalFile) Path() string {
	return f.path
}

func (f *journalFile) Size() int64 {
	return f.size
}

func (f *journalFile) Unlink() error {
	return f.fs.Remove(f.path)
}

// Store retains journals on a filesystem, oldest first out.
type Store struct {
	sync.RWMutex
	config Config
	fs     utils.Fs
	lru    *utils.LRU[*journalFile]
	open   map[string]bool
}

func NewStore(config Config, fs utils.Fs) *Store {
	store := &Store{
		config: config,
		fs:     fs,
		open:   map[string]bool{},
	}

	store.lru = utils.NewLRU[*journalFile](config.MaxSize(), func(item *journalFile) bool {
		// A journal that is still being written must not be unlinked.
		if store.isOpen(item.Path()) {
			return false
		}

		log.Debug("del - journal - id:", item.Path())
		item.Unlink()
		return true
	})

	// Load existing journals into the LRU
	journalCount := 0

	afero.Walk(fs, ".", func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, journalSuffix) {
			return nil
		}

		store.lru.Add(newJournalFile(fs, path))
		journalCount++
		return nil
	})

	log.Infof("Loaded %d journals into the event log store. Size: %s / %s",
		journalCount, utils.HumanByteSize(store.lru.Size()), utils.HumanByteSize(config.MaxSize()))

	return store
}

// JournalName returns the canonical journal file name for one driver run.
func JournalName(appName string, start time.Time) string {
	return fmt.Sprintf("%s-%d%s", appName, start.UnixMilli(), journalSuffix)
}

// Create a new journal and return a writer for it.
func (s *Store) Create(name string) (*Writer, error) {
	file, err := s.fs.Create(name)
	if err != nil {
		return nil, err
	}

	s.Lock()
	s.open[name] = true
	s.Unlock()

	// Indexed immediately so the eviction walk sees it, protected
	// by the veto until closed.
	s.lru.Add(newJournalFile(s.fs, name))

	log.Debug("add - journal - id:", name)

	writer, err := newWriter(s, file)
	if err != nil {
		s.Lock()
		delete(s.open, name)
		s.Unlock()
		return nil, err
	}

	return writer, nil
}

// Journal describes one stored journal file.
type Journal struct {
	Name string
	Size int64
}

// Journals lists the stored journal files, sorted by name.
func (s *Store) Journals() []*Journal {
	journals := []*Journal{}

	afero.Walk(s.fs, ".", func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, journalSuffix) {
			return nil
		}

		journals = append(journals, &Journal{Name: path, Size: info.Size()})
		return nil
	})

	sort.Slice(journals, func(i, j int) bool {
		return journals[i].Name < journals[j].Name
	})

	return journals
}

// Open an existing journal for reading.
func (s *Store) Open(name string) (*Reader, error) {
	file, err := s.fs.Open(name)
	if err != nil {
		return nil, err
	}

	return newReader(file)
}

func (s *Store) isOpen(name string) bool {
	s.RLock()
	defer s.RUnlock()
	return s.open[name]
}

func (s *Store) writerClosed(writer *Writer) {
	s.Lock()
	delete(s.open, writer.Path())
	s.Unlock()

	s.lru.Add(newJournalFile(s.fs, writer.Path()))
}
