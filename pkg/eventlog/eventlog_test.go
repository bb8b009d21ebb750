package eventlog

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/galecloud/gale/pkg/backend"
	"github.com/galecloud/gale/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Mock config
type MockJournalConfig struct {
	mock.Mock
}

func (c *MockJournalConfig) MaxSize() int64 {
	a := c.Called()
	return int64(a.Int(0))
}

type EventLogTestSuite struct {
	suite.Suite
	config MockJournalConfig
	fs     utils.Fs
	store  *Store
}

func (s *EventLogTestSuite) SetupTest() {
	s.config.On("MaxSize").Return(0x100000)
	s.fs = afero.NewMemMapFs()
	s.store = NewStore(&s.config, s.fs)
}

func (s *EventLogTestSuite) TestWriteRead() {
	name := JournalName("test", time.Now())

	writer, err := s.store.Create(name)
	require.NoError(s.T(), err)

	writer.ApplicationRegistered("app-1")
	writer.ExecutorAdded(&backend.ExecutorEvent{
		FullID:   "worker-0/0",
		WorkerID: "worker-0",
		HostPort: "localhost",
		Units:    4,
		MemoryMB: 1024,
	})
	writer.ExecutorRemoved("0", backend.ProcessExited{Code: 137})
	writer.ApplicationDead("master rejected application")
	require.NoError(s.T(), writer.Close())

	reader, err := s.store.Open(name)
	require.NoError(s.T(), err)
	defer reader.Close()

	event, err := reader.ReadEvent()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), EventApplicationRegistered, event.Type)
	assert.Equal(s.T(), "app-1", event.ApplicationID)
	assert.False(s.T(), event.Time.IsZero())

	event, err = reader.ReadEvent()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), EventExecutorAdded, event.Type)
	assert.Equal(s.T(), "worker-0/0", event.ExecutorID)
	assert.Equal(s.T(), "worker-0", event.WorkerID)
	assert.Equal(s.T(), 4, event.Units)
	assert.Equal(s.T(), 1024, event.MemoryMB)

	event, err = reader.ReadEvent()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), EventExecutorRemoved, event.Type)
	assert.Equal(s.T(), "0", event.ExecutorID)
	assert.Equal(s.T(), "executor process exited with code 137", event.Reason)

	event, err = reader.ReadEvent()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), EventApplicationDead, event.Type)
	assert.Equal(s.T(), "master rejected application", event.Reason)

	_, err = reader.ReadEvent()
	assert.ErrorIs(s.T(), err, io.EOF)
}

func (s *EventLogTestSuite) TestReindex() {
	for _, name := range []string{"app-1.jl.zst", "app-2.jl.zst"} {
		writer, err := s.store.Create(name)
		require.NoError(s.T(), err)
		writer.ApplicationRegistered("app-1")
		require.NoError(s.T(), writer.Close())
	}

	// A new store over the same filesystem picks up both journals.
	store := NewStore(&s.config, s.fs)

	for _, name := range []string{"app-1.jl.zst", "app-2.jl.zst"} {
		reader, err := store.Open(name)
		require.NoError(s.T(), err)
		reader.Close()
	}
}

func (s *EventLogTestSuite) TestEviction() {
	sizes := map[string]int64{}

	for _, name := range []string{"app-1.jl.zst", "app-2.jl.zst"} {
		writer, err := s.store.Create(name)
		require.NoError(s.T(), err)
		writer.ApplicationRegistered("app-1")
		writer.ApplicationDead("done")
		require.NoError(s.T(), writer.Close())

		st, err := s.fs.Stat(name)
		require.NoError(s.T(), err)
		sizes[name] = st.Size()
	}

	config := MockJournalConfig{}
	config.On("MaxSize").Return(int(sizes["app-1.jl.zst"] + sizes["app-2.jl.zst"] - 1))

	// Reloading with a tighter bound drops the oldest journal.
	NewStore(&config, s.fs)

	_, err := s.fs.Stat("app-1.jl.zst")
	assert.Error(s.T(), err)

	_, err = s.fs.Stat("app-2.jl.zst")
	assert.NoError(s.T(), err)
}

func (s *EventLogTestSuite) TestVetoLiveJournal() {
	config := MockJournalConfig{}
	config.On("MaxSize").Return(1)

	fs := afero.NewMemMapFs()
	store := NewStore(&config, fs)

	live, err := store.Create("app-live.jl.zst")
	require.NoError(s.T(), err)
	live.ApplicationRegistered("app-1")

	other, err := store.Create("app-other.jl.zst")
	require.NoError(s.T(), err)
	other.ApplicationRegistered("app-1")
	require.NoError(s.T(), other.Close())

	// The closed journal is evicted, the live one is protected.
	_, err = fs.Stat("app-other.jl.zst")
	assert.Error(s.T(), err)

	_, err = fs.Stat("app-live.jl.zst")
	assert.NoError(s.T(), err)

	require.NoError(s.T(), live.Close())
}

func (s *EventLogTestSuite) TestJournalName() {
	assert.Regexp(s.T(), `^gale-\d+\.jl\.zst$`, JournalName("gale", time.Now()))
}

func (s *EventLogTestSuite) TestJournals() {
	for _, name := range []string{"app-2.jl.zst", "app-1.jl.zst"} {
		writer, err := s.store.Create(name)
		require.NoError(s.T(), err)
		writer.ApplicationRegistered("app-1")
		require.NoError(s.T(), writer.Close())
	}

	journals := s.store.Journals()
	require.Len(s.T(), journals, 2)
	assert.Equal(s.T(), "app-1.jl.zst", journals[0].Name)
	assert.Equal(s.T(), "app-2.jl.zst", journals[1].Name)
	assert.Greater(s.T(), journals[0].Size, int64(0))
}

func (s *EventLogTestSuite) TestHttpJournalList() {
	writer, err := s.store.Create("app-1.jl.zst")
	require.NoError(s.T(), err)
	writer.ApplicationRegistered("app-1")
	require.NoError(s.T(), writer.Close())

	router := echo.New()
	NewHttpHandler(s.store, router)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/journals", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(s.T(), http.StatusOK, recorder.Code)

	var journals []*journalDocument
	require.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &journals))
	require.Len(s.T(), journals, 1)
	assert.Equal(s.T(), "app-1.jl.zst", journals[0].Name)
	assert.Greater(s.T(), journals[0].SizeBytes, int64(0))
}

func (s *EventLogTestSuite) TestHttpJournalRead() {
	writer, err := s.store.Create("app-1.jl.zst")
	require.NoError(s.T(), err)
	writer.ApplicationRegistered("app-1")
	writer.ExecutorRemoved("0", backend.ConnectionLost{Message: "executor stream closed"})
	require.NoError(s.T(), writer.Close())

	router := echo.New()
	NewHttpHandler(s.store, router)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/journals/app-1.jl.zst", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(s.T(), http.StatusOK, recorder.Code)

	lines := strings.Split(strings.TrimRight(recorder.Body.String(), "\n"), "\n")
	require.Len(s.T(), lines, 2)
	assert.Contains(s.T(), lines[0], "[application_registered]")
	assert.Contains(s.T(), lines[0], "app: app-1")
	assert.Contains(s.T(), lines[1], "[executor_removed]")
	assert.Contains(s.T(), lines[1], "id: 0")
	assert.Contains(s.T(), lines[1], "reason: connection to executor lost: executor stream closed")
}

func (s *EventLogTestSuite) TestHttpJournalNotFound() {
	router := echo.New()
	NewHttpHandler(s.store, router)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/journals/missing.jl.zst", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(s.T(), http.StatusNotFound, recorder.Code)
}

func TestEventLog(t *testing.T) {
	suite.Run(t, &EventLogTestSuite{})
}
