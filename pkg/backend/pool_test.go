package backend

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/galecloud/gale/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type schedulerMock struct {
	mock.Mock
}

func (m *schedulerMock) Error(reason string) {
	m.Called(reason)
}

func (m *schedulerMock) ExecutorLost(id string, reason LossReason) {
	m.Called(id, reason)
}

type PoolTestSuite struct {
	suite.Suite
	scheduler *schedulerMock
	pool      *Pool
}

func (s *PoolTestSuite) SetupTest() {
	s.scheduler = &schedulerMock{}
	s.pool = NewPool(s.scheduler, nil, time.Minute)
}

func (s *PoolTestSuite) TestRegisterExecutor() {
	err := s.pool.RegisterExecutor(&ExecutorInfo{ID: "1", HostPort: "node1:7070", Units: 4})
	s.NoError(err)

	s.Equal(int64(4), s.pool.RegisteredUnits())
	s.Equal(1, s.pool.ExecutorCount())
	s.NotNil(s.pool.Executor("1"))
	s.False(s.pool.Executor("1").RegisteredAt.IsZero())
}

func (s *PoolTestSuite) TestRegisterDuplicateExecutor() {
	s.NoError(s.pool.RegisterExecutor(&ExecutorInfo{ID: "1", Units: 4}))

	err := s.pool.RegisterExecutor(&ExecutorInfo{ID: "1", Units: 4})
	s.ErrorIs(err, utils.ErrAlreadyExists)

	s.Equal(int64(4), s.pool.RegisteredUnits())
	s.Equal(1, s.pool.ExecutorCount())
}

func (s *PoolTestSuite) TestRegisterAfterStopIsRejected() {
	s.pool.Stop()

	err := s.pool.RegisterExecutor(&ExecutorInfo{ID: "1", Units: 4})
	s.ErrorIs(err, utils.ErrTerminated)
}

func (s *PoolTestSuite) TestRemoveExecutorNotifiesScheduler() {
	s.NoError(s.pool.RegisterExecutor(&ExecutorInfo{ID: "1", Units: 4}))

	reason := ClassifyLoss(nil, "oom")
	s.scheduler.On("ExecutorLost", "1", reason).Once()

	s.pool.RemoveExecutor("1", reason)

	s.Equal(int64(0), s.pool.RegisteredUnits())
	s.Equal(0, s.pool.ExecutorCount())
	s.scheduler.AssertExpectations(s.T())
}

func (s *PoolTestSuite) TestRemoveUnknownExecutorIsIgnored() {
	s.pool.RemoveExecutor("42", ClassifyLoss(nil, "oom"))

	s.scheduler.AssertNotCalled(s.T(), "ExecutorLost", mock.Anything, mock.Anything)
}

func (s *PoolTestSuite) TestRemoveAfterStopIsNotReported() {
	s.NoError(s.pool.RegisterExecutor(&ExecutorInfo{ID: "1", Units: 4}))

	s.pool.Stop()
	s.pool.RemoveExecutor("1", ClassifyLoss(nil, "shutdown"))

	s.Equal(int64(0), s.pool.RegisteredUnits())
	s.scheduler.AssertNotCalled(s.T(), "ExecutorLost", mock.Anything, mock.Anything)
}

func (s *PoolTestSuite) TestExecutorsAreOrderedById() {
	s.NoError(s.pool.RegisterExecutor(&ExecutorInfo{ID: "2", Units: 1}))
	s.NoError(s.pool.RegisterExecutor(&ExecutorInfo{ID: "0", Units: 1}))
	s.NoError(s.pool.RegisterExecutor(&ExecutorInfo{ID: "1", Units: 1}))

	executors := s.pool.Executors()
	s.Len(executors, 3)
	s.Equal("0", executors[0].ID)
	s.Equal("1", executors[1].ID)
	s.Equal("2", executors[2].ID)
}

func (s *PoolTestSuite) TestStatistics() {
	s.NoError(s.pool.RegisterExecutor(&ExecutorInfo{ID: "1", Units: 4}))
	s.NoError(s.pool.RegisterExecutor(&ExecutorInfo{ID: "2", Units: 4}))

	s.scheduler.On("ExecutorLost", mock.Anything, mock.Anything).Once()
	s.pool.RemoveExecutor("1", ClassifyLoss(nil, "gone"))

	stats := s.pool.Statistics()
	s.Equal(1, stats.Executors)
	s.Equal(int64(4), stats.RegisteredUnits)
	s.Equal(int64(2), stats.GrantedExecutors)
	s.Equal(int64(1), stats.LostExecutors)
}

func TestPoolTestSuite(t *testing.T) {
	suite.Run(t, new(PoolTestSuite))
}

func TestPoolIsReadyWithoutSufficiencyCheck(t *testing.T) {
	pool := NewPool(&schedulerMock{}, nil, time.Minute)
	assert.True(t, pool.IsReady())
}

func TestPoolIsReadyWhenSufficient(t *testing.T) {
	var sufficient atomic.Bool
	pool := NewPool(&schedulerMock{}, sufficient.Load, time.Minute)

	assert.False(t, pool.IsReady())

	sufficient.Store(true)
	assert.True(t, pool.IsReady())
}

func TestPoolIsReadyAfterGracePeriod(t *testing.T) {
	pool := NewPool(&schedulerMock{}, func() bool { return false }, 250*time.Millisecond)

	assert.False(t, pool.IsReady())

	time.Sleep(300 * time.Millisecond)
	assert.True(t, pool.IsReady())
}

func TestPoolWaitUntilReady(t *testing.T) {
	var sufficient atomic.Bool
	pool := NewPool(&schedulerMock{}, sufficient.Load, time.Minute)

	go func() {
		time.Sleep(50 * time.Millisecond)
		sufficient.Store(true)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, pool.WaitUntilReady(ctx))
}

func TestPoolWaitUntilReadyCancelled(t *testing.T) {
	pool := NewPool(&schedulerMock{}, func() bool { return false }, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, pool.WaitUntilReady(ctx), context.DeadlineExceeded)
}
