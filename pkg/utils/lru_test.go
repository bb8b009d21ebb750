package utils

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type stubItem struct {
	path string
	size int64
}

func (item stubItem) Path() string {
	return item.path
}

func (item stubItem) Size() int64 {
	return item.size
}

type evictMock struct {
	mock.Mock
}

func (m *evictMock) Evict(item stubItem) bool {
	args := m.Called(item)
	return args.Bool(0)
}

type LRUTestSuite struct {
	suite.Suite
	lru  *LRU[stubItem]
	mock *evictMock
}

func (suite *LRUTestSuite) SetupTest() {
	suite.mock = new(evictMock)
	suite.lru = NewLRU(2, suite.mock.Evict)
}

func (suite *LRUTestSuite) TestEvictOldest() {
	item1 := stubItem{path: "item1", size: 1}
	item2 := stubItem{path: "item2", size: 1}
	item3 := stubItem{path: "item3", size: 1}

	suite.lru.Add(item1)
	suite.lru.Add(item2)

	suite.mock.On("Evict", item1).Return(true).Once()

	suite.lru.Add(item3)

	suite.mock.AssertExpectations(suite.T())
	suite.Equal(int64(2), suite.lru.Size())
	suite.Equal(2, suite.lru.Count())
}

func (suite *LRUTestSuite) TestAccessRefreshesItem() {
	item1 := stubItem{path: "item1", size: 1}
	item2 := stubItem{path: "item2", size: 1}
	item3 := stubItem{path: "item3", size: 1}

	suite.lru.Add(item1)
	suite.lru.Add(item2)

	// Access item1 to make it recently used.
	_, ok := suite.lru.Get("item1")
	suite.True(ok)

	suite.mock.On("Evict", item2).Return(true).Once()

	// Adding item3 should now evict item2 instead of item1.
	suite.lru.Add(item3)

	suite.mock.AssertExpectations(suite.T())

	_, ok = suite.lru.Get("item2")
	suite.False(ok)

	_, ok = suite.lru.Get("item3")
	suite.True(ok)
}

func (suite *LRUTestSuite) TestVetoedEvictionKeepsItem() {
	item1 := stubItem{path: "item1", size: 1}
	item2 := stubItem{path: "item2", size: 1}
	item3 := stubItem{path: "item3", size: 1}
	item4 := stubItem{path: "item4", size: 1}
	item5 := stubItem{path: "item5", size: 1}

	suite.mock.On("Evict", item1).Return(false)
	suite.mock.On("Evict", item2).Return(false)
	suite.mock.On("Evict", item3).Return(false)
	suite.mock.On("Evict", item4).Return(true)
	suite.mock.On("Evict", item5).Return(false)

	suite.lru.Add(item1)
	suite.lru.Add(item2)
	suite.lru.Add(item3)
	suite.lru.Add(item4)
	suite.lru.Add(item5)

	_, ok := suite.lru.Get("item1")
	suite.True(ok, "vetoed item1 should remain indexed")
	_, ok = suite.lru.Get("item2")
	suite.True(ok, "vetoed item2 should remain indexed")
	_, ok = suite.lru.Get("item3")
	suite.True(ok, "vetoed item3 should remain indexed")
	_, ok = suite.lru.Get("item4")
	suite.False(ok, "item4 should have been evicted")
	_, ok = suite.lru.Get("item5")
	suite.True(ok, "vetoed item5 should remain indexed")
}

func (suite *LRUTestSuite) TestReAddUpdatesSize() {
	suite.lru.Add(stubItem{path: "item1", size: 1})
	suite.lru.Add(stubItem{path: "item1", size: 2})

	suite.Equal(1, suite.lru.Count())
	suite.Equal(int64(2), suite.lru.Size())
}

func (suite *LRUTestSuite) TestZeroMaxSizeIsUnbounded() {
	lru := NewLRU(0, suite.mock.Evict)

	for _, item := range []stubItem{
		{path: "a", size: 100},
		{path: "b", size: 200},
		{path: "c", size: 300},
	} {
		lru.Add(item)
	}

	suite.Equal(3, lru.Count())
	suite.Equal(int64(600), lru.Size())
	suite.mock.AssertNotCalled(suite.T(), "Evict", mock.Anything)
}

func (suite *LRUTestSuite) TestRemoveSkipsEvictCallback() {
	item := stubItem{path: "item1", size: 1}

	suite.lru.Add(item)
	suite.lru.Remove("item1")

	suite.Equal(0, suite.lru.Count())
	suite.Equal(int64(0), suite.lru.Size())
	suite.mock.AssertNotCalled(suite.T(), "Evict", mock.Anything)
}

func TestLRUTestSuite(t *testing.T) {
	suite.Run(t, new(LRUTestSuite))
}
