package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamflix/internal/model"
)

// fakeSearcher 记录查询次数
type fakeSearcher struct {
	movies []*model.Movie
	calls  int
}

func (f *fakeSearcher) Search(keyword string, limit, offset int) ([]*model.Movie, error) {
	f.calls++
	return f.movies, nil
}

func (f *fakeSearcher) CountSearch(keyword string) (int64, error) {
	return int64(len(f.movies)), nil
}

func TestSearchCachesResults(t *testing.T) {
	store := &fakeSearcher{movies: []*model.Movie{{ID: 1, Title: "流浪地球"}}}
	svc := NewSearchService(store)

	page, err := svc.Search("流浪", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, store.calls)

	// 相同查询命中缓存，不再访问存储
	page, err = svc.Search("流浪", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, store.calls)

	// 不同页是独立的缓存键
	_, err = svc.Search("流浪", 2, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
}

func TestSearchInvalidateAll(t *testing.T) {
	store := &fakeSearcher{movies: []*model.Movie{{ID: 1, Title: "流浪地球"}}}
	svc := NewSearchService(store)

	_, err := svc.Search("流浪", 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, store.calls)

	// 目录变更后缓存全部失效
	svc.InvalidateAll()

	_, err = svc.Search("流浪", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
}
