package service

import (
	"fmt"
	"time"

	"github.com/user/streamflix/internal/model"
	"github.com/user/streamflix/internal/utils"
	"golang.org/x/sync/singleflight"
)

// MovieSearcher 搜索服务需要的影片存储能力
type MovieSearcher interface {
	Search(keyword string, limit, offset int) ([]*model.Movie, error)
	CountSearch(keyword string) (int64, error)
}

// SearchPage 一页搜索结果
type SearchPage struct {
	Items []*model.Movie
	Total int64
}

// SearchService 影片搜索服务
// 标题子串匹配 + LRU 缓存，singleflight 合并并发的相同查询
type SearchService struct {
	movies MovieSearcher
	cache  *utils.SearchCache[SearchPage]
	sf     singleflight.Group
}

// NewSearchService 创建搜索服务
func NewSearchService(movies MovieSearcher) *SearchService {
	return &SearchService{
		movies: movies,
		cache:  utils.NewSearchCache[SearchPage](1000, 5*time.Minute),
	}
}

// Search 搜索影片
func (s *SearchService) Search(keyword string, page, limit int) (*SearchPage, error) {
	key := fmt.Sprintf("%s|%d|%d", keyword, page, limit)

	// 1. 命中缓存直接返回
	if cached, ok := s.cache.Get(key); ok {
		return &cached, nil
	}

	// 2. 使用 singleflight 避免并发请求同一个词
	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		items, err := s.movies.Search(keyword, limit, (page-1)*limit)
		if err != nil {
			return nil, err
		}
		total, err := s.movies.CountSearch(keyword)
		if err != nil {
			return nil, err
		}

		result := SearchPage{Items: items, Total: total}
		s.cache.Set(key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	result := val.(SearchPage)
	return &result, nil
}

// InvalidateAll 清空搜索缓存（影片增删改后调用）
func (s *SearchService) InvalidateAll() {
	s.cache.Clear()
}
