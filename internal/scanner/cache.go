package scanner

import (
	"fmt"
	"io/fs"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"toksloc/internal/model"
)

// DefaultCacheSize 是 ResultCache 的默认容量（文件数）。
const DefaultCacheSize = 4096

// cachedResult 记录结果以及计算时的文件指纹。
type cachedResult struct {
	size    int64
	modTime time.Time
	result  model.FileResult
}

// CacheStats 是缓存命中统计。
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// ResultCache 按绝对路径缓存单文件结果。
// 文件大小和修改时间都未变化时视为命中；并发安全。
type ResultCache struct {
	entries *lru.Cache[string, cachedResult]
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewResultCache 创建指定容量的缓存；size <= 0 时使用默认容量。
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, cachedResult](size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &ResultCache{entries: entries}, nil
}

// Get 在指纹匹配时返回缓存结果。
func (c *ResultCache) Get(path string, info fs.FileInfo) (model.FileResult, bool) {
	entry, ok := c.entries.Get(path)
	if !ok || entry.size != info.Size() || !entry.modTime.Equal(info.ModTime()) {
		c.misses.Add(1)
		return model.FileResult{}, false
	}
	c.hits.Add(1)
	return entry.result, true
}

// Put 保存结果。
func (c *ResultCache) Put(path string, info fs.FileInfo, result model.FileResult) {
	c.entries.Add(path, cachedResult{
		size:    info.Size(),
		modTime: info.ModTime(),
		result:  result,
	})
}

// Invalidate 删除某个路径的缓存。
func (c *ResultCache) Invalidate(path string) {
	c.entries.Remove(path)
}

// Len 返回当前缓存的文件数。
func (c *ResultCache) Len() int {
	return c.entries.Len()
}

// Stats 返回累计命中统计。
func (c *ResultCache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.entries.Len(),
	}
}
