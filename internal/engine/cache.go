package engine

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/twmb/murmur3"
)

// embedCache is a bounded cache of document embeddings keyed by a
// murmur3 hash of the backend class and document text. Vectors for the
// same text differ across backends, so the class is part of the key.
type embedCache struct {
	entries *lru.Cache[uint64, []float64]
}

func newEmbedCache(size int) (*embedCache, error) {
	entries, err := lru.New[uint64, []float64](size)
	if err != nil {
		return nil, err
	}
	return &embedCache{entries: entries}, nil
}

func cacheKey(class, doc string) uint64 {
	return murmur3.Sum64([]byte(class + "\x00" + doc))
}

func (c *embedCache) get(class, doc string) ([]float64, bool) {
	return c.entries.Get(cacheKey(class, doc))
}

func (c *embedCache) add(class, doc string, vector []float64) {
	c.entries.Add(cacheKey(class, doc), vector)
}
