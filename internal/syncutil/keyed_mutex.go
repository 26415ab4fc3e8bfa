// Package syncutil holds the locking primitives shared by the services.
package syncutil

import (
	"hash/fnv"
	"sync"
)

const shardCount = 128

// KeyedMutex serializes work per key (usually a lower-cased user address)
// using a fixed pool of mutexes. Distinct keys may share a shard.
type KeyedMutex struct {
	shards [shardCount]sync.Mutex
}

// Lock acquires the mutex guarding key and returns its unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	mu := k.shardFor(key)
	mu.Lock()
	return mu.Unlock
}

func (k *KeyedMutex) shardFor(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &k.shards[h.Sum32()%shardCount]
}
