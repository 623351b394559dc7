package service

import (
	"hash/fnv"
	"sync"
)

const defaultLockShards = 64

// keyLock serializes read-modify-write sequences on the same key. Keys are
// spread over a fixed set of mutexes by fnv-32a hash, so unrelated keys may
// share a shard but a single key always maps to the same one.
type keyLock struct {
	shards []sync.Mutex
}

func newKeyLock(shards int) *keyLock {
	if shards <= 0 {
		shards = defaultLockShards
	}
	return &keyLock{shards: make([]sync.Mutex, shards)}
}

// lock acquires the shard owning key and returns its release func.
func (l *keyLock) lock(key string) func() {
	m := &l.shards[l.shardIndex(key)]
	m.Lock()
	return m.Unlock
}

func (l *keyLock) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(l.shards)))
}
