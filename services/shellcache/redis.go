package shellcache

import (
	"context"
	"sort"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps each bucket in a hash and the bucket names in a set,
// so buckets survive restarts and are shared between instances.
type RedisStorage struct {
	rdb       *redis.Client
	namespace string
}

func NewRedisStorage(rdb *redis.Client, namespace string) *RedisStorage {
	if namespace == "" {
		namespace = "shellcache"
	}
	return &RedisStorage{rdb: rdb, namespace: namespace}
}

func (s *RedisStorage) setKey() string {
	return s.namespace + ":buckets"
}

func (s *RedisStorage) bucketKey(name string) string {
	return s.namespace + ":bucket:" + name
}

func (s *RedisStorage) bucket(name string) *redisBucket {
	return &redisBucket{rdb: s.rdb, setKey: s.setKey(), name: name, key: s.bucketKey(name)}
}

func (s *RedisStorage) Open(ctx context.Context, name string) (Bucket, error) {
	if err := s.rdb.SAdd(ctx, s.setKey(), name).Err(); err != nil {
		return nil, err
	}
	return s.bucket(name), nil
}

func (s *RedisStorage) Lookup(ctx context.Context, name string) (Bucket, error) {
	ok, err := s.rdb.SIsMember(ctx, s.setKey(), name).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return s.bucket(name), nil
}

func (s *RedisStorage) Keys(ctx context.Context) ([]string, error) {
	names, err := s.rdb.SMembers(ctx, s.setKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (s *RedisStorage) Delete(ctx context.Context, name string) (bool, error) {
	var removed *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.SRem(ctx, s.setKey(), name)
		pipe.Del(ctx, s.bucketKey(name))
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed.Val() > 0, nil
}

// putIfListed writes the hash fields only while the bucket is still in the
// bucket set, so a write racing a Delete cannot bring the hash back.
var putIfListed = redis.NewScript(`
if redis.call("SISMEMBER", KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[2], unpack(ARGV, 2))
return 1
`)

type redisBucket struct {
	rdb    *redis.Client
	setKey string
	name   string
	key    string
}

func (b *redisBucket) hset(ctx context.Context, fields []interface{}) error {
	args := append([]interface{}{b.name}, fields...)
	listed, err := putIfListed.Run(ctx, b.rdb, []string{b.setKey, b.key}, args...).Int()
	if err != nil {
		return err
	}
	if listed == 0 {
		return ErrBucketDeleted
	}
	return nil
}

func (b *redisBucket) Match(ctx context.Context, key string) (*Response, error) {
	raw, err := b.rdb.HGet(ctx, b.key, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (b *redisBucket) Put(ctx context.Context, key string, resp *Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return b.hset(ctx, []interface{}{key, raw})
}

func (b *redisBucket) PutAll(ctx context.Context, entries map[string]*Response) error {
	if len(entries) == 0 {
		return nil
	}
	fields := make([]interface{}, 0, 2*len(entries))
	for k, v := range entries {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fields = append(fields, k, raw)
	}
	// One script call is atomic, no partial bucket is ever visible.
	return b.hset(ctx, fields)
}
