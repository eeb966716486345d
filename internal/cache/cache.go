package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin wrapper over redis used for short-lived read caches. Every
// method degrades to a miss on redis errors so the service keeps working when
// redis is down.
type Cache struct {
	conn *redis.Client
}

func Connect(addr string) *Cache {
	conn := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := conn.Ping(ctx).Err(); err != nil {
		log.Println("[CACHE] [WARN] redis unreachable:", err)
	}

	return &Cache{conn: conn}
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.conn.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Println("[CACHE] [WARN] corrupt cache entry dropped:", key)
		c.conn.Del(ctx, key)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.conn.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Println("[CACHE] [WARN] cache set failed:", err)
	}
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.conn.Del(ctx, keys...).Err(); err != nil {
		log.Println("[CACHE] [WARN] cache invalidate failed:", err)
	}
}
