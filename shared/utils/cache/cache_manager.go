package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"elevatia-backend/shared/config"
	"elevatia-backend/shared/database/models"
)

// CacheManager caches partner-admin resolutions so the authorization
// resolver does not hit the database on every request. Entries are
// invalidated whenever team membership changes.
type CacheManager struct {
	client *redis.Client
	ctx    context.Context
}

type adminCacheEntry struct {
	Admin    *models.PartnerAdmin `json:"admin"`
	CachedAt time.Time            `json:"cached_at"`
}

var (
	globalCacheManager *CacheManager
	AdminResolutionTTL = 5 * time.Minute
)

// InitCacheManager initializes the global cache manager
func InitCacheManager() error {
	cfg := config.GetConfig()

	redisDB, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		log.Printf("❌ Invalid Redis DB number: %s, using default 0", cfg.RedisDB)
		redisDB = 0
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       redisDB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	globalCacheManager = &CacheManager{
		client: client,
		ctx:    ctx,
	}

	log.Printf("✅ Redis Cache Manager initialized successfully - %s:%s DB:%d",
		cfg.RedisHost, cfg.RedisPort, redisDB)

	return nil
}

// GetCacheManager returns the global cache manager instance. A nil manager
// is usable: all operations degrade to cache misses.
func GetCacheManager() *CacheManager {
	if globalCacheManager == nil {
		if err := InitCacheManager(); err != nil {
			log.Printf("❌ Failed to initialize cache manager: %v", err)
			return nil
		}
	}
	return globalCacheManager
}

// AdminResolutionKey generates the cache key for a subject's admin record
func AdminResolutionKey(subjectID uuid.UUID) string {
	return fmt.Sprintf("authz:subject:%s", subjectID)
}

// SetAdminResolution caches the partner-admin record resolved for a subject
func (cm *CacheManager) SetAdminResolution(subjectID uuid.UUID, admin *models.PartnerAdmin) error {
	if cm == nil || cm.client == nil {
		return fmt.Errorf("cache manager not initialized")
	}

	entry := adminCacheEntry{
		Admin:    admin,
		CachedAt: time.Now(),
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %v", err)
	}

	key := AdminResolutionKey(subjectID)
	if err := cm.client.Set(cm.ctx, key, jsonData, AdminResolutionTTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %v", err)
	}

	return nil
}

// GetAdminResolution retrieves a cached partner-admin record for a subject
func (cm *CacheManager) GetAdminResolution(subjectID uuid.UUID) (*models.PartnerAdmin, bool) {
	if cm == nil || cm.client == nil {
		return nil, false
	}

	key := AdminResolutionKey(subjectID)

	result, err := cm.client.Get(cm.ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("❌ Cache error: %v", err)
		}
		return nil, false
	}

	var entry adminCacheEntry
	if err := json.Unmarshal([]byte(result), &entry); err != nil {
		log.Printf("❌ Failed to unmarshal cache data: %v", err)
		return nil, false
	}

	return entry.Admin, true
}

// InvalidateSubject drops the cached resolution for a subject. Call after
// any team-membership mutation touching that subject.
func (cm *CacheManager) InvalidateSubject(subjectID uuid.UUID) error {
	if cm == nil || cm.client == nil {
		return fmt.Errorf("cache manager not initialized")
	}

	key := AdminResolutionKey(subjectID)
	if err := cm.client.Del(cm.ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key %s: %v", key, err)
	}

	return nil
}

// InvalidateAll drops every cached resolution, by scan. Used when an
// organization is suspended and its members must re-resolve.
func (cm *CacheManager) InvalidateAll() error {
	if cm == nil || cm.client == nil {
		return fmt.Errorf("cache manager not initialized")
	}

	iter := cm.client.Scan(cm.ctx, 0, "authz:subject:*", 0).Iterator()
	var keys []string

	for iter.Next(cm.ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %v", err)
	}

	if len(keys) > 0 {
		if err := cm.client.Del(cm.ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete keys: %v", err)
		}
		log.Printf("🗑️  Cache invalidated: %d authz resolutions", len(keys))
	}

	return nil
}

// Close closes the cache manager connection
func (cm *CacheManager) Close() error {
	if cm != nil && cm.client != nil {
		return cm.client.Close()
	}
	return nil
}
