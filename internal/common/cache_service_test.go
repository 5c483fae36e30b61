package common

import (
	"errors"
	"testing"
	"time"
)

func TestCacheService_GetOrSet(t *testing.T) {
	cache := NewCacheService(time.Minute, time.Minute)
	calls := 0
	loader := func() (any, error) {
		calls++
		return "rules", nil
	}

	for i := 0; i < 3; i++ {
		val, err := cache.GetOrSet("key", time.Minute, loader)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if val != "rules" {
			t.Errorf("Expected rules, got %v", val)
		}
	}

	if calls != 1 {
		t.Errorf("Expected loader to run once, ran %d times", calls)
	}
}

func TestCacheService_GetOrSetLoaderError(t *testing.T) {
	cache := NewCacheService(time.Minute, time.Minute)
	boom := errors.New("boom")

	if _, err := cache.GetOrSet("key", time.Minute, func() (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("Expected loader error, got %v", err)
	}
	if _, found := cache.Get("key"); found {
		t.Error("Expected failed load not to be cached")
	}
}

func TestCacheService_Delete(t *testing.T) {
	cache := NewCacheService(time.Minute, time.Minute)
	cache.Set("key", 1, time.Minute)
	cache.Delete("key")

	if _, found := cache.Get("key"); found {
		t.Error("Expected key to be deleted")
	}
}
