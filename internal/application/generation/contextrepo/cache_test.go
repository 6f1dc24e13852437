package contextrepo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"contentforge-ai-api/internal/domain/entity"
)

type fakeEntityCache struct {
	payload []byte
	err     error
	calls   int
}

func (f *fakeEntityCache) GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.payload != nil {
		return f.payload, nil
	}
	v, err := loader()
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func TestLoadCachedWithoutCacheLoadsDirectly(t *testing.T) {
	loads := 0
	got, err := loadCached(context.Background(), nil, "k", func() (*entity.Category, error) {
		loads++
		return &entity.Category{Name: "Blog Post"}, nil
	})
	if err != nil {
		t.Fatalf("loadCached() error = %v", err)
	}
	if got.Name != "Blog Post" || loads != 1 {
		t.Errorf("got %+v after %d loads", got, loads)
	}
}

func TestLoadCachedHit(t *testing.T) {
	payload, _ := json.Marshal(&entity.Category{Name: "Newsletter"})
	cache := &fakeEntityCache{payload: payload}

	got, err := loadCached(context.Background(), cache, "k", func() (*entity.Category, error) {
		t.Fatal("loader must not run on cache hit")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("loadCached() error = %v", err)
	}
	if got.Name != "Newsletter" {
		t.Errorf("got %+v", got)
	}
}

func TestLoadCachedNullMeansConfirmedAbsent(t *testing.T) {
	cache := &fakeEntityCache{payload: []byte("null")}
	got, err := loadCached(context.Background(), cache, "k", func() (*entity.Category, error) {
		t.Fatal("loader must not run when absence is cached")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("loadCached() error = %v", err)
	}
	if got != nil {
		t.Errorf("cached null must yield nil, got %+v", got)
	}
}

func TestLoadCachedDegradesOnCacheError(t *testing.T) {
	cache := &fakeEntityCache{err: errors.New("redis down")}
	got, err := loadCached(context.Background(), cache, "k", func() (*entity.Category, error) {
		return &entity.Category{Name: "Fallback"}, nil
	})
	if err != nil {
		t.Fatalf("cache failure must degrade to direct load: %v", err)
	}
	if got == nil || got.Name != "Fallback" {
		t.Errorf("got %+v", got)
	}
}

func TestLoadCachedDegradesOnCorruptPayload(t *testing.T) {
	cache := &fakeEntityCache{payload: []byte("{not json")}
	got, err := loadCached(context.Background(), cache, "k", func() (*entity.Category, error) {
		return &entity.Category{Name: "Fresh"}, nil
	})
	if err != nil {
		t.Fatalf("corrupt payload must degrade to direct load: %v", err)
	}
	if got == nil || got.Name != "Fresh" {
		t.Errorf("got %+v", got)
	}
}
