package lake

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"makanApa/domain"
)

// Memory is an in-memory gateway with the same semantics as LakeRepository.
// Used by the pipeline tests and by local runs without a MinIO endpoint.
type Memory struct {
	mu      sync.Mutex
	objects map[string]memoryObject
	clock   time.Time
}

type memoryObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string]memoryObject),
		clock:   time.Now(),
	}
}

// PutAt stores an object with an explicit modification time, so tests can
// arrange t1 < t2 < t3 orderings.
func (m *Memory) PutAt(key string, data []byte, contentType string, lastModified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = memoryObject{
		data:         append([]byte(nil), data...),
		contentType:  contentType,
		lastModified: lastModified,
	}
}

func (m *Memory) List(ctx context.Context, prefix string) ([]domain.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var infos []domain.ObjectInfo
	for key, obj := range m.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			infos = append(infos, domain.ObjectInfo{Key: key, LastModified: obj.lastModified})
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })

	return infos, nil
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrObjectNotFound, key)
	}

	return append([]byte(nil), obj.data...), nil
}

func (m *Memory) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock = m.clock.Add(time.Second)
	m.objects[key] = memoryObject{
		data:         append([]byte(nil), data...),
		contentType:  contentType,
		lastModified: m.clock,
	}

	return nil
}

func (m *Memory) Latest(ctx context.Context, prefix string) (string, error) {
	infos, err := m.List(ctx, prefix)
	if err != nil {
		return "", err
	}

	return LatestOf(infos, prefix)
}
