package missingimage

import (
	"sync"

	"github.com/jamesrr39/goutil/errorsx"
)

// MemoryRegistry is an ImageRegistry kept in memory, for hosts that do not bring their own.
// Once full, the oldest image is dropped to make room.
type MemoryRegistry struct {
	mu       sync.RWMutex
	maxItems int
	images   map[string]*StyleImage
	order    []string
}

func NewMemoryRegistry(maxItems int) *MemoryRegistry {
	return &MemoryRegistry{
		maxItems: maxItems,
		images:   make(map[string]*StyleImage),
	}
}

func (r *MemoryRegistry) AddImage(id string, img *StyleImage) error {
	if img == nil {
		return errorsx.Errorf("no image given for %q", id)
	}

	expectedLen := img.Width * img.Height * 4
	if len(img.Data) != expectedLen {
		return errorsx.Errorf("image %q has %d bytes of data, expected %d", id, len(img.Data), expectedLen)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.images[id]
	if !exists {
		if r.maxItems > 0 && len(r.order) >= r.maxItems {
			oldest := r.order[0]
			r.order = r.order[1:]
			delete(r.images, oldest)
		}
		r.order = append(r.order, id)
	}

	r.images[id] = img
	return nil
}

func (r *MemoryRegistry) HasImage(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.images[id]
	return ok
}

func (r *MemoryRegistry) GetImage(id string) (*StyleImage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	img, ok := r.images[id]
	return img, ok
}

func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.images)
}
