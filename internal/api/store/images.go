package store

import (
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// UploadPrefix is the path under which stored images are served.
const UploadPrefix = "/uploads/"

// Image is a stored upload.
type Image struct {
	ContentType string
	Data        []byte
}

// Images keeps uploaded product images in memory.
type Images struct {
	mu    sync.RWMutex
	files map[string]Image
}

func NewImages() *Images {
	return &Images{files: make(map[string]Image)}
}

// Put stores img under a generated name that keeps the original extension
// and returns the reference clients should use, e.g. /uploads/<id>.png.
func (s *Images) Put(filename string, img Image) string {
	name := uuid.NewString() + strings.ToLower(path.Ext(filename))

	s.mu.Lock()
	s.files[name] = img
	s.mu.Unlock()

	return UploadPrefix + name
}

func (s *Images) Get(name string) (Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.files[name]
	return img, ok
}
