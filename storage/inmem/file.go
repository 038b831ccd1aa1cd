package inmemdb

import (
	"path"
	"strings"
)

const uploadsPrefix = "/uploads/"

// File is an uploaded cover photo or material.
type File struct {
	Name      string
	MediaType string
	Content   []byte
}

// SaveFile stores the content and returns the URL path it is served from.
func (db *DB) SaveFile(f File) string {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := uploadsPrefix + newID() + strings.ToLower(path.Ext(f.Name))
	db.files[p] = &f
	return p
}

func (db *DB) GetFile(urlPath string) (File, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	f, ok := db.files[urlPath]
	if !ok {
		return File{}, ErrNotFound
	}
	return *f, nil
}
