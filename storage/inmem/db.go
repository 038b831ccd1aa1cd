// Package inmemdb holds the state of the development backend in memory.
package inmemdb

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/educonnect/core/class"
	"github.com/trezcool/educonnect/core/extension"
	"github.com/trezcool/educonnect/core/feewaiver"
	"github.com/trezcool/educonnect/core/material"
)

var (
	ErrNotFound = errors.New("not found")

	NowFunc = time.Now // mockable
)

type DB struct {
	mu         sync.RWMutex
	classes    map[string]*class.Class
	materials  map[string]*material.Material
	feeWaivers map[string]*feewaiver.Request
	extensions map[string]*extension.Request // by request ID
	files      map[string]*File              // by URL path
}

func Open() *DB {
	return &DB{
		classes:    make(map[string]*class.Class),
		materials:  make(map[string]*material.Material),
		feeWaivers: make(map[string]*feewaiver.Request),
		extensions: make(map[string]*extension.Request),
		files:      make(map[string]*File),
	}
}

func newID() string {
	return uuid.New().String()
}
