package m3u8

/*
 This file defines the playlist base shared by master and media playlists:
 the owned tag lines and the lazily built caches over them.
*/

import (
	"bytes"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// cell holds one lazily computed cache entry.
type cell[V any] struct {
	once  sync.Once
	done  atomic.Bool
	value V
}

func (c *cell[V]) get(compute func() V) V {
	c.once.Do(func() {
		c.value = compute()
		c.done.Store(true)
	})
	return c.value
}

// cells maps keys to cells. The map lock is held only to find or create a
// cell, so computations for different keys run independently while
// concurrent callers of the same key wait for the single computation.
type cells[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*cell[V]
}

func (cs *cells[K, V]) cell(key K) *cell[V] {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.m == nil {
		cs.m = make(map[K]*cell[V])
	}
	c, ok := cs.m[key]
	if !ok {
		c = new(cell[V])
		cs.m[key] = c
	}
	return c
}

func (cs *cells[K, V]) get(key K, compute func() V) V {
	return cs.cell(key).get(compute)
}

// update replaces every computed value with fn(value). Cells still being
// computed are left alone, so callers must exclude computations while
// updating. Replacement cells are published whole so that
// readers holding the old cell keep a consistent value.
func (cs *cells[K, V]) update(fn func(V) V) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for key, c := range cs.m {
		if !c.done.Load() {
			continue
		}
		next := new(cell[V])
		v := fn(c.value)
		next.get(func() V { return v })
		cs.m[key] = next
	}
}

func (cs *cells[K, V]) forget(key K) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.m, key)
}

// playlist owns the tag lines of a decoded manifest.
type playlist struct {
	mu       sync.RWMutex // guards lines
	lines    []*TagLine
	registry *Registry
	logger   zerolog.Logger

	typed    cells[*TagLine, Tag]
	lists    cells[string, []Tag]
	segments cells[string, []*Segment]
}

func newPlaylist(lines []*TagLine, registry *Registry, logger zerolog.Logger) *playlist {
	return &playlist{
		lines:    lines,
		registry: registry,
		logger:   logger,
	}
}

// tagOf returns the typed tag of line, building it on first use.
// Unregistered names yield *Unknown; lines rejected by their constructor
// yield nil.
func (p *playlist) tagOf(line *TagLine) Tag {
	return p.typed.get(line, func() Tag {
		t, err := p.registry.construct(line)
		switch {
		case err == nil:
			return t
		case err == errNotRegistered:
			return newUnknown(line)
		default:
			p.logger.Debug().Err(err).Str("tag", line.Name).Str("line", line.Raw).
				Msg("tag has no typed representation")
			return nil
		}
	})
}

// Tags returns a snapshot of the tag lines in document order.
func (p *playlist) Tags() []*TagLine {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]*TagLine(nil), p.lines...)
}

// All returns every typed tag named name in document order. The list is
// built on first call and shared by later calls; it must not be modified.
// Lines that could not be typed are left out.
func (p *playlist) All(name string) []Tag {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lists.get(name, func() []Tag {
		var tags []Tag
		for _, line := range p.lines {
			if line.Name != name {
				continue
			}
			if t := p.tagOf(line); t != nil && t.Kind() != KindUnknown {
				tags = append(tags, t)
			}
		}
		return tags
	})
}

// One returns the last typed tag named name, or nil.
func (p *playlist) One(name string) Tag {
	tags := p.All(name)
	if len(tags) == 0 {
		return nil
	}
	return tags[len(tags)-1]
}

// Version returns the EXT-X-VERSION tag, or nil.
func (p *playlist) Version() *Version {
	v, _ := p.One(TagVersion).(*Version)
	return v
}

// removeLine deletes line from the playlist and from every cached list.
// Cached lists are computed under p.mu read lock, so none is in progress
// while the write lock is held.
func (p *playlist) removeLine(line *TagLine) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := -1
	for i, l := range p.lines {
		if l == line {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	p.lines = append(p.lines[:idx:idx], p.lines[idx+1:]...)
	p.lists.update(func(tags []Tag) []Tag {
		var kept []Tag
		for _, t := range tags {
			if t.Line() != line {
				kept = append(kept, t)
			}
		}
		return kept
	})
	p.typed.forget(line)
	return true
}

// String returns the playlist as text.
func (p *playlist) String() string {
	return p.Encode().String()
}

// Encode writes the tag lines back as text.
func (p *playlist) Encode() *bytes.Buffer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return encodeLines(p.lines)
}
