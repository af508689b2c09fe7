package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"addinlint/internal/diag"
	"addinlint/internal/source"
)

// Bump when the payload layout changes; older entries become misses.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores analysis results keyed by snapshot hash, so re-running the
// linter over an unchanged program skips the rule engine entirely.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type noteRecord struct {
	Path  string
	Start uint32
	End   uint32
	Msg   string
}

type diagRecord struct {
	Code     uint16
	Severity uint8
	Message  string
	Path     string
	Start    uint32
	End      uint32
	Notes    []noteRecord
}

// diskPayload is the serialized form of one snapshot's diagnostics. Fixes are
// not cached: they are cheap to re-synthesize and depend on live file content.
type diskPayload struct {
	Schema uint16

	// Hashes of the source files the spans point into. A mismatch on read
	// means the sources changed under an unchanged snapshot, so the cached
	// offsets cannot be trusted.
	FilePaths  []string
	FileHashes [][32]byte

	Diags []diagRecord
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory; tests use it
// to stay inside t.TempDir().
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "results", hexKey+".mp")
}

// Put serializes the bag and writes it atomically under the snapshot key.
func (c *DiskCache) Put(key [32]byte, bag *diag.Bag, fs *source.FileSet) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := payloadFromBag(bag, fs)

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the cached bag for a snapshot key and rebinds its spans to the
// given FileSet. Any staleness (schema bump, missing file, changed file hash)
// is reported as a miss, never an error.
func (c *DiskCache) Get(key [32]byte, fs *source.FileSet) (*diag.Bag, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, nil
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	if len(payload.FilePaths) != len(payload.FileHashes) {
		return nil, false, nil
	}
	for i, path := range payload.FilePaths {
		file, ok := fs.GetByPath(path)
		if !ok || file.Hash != payload.FileHashes[i] {
			return nil, false, nil
		}
	}

	bag, ok := bagFromPayload(&payload, fs)
	if !ok {
		return nil, false, nil
	}
	return bag, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func payloadFromBag(bag *diag.Bag, fs *source.FileSet) *diskPayload {
	payload := &diskPayload{Schema: diskCacheSchemaVersion}

	seenFiles := make(map[string]bool)
	pathOf := func(sp source.Span) string {
		f := fs.Get(sp.File)
		if f == nil {
			return ""
		}
		if !seenFiles[f.Path] {
			seenFiles[f.Path] = true
			payload.FilePaths = append(payload.FilePaths, f.Path)
			payload.FileHashes = append(payload.FileHashes, f.Hash)
		}
		return f.Path
	}

	for _, d := range bag.Items() {
		rec := diagRecord{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Message:  d.Message,
			Path:     pathOf(d.Primary),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			rec.Notes = append(rec.Notes, noteRecord{
				Path:  pathOf(n.Span),
				Start: n.Span.Start,
				End:   n.Span.End,
				Msg:   n.Msg,
			})
		}
		payload.Diags = append(payload.Diags, rec)
	}
	return payload
}

func bagFromPayload(payload *diskPayload, fs *source.FileSet) (*diag.Bag, bool) {
	spanFor := func(path string, start, end uint32) (source.Span, bool) {
		file, ok := fs.GetByPath(path)
		if !ok {
			return source.Span{}, false
		}
		return source.Span{File: file.ID, Start: start, End: end}, true
	}

	bag := diag.NewBag(len(payload.Diags))
	for _, rec := range payload.Diags {
		primary, ok := spanFor(rec.Path, rec.Start, rec.End)
		if !ok {
			return nil, false
		}
		d := diag.Diagnostic{
			Severity: diag.Severity(rec.Severity),
			Code:     diag.Code(rec.Code),
			Message:  rec.Message,
			Primary:  primary,
		}
		for _, n := range rec.Notes {
			sp, ok := spanFor(n.Path, n.Start, n.End)
			if !ok {
				return nil, false
			}
			d.Notes = append(d.Notes, diag.Note{Span: sp, Msg: n.Msg})
		}
		bag.Add(d)
	}
	return bag, true
}
