package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/anima2d/engine/assets/loaders"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/resources"
)

var ErrClosed = errors.New("filesystem already closed")

type ResourceInfo struct {
	// logical path, always slash separated and rooted: "/sound/pew.ogg"
	Path     string
	FullPath string
	Type     resources.ResourceType
	LastSeen time.Time
	root     int
}

// Filesystem resolves logical resource paths against an ordered list of
// resource roots. The first root containing a file wins. Every root is
// watched so the index follows files created or removed while running.
type Filesystem struct {
	roots     []string
	resources map[string]ResourceInfo
	loaders   map[resources.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewFilesystem() (*Filesystem, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	f := &Filesystem{
		resources: make(map[string]ResourceInfo),
		loaders:   make(map[resources.ResourceType]Loader),
		fsnotify:  fsWatch,
		done:      make(chan struct{}),
	}

	// Register loaders
	f.RegisterLoader(resources.ResourceTypeImage, &loaders.ImageLoader{})
	f.RegisterLoader(resources.ResourceTypeSystemFont, &loaders.SystemFontLoader{})
	f.RegisterLoader(resources.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})
	f.RegisterLoader(resources.ResourceTypeText, &loaders.BinaryLoader{})
	f.RegisterLoader(resources.ResourceTypeBinary, &loaders.BinaryLoader{})
	f.RegisterLoader(resources.ResourceTypeConfig, &loaders.BinaryLoader{})

	f.wg.Add(1)
	go f.start()

	return f, nil
}

// Mount appends a resource root. A root that does not exist is skipped with
// a warning; one that exists but is not a directory is an error.
func (f *Filesystem) Mount(root string) error {
	f.mutex.RLock()
	closed := f.isClosed
	f.mutex.RUnlock()
	if closed {
		return ErrClosed
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	st, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("resource path %s does not exist, skipping", abs)
		return nil
	}
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("resource path %s is not a directory", abs)
	}

	f.mutex.Lock()
	f.roots = append(f.roots, abs)
	f.mutex.Unlock()

	if err := f.watchRecursive(abs); err != nil {
		return err
	}
	core.LogDebug("mounted resource path %s", abs)
	return nil
}

func (f *Filesystem) Roots() []string {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	out := make([]string, len(f.roots))
	copy(out, f.roots)
	return out
}

// Register loaders for each resource type
func (f *Filesystem) RegisterLoader(resourceType resources.ResourceType, loader Loader) {
	f.mutex.Lock()
	f.loaders[resourceType] = loader
	f.mutex.Unlock()
}

// Resolve maps a logical path to the file backing it.
func (f *Filesystem) Resolve(logical string) (string, error) {
	clean, err := cleanLogical(logical)
	if err != nil {
		return "", err
	}
	f.mutex.RLock()
	roots := f.roots
	f.mutex.RUnlock()
	for _, root := range roots {
		full := filepath.Join(root, filepath.FromSlash(clean))
		if st, err := os.Stat(full); err == nil && st.Mode().IsRegular() {
			return full, nil
		}
	}
	return "", fmt.Errorf("%w: %s not found in %d resource path(s): %w", core.ErrResourceLoad, clean, len(roots), fs.ErrNotExist)
}

func (f *Filesystem) Exists(logical string) bool {
	_, err := f.Resolve(logical)
	return err == nil
}

func (f *Filesystem) Open(logical string) (io.ReadCloser, error) {
	full, err := f.Resolve(logical)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrResourceLoad, err)
	}
	return file, nil
}

func (f *Filesystem) ReadFile(logical string) ([]byte, error) {
	full, err := f.Resolve(logical)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrResourceLoad, err)
	}
	return data, nil
}

// Load resolves the logical path and decodes it with the loader registered
// for its extension. Every failure wraps core.ErrResourceLoad.
func (f *Filesystem) Load(logical string, params interface{}) (*resources.Resource, error) {
	full, err := f.Resolve(logical)
	if err != nil {
		return nil, err
	}
	resourceType := determineResourceType(full)

	f.mutex.RLock()
	loader, exists := f.loaders[resourceType]
	f.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: no loader registered for %s (%s)", core.ErrResourceLoad, logical, resourceType)
	}

	res, err := loader.Load(full, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrResourceLoad, logical, err)
	}
	res.Name = path.Clean(logical)
	res.Type = resourceType
	return res, nil
}

// Resources lists the indexed resources sorted by logical path.
func (f *Filesystem) Resources() []ResourceInfo {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	out := make([]ResourceInfo, 0, len(f.resources))
	for _, info := range f.resources {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (f *Filesystem) Indexed(logical string) (ResourceInfo, bool) {
	clean, err := cleanLogical(logical)
	if err != nil {
		return ResourceInfo{}, false
	}
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	info, ok := f.resources[clean]
	return info, ok
}

func (f *Filesystem) Close() error {
	f.mutex.Lock()
	if f.isClosed {
		f.mutex.Unlock()
		return nil
	}
	f.isClosed = true
	f.mutex.Unlock()

	close(f.done)
	f.wg.Wait()
	return nil
}

func (f *Filesystem) start() {
	defer f.wg.Done()
	for {
		select {

		case e, ok := <-f.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op.Has(fsnotify.Create) {
					if err := f.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op.Has(fsnotify.Create) || e.Op.Has(fsnotify.Write) {
				f.handleFileEvent(e.Name)
			}
			// Can't stat a deleted file; drop it from the index and let a lower
			// priority root take over if it has one.
			if e.Op.Has(fsnotify.Remove) || e.Op.Has(fsnotify.Rename) {
				f.removeResource(e.Name)
			}

		case err, ok := <-f.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("resource watcher: %s", err)

		case <-f.done:
			f.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files found on the way.
func (f *Filesystem) watchRecursive(dir string) error {
	return filepath.WalkDir(dir, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return f.fsnotify.Add(walkPath)
		}
		f.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (f *Filesystem) handleFileEvent(full string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	rootIdx, logical, ok := f.logicalFor(full)
	if !ok {
		return
	}
	if existing, ok := f.resources[logical]; ok && existing.root < rootIdx {
		// shadowed by a higher priority root
		return
	}
	f.resources[logical] = ResourceInfo{
		Path:     logical,
		FullPath: full,
		Type:     determineResourceType(full),
		LastSeen: time.Now(),
		root:     rootIdx,
	}
}

// Remove the resource from the index if it was deleted
func (f *Filesystem) removeResource(full string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	_, logical, ok := f.logicalFor(full)
	if !ok {
		return
	}
	existing, ok := f.resources[logical]
	if !ok || existing.FullPath != full {
		return
	}
	delete(f.resources, logical)

	for i, root := range f.roots {
		if i <= existing.root {
			continue
		}
		candidate := filepath.Join(root, filepath.FromSlash(logical))
		if st, err := os.Stat(candidate); err == nil && st.Mode().IsRegular() {
			f.resources[logical] = ResourceInfo{
				Path:     logical,
				FullPath: candidate,
				Type:     determineResourceType(candidate),
				LastSeen: time.Now(),
				root:     i,
			}
			return
		}
	}
}

// logicalFor must be called with the mutex held.
func (f *Filesystem) logicalFor(full string) (int, string, bool) {
	for i, root := range f.roots {
		rel, err := filepath.Rel(root, full)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		return i, "/" + filepath.ToSlash(rel), true
	}
	return 0, "", false
}

func cleanLogical(logical string) (string, error) {
	if !strings.HasPrefix(logical, "/") {
		return "", fmt.Errorf("%w: resource path %q must start with /", core.ErrResourceLoad, logical)
	}
	for _, part := range strings.Split(logical, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: resource path %q escapes the resource roots", core.ErrResourceLoad, logical)
		}
	}
	return path.Clean(logical), nil
}

func determineResourceType(p string) resources.ResourceType {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tif", ".tiff":
		return resources.ResourceTypeImage
	case ".ttf", ".otf", ".ttc":
		return resources.ResourceTypeSystemFont
	case ".fnt":
		return resources.ResourceTypeBitmapFont
	case ".wav", ".ogg":
		return resources.ResourceTypeSound
	case ".toml":
		return resources.ResourceTypeConfig
	case ".txt", ".json", ".csv":
		return resources.ResourceTypeText
	default:
		return resources.ResourceTypeBinary
	}
}
