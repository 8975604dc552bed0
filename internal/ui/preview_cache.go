package ui

import (
	"container/list"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gioui.org/op/paint"
	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/justyntemme/tabdeck/internal/debug"
)

// previewExts lists the file types a drag preview can be made of
var previewExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".webp": true,
}

// Previewable reports whether path can have a drag preview
func Previewable(path string) bool {
	return previewExts[strings.ToLower(filepath.Ext(path))]
}

// PreviewCache provides an LRU cache of downscaled drag previews for tabs
// showing image files.
type PreviewCache struct {
	mu        sync.RWMutex
	cache     map[string]*previewEntry // path -> entry
	lru       *list.List               // LRU list (front = most recent)
	maxSize   int                      // Maximum number of entries
	maxPixels int                      // Maximum preview dimension (width or height)

	// OnLoad is called from the loader goroutine after a preview is cached
	OnLoad func(path string)

	// Pending load requests
	pendingMu sync.Mutex
	pending   map[string]bool // Paths currently being loaded
	loadChan  chan string     // Channel for load requests
	stopChan  chan struct{}   // Channel to stop the loader
	stopOnce  sync.Once
}

type previewEntry struct {
	path    string
	preview paint.ImageOp
	size    image.Point // Scaled dimensions
	element *list.Element
}

// NewPreviewCache creates a new preview cache holding at most maxEntries
// previews no larger than maxPixels on either side.
func NewPreviewCache(maxEntries, maxPixels int) *PreviewCache {
	pc := &PreviewCache{
		cache:     make(map[string]*previewEntry),
		lru:       list.New(),
		maxSize:   maxEntries,
		maxPixels: maxPixels,
		pending:   make(map[string]bool),
		loadChan:  make(chan string, 32),
		stopChan:  make(chan struct{}),
	}
	go pc.backgroundLoader()
	return pc
}

// Get retrieves a preview and its size from the cache
func (pc *PreviewCache) Get(path string) (paint.ImageOp, image.Point, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	entry, ok := pc.cache[path]
	if !ok {
		return paint.ImageOp{}, image.Point{}, false
	}
	pc.lru.MoveToFront(entry.element)
	return entry.preview, entry.size, true
}

// RequestLoad queues a path for background loading. Does nothing if the
// path is not an image, already cached or being loaded.
func (pc *PreviewCache) RequestLoad(path string) {
	if !Previewable(path) {
		return
	}
	pc.mu.RLock()
	_, cached := pc.cache[path]
	pc.mu.RUnlock()
	if cached {
		return
	}

	pc.pendingMu.Lock()
	if pc.pending[path] {
		pc.pendingMu.Unlock()
		return
	}
	pc.pending[path] = true
	pc.pendingMu.Unlock()

	// Queue for loading (non-blocking)
	select {
	case pc.loadChan <- path:
	default:
		// Channel full, drop this request
		pc.pendingMu.Lock()
		delete(pc.pending, path)
		pc.pendingMu.Unlock()
	}
}

// Stop shuts down the background loader
func (pc *PreviewCache) Stop() {
	pc.stopOnce.Do(func() { close(pc.stopChan) })
}

func (pc *PreviewCache) backgroundLoader() {
	for {
		select {
		case <-pc.stopChan:
			return
		case path := <-pc.loadChan:
			if pc.load(path) && pc.OnLoad != nil {
				pc.OnLoad(path)
			}
		}
	}
}

// load decodes, scales and caches the preview for path
func (pc *PreviewCache) load(path string) bool {
	defer func() {
		pc.pendingMu.Lock()
		delete(pc.pending, path)
		pc.pendingMu.Unlock()
	}()

	file, err := os.Open(path)
	if err != nil {
		debug.Log(debug.UI, "PreviewCache: failed to open %s: %v", path, err)
		return false
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		debug.Log(debug.UI, "PreviewCache: failed to decode %s: %v", path, err)
		return false
	}

	scaled := scaleToFit(img, pc.maxPixels)
	pc.put(path, paint.NewImageOp(scaled), scaled.Bounds().Size())
	debug.Log(debug.UI, "PreviewCache: cached %s (%dx%d)", path, scaled.Bounds().Dx(), scaled.Bounds().Dy())
	return true
}

// scaleToFit scales src down so neither side exceeds maxPixels
func scaleToFit(src image.Image, maxPixels int) image.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxPixels && height <= maxPixels {
		return src
	}

	var scale float64
	if width > height {
		scale = float64(maxPixels) / float64(width)
	} else {
		scale = float64(maxPixels) / float64(height)
	}
	newWidth := max(1, int(float64(width)*scale))
	newHeight := max(1, int(float64(height)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// put adds a preview to the cache, evicting old entries if necessary
func (pc *PreviewCache) put(path string, preview paint.ImageOp, size image.Point) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if entry, ok := pc.cache[path]; ok {
		entry.preview = preview
		entry.size = size
		pc.lru.MoveToFront(entry.element)
		return
	}

	for pc.lru.Len() >= pc.maxSize {
		oldest := pc.lru.Back()
		if oldest == nil {
			break
		}
		old := oldest.Value.(*previewEntry)
		delete(pc.cache, old.path)
		pc.lru.Remove(oldest)
		debug.Log(debug.UI, "PreviewCache: evicted %s", old.path)
	}

	entry := &previewEntry{path: path, preview: preview, size: size}
	entry.element = pc.lru.PushFront(entry)
	pc.cache[path] = entry
}

// Size returns the current number of cached previews
func (pc *PreviewCache) Size() int {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return len(pc.cache)
}
