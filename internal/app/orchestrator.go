package app

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gioui.org/app"
	"gioui.org/io/system"
	"github.com/google/uuid"

	"github.com/justyntemme/tabdeck/internal/config"
	"github.com/justyntemme/tabdeck/internal/debug"
	"github.com/justyntemme/tabdeck/internal/store"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

// focusedWindowKey is the settings key remembering the last focused window
const focusedWindowKey = "focused_window"

// Orchestrator owns the process-wide services and every open window. Each
// window runs its own event loop goroutine and only touches its own strip.
type Orchestrator struct {
	config  *config.Manager
	watcher *config.Watcher
	store   *store.DB
	debug   bool

	persist   bool          // false when the session database could not be opened
	storeDone chan struct{} // closed when the store worker exits
	done      chan struct{}

	mu      sync.Mutex
	windows map[string]*Window
	wg      sync.WaitGroup
}

func NewOrchestrator(debug bool) *Orchestrator {
	return &Orchestrator{
		config:    config.NewManager(),
		store:     store.NewDB(),
		debug:     debug,
		storeDone: make(chan struct{}),
		done:      make(chan struct{}),
		windows:   make(map[string]*Window),
	}
}

// Run restores or creates the windows and blocks until the last one closes
func (o *Orchestrator) Run(startPath string) error {
	if o.debug {
		log.Println("Starting tabdeck in DEBUG mode")
	}
	defer close(o.done)

	if err := o.config.Load(); err != nil {
		log.Printf("Failed to load config: %v", err)
	}
	if err := o.config.ParseError(); err != nil {
		log.Printf("Config error, using defaults: %v", err)
	}
	cfg := o.config.Get()

	// Init DB
	if err := o.store.Open(store.DefaultPath()); err != nil {
		log.Printf("Failed to open DB: %v", err)
	} else {
		o.persist = true
	}
	go func() {
		o.store.Start()
		close(o.storeDone)
	}()

	// Restore before the response loop starts so replies can be read inline
	var sessions []*store.Session
	focused := ""
	if o.persist {
		sessions = o.loadSessions(cfg.Tabs.RestoreOnStart)
		focused = o.fetchSetting(focusedWindowKey)
	}
	go o.processEvents()

	if w, err := config.NewWatcher(o.config, 0); err != nil {
		log.Printf("Config hot reload disabled: %v", err)
	} else {
		o.watcher = w
		go o.watchConfig()
	}

	var opened []*Window
	for _, s := range sessions {
		col, err := restore(s)
		if err != nil {
			log.Printf("Skipping saved window: %v", err)
			o.send(store.Request{Op: store.DeleteSession, Window: s.Window})
			continue
		}
		if col.Len() == 0 {
			continue
		}
		if startPath != "" && len(opened) == 0 {
			t := newTab(startPath)
			col.Insert(col.Len(), t)
			col.SetActive(t.ID)
			startPath = ""
		}
		opened = append(opened, o.openWindow(s.Window, col))
	}
	if len(opened) == 0 {
		if startPath == "" {
			startPath = o.defaultPath()
		}
		t := newTab(startPath)
		col := tabstrip.NewCollection(t)
		col.SetActive(t.ID)
		o.openWindow(uuid.NewString(), col)
	}
	for _, w := range opened {
		if w.id == focused {
			w.window.Perform(system.ActionRaise)
		}
	}

	o.wg.Wait()
	debug.Log(debug.APP, "Last window closed")

	if o.watcher != nil {
		o.watcher.Close()
	}
	close(o.store.RequestChan)
	<-o.storeDone
	o.store.Close()
	return nil
}

// loadSessions reads every saved window in creation order. When restoring
// is disabled the saved windows are discarded instead.
func (o *Orchestrator) loadSessions(restore bool) []*store.Session {
	o.store.RequestChan <- store.Request{Op: store.ListSessions}
	resp := <-o.store.ResponseChan
	if resp.Err != nil {
		log.Printf("Store Error: %v", resp.Err)
		return nil
	}

	var out []*store.Session
	for _, id := range resp.Windows {
		if !restore {
			o.store.RequestChan <- store.Request{Op: store.DeleteSession, Window: id}
			if r := <-o.store.ResponseChan; r.Err != nil {
				log.Printf("Store Error: %v", r.Err)
			}
			continue
		}
		o.store.RequestChan <- store.Request{Op: store.LoadSession, Window: id}
		r := <-o.store.ResponseChan
		if r.Err != nil {
			if !errors.Is(r.Err, store.ErrNoSession) {
				log.Printf("Store Error: %v", r.Err)
			}
			continue
		}
		out = append(out, r.Session)
	}
	debug.Log(debug.STORE, "Loaded %d saved windows", len(out))
	return out
}

func (o *Orchestrator) fetchSetting(key string) string {
	o.store.RequestChan <- store.Request{Op: store.FetchSettings}
	resp := <-o.store.ResponseChan
	if resp.Err != nil {
		log.Printf("Store Error: %v", resp.Err)
		return ""
	}
	return resp.Settings[key]
}

// send queues a store request. It is a no-op without a database.
func (o *Orchestrator) send(req store.Request) {
	if !o.persist {
		return
	}
	o.store.RequestChan <- req
}

func (o *Orchestrator) processEvents() {
	for {
		select {
		case resp, ok := <-o.store.ResponseChan:
			if !ok {
				return
			}
			o.handleStoreResponse(resp)
		case <-o.storeDone:
			return
		}
	}
}

func (o *Orchestrator) handleStoreResponse(resp store.Response) {
	if resp.Err != nil {
		log.Printf("Store Error: %v", resp.Err)
		return
	}
	debug.Log(debug.STORE, "%s done window=%s", resp.Op, resp.Window)
}

// watchConfig hands reloaded configurations to every window
func (o *Orchestrator) watchConfig() {
	for {
		select {
		case cfg := <-o.watcher.Changes():
			o.pushConfig(cfg)
		case <-o.done:
			return
		}
	}
}

// broadcastConfig hands the current configuration to every window after a
// setting changed from the UI
func (o *Orchestrator) broadcastConfig() {
	o.pushConfig(o.config.Get())
}

func (o *Orchestrator) pushConfig(cfg config.Config) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, w := range o.windows {
		w.pushConfig(cfg)
	}
}

// openWindow shows col in a new window and starts its event loop
func (o *Orchestrator) openWindow(id string, col *tabstrip.Collection) *Window {
	w := newWindow(o, id, col)

	o.mu.Lock()
	o.windows[id] = w
	o.mu.Unlock()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		if err := w.run(); err != nil {
			log.Printf("Window %s: %v", id, err)
		}
		o.closeWindow(w)
	}()
	w.save()
	debug.Log(debug.APP, "Opened window %s with %d items", id, col.Len())
	return w
}

// closeWindow forgets a closed window. The last window's session is kept
// so the next start can restore it.
func (o *Orchestrator) closeWindow(w *Window) {
	o.mu.Lock()
	delete(o.windows, w.id)
	remaining := len(o.windows)
	o.mu.Unlock()

	w.close()
	if remaining > 0 || w.tabCount() == 0 {
		o.send(store.Request{Op: store.DeleteSession, Window: w.id})
	}
	debug.Log(debug.APP, "Closed window %s (%d left)", w.id, remaining)
}

// defaultPath is where new tabs point: the configured path, else home
func (o *Orchestrator) defaultPath() string {
	if p := o.config.Get().Tabs.DefaultPath; p != "" {
		return p
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	wd, _ := os.Getwd()
	return wd
}

// newTab creates a tab for path with a fresh ID
func newTab(path string) tabstrip.Tab {
	return tabstrip.Tab{ID: uuid.NewString(), Title: titleFor(path), Path: path}
}

func titleFor(path string) string {
	title := filepath.Base(path)
	if title == "" || title == "/" || title == "." {
		title = path
	}
	return title
}

func Main(debug bool, startPath string) {
	go func() {
		o := NewOrchestrator(debug)
		if err := o.Run(startPath); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
