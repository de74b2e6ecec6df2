package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/rocketpartners/engine/assets/loaders"
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/resources"
	"github.com/spaghettifunk/rocketpartners/engine/systems"
)

/** @brief The asset manager configuration. */
type AssetManagerConfig struct {
	/** @brief Directory every asset source is relative to. */
	RootDir string
	/** @brief Number of workers used by FinishLoading. */
	Workers int
}

type AssetManager struct {
	rootDir string
	assets  map[string]*resources.Resource
	queue   []Asset
	loaders map[resources.ResourceType]Loader
	jobs    *systems.JobSystem

	mutex sync.RWMutex

	done      chan struct{}
	watchDone chan struct{}
	fsnotify  *fsnotify.Watcher
	isClosed  bool
	onReload  func(res *resources.Resource)
}

func NewAssetManager(config *AssetManagerConfig) (*AssetManager, error) {
	if config == nil || config.RootDir == "" {
		err := fmt.Errorf("func NewAssetManager - config.RootDir must be set")
		core.LogError("%s", err)
		return nil, err
	}
	workers := config.Workers
	if workers <= 0 {
		workers = 1
	}
	js, err := systems.NewJobSystem(workers, workers*2)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	am := &AssetManager{
		rootDir: config.RootDir,
		assets:  make(map[string]*resources.Resource),
		loaders: make(map[resources.ResourceType]Loader),
		jobs:    js,
		done:    make(chan struct{}),
	}

	// Register loaders
	am.RegisterLoader(resources.ResourceTypeImage, &loaders.ImageLoader{})
	am.RegisterLoader(resources.ResourceTypeTextureAtlas, &loaders.TextureAtlasLoader{})
	am.RegisterLoader(resources.ResourceTypeSound, &loaders.AudioLoader{})
	am.RegisterLoader(resources.ResourceTypeMusic, &loaders.AudioLoader{})
	am.RegisterLoader(resources.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})
	am.RegisterLoader(resources.ResourceTypeSystemFont, &loaders.SystemFontLoader{})

	return am, nil
}

// Register loaders for each asset type
func (am *AssetManager) RegisterLoader(resourceType resources.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[resourceType] = loader
}

// Load queues the asset for the next FinishLoading. Loaded or already queued
// assets are ignored.
func (am *AssetManager) Load(asset Asset) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if _, ok := am.assets[asset.Source()]; ok {
		return
	}
	for _, q := range am.queue {
		if q.Source() == asset.Source() {
			return
		}
	}
	am.queue = append(am.queue, asset)
}

// LoadAll queues every asset of the list.
func (am *AssetManager) LoadAll(assets []Asset) {
	for _, a := range assets {
		am.Load(a)
	}
}

// Progress returns the loaded fraction of the known assets, 1 when nothing is queued.
func (am *AssetManager) Progress() float32 {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	total := len(am.assets) + len(am.queue)
	if total == 0 {
		return 1
	}
	return float32(len(am.assets)) / float32(total)
}

// FinishLoading loads every queued asset on the job system and blocks until
// all of them are done. Every failure is reported in the returned error.
func (am *AssetManager) FinishLoading() error {
	am.mutex.Lock()
	queue := am.queue
	am.queue = nil
	am.mutex.Unlock()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, asset := range queue {
		asset := asset
		wg.Add(1)
		err := am.jobs.Submit(systems.JobTask{
			InputParams: asset,
			OnStart: func(params interface{}) (interface{}, error) {
				return am.loadAsset(params.(Asset))
			},
			OnComplete: func(result interface{}) {
				res := result.(*resources.Resource)
				am.mutex.Lock()
				am.assets[res.Name] = res
				am.mutex.Unlock()
				core.LogDebug("asset '%s' loaded", res.Name)
			},
			OnFailure: func(err error) {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (am *AssetManager) loadAsset(asset Asset) (*resources.Resource, error) {
	am.mutex.RLock()
	loader, ok := am.loaders[asset.Type()]
	am.mutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("asset '%s' of type %s: %w", asset.Source(), asset.Type(), core.ErrNoLoader)
	}

	path := am.FullPath(asset.Source())
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("asset '%s': %w", asset.Source(), errors.Join(core.ErrAssetNotFound, err))
	}

	res, err := loader.Load(path, asset.Type(), nil)
	if err != nil {
		return nil, fmt.Errorf("asset '%s': %w", asset.Source(), err)
	}
	res.Name = asset.Source()
	res.Type = asset.Type()
	res.LoadedAt = time.Now()
	return res, nil
}

// FullPath resolves a source against the assets root.
func (am *AssetManager) FullPath(source string) string {
	return filepath.Join(am.rootDir, filepath.FromSlash(source))
}

func (am *AssetManager) IsLoaded(source string) bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	_, ok := am.assets[source]
	return ok
}

// Get returns the loaded resource for the given source.
func (am *AssetManager) Get(source string) (*resources.Resource, error) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	res, ok := am.assets[source]
	if !ok {
		return nil, fmt.Errorf("asset '%s': %w", source, core.ErrAssetNotLoaded)
	}
	return res, nil
}

// GetAs returns the data of a loaded resource cast to T.
func GetAs[T any](am *AssetManager, source string) (T, error) {
	var zero T
	res, err := am.Get(source)
	if err != nil {
		return zero, err
	}
	data, ok := res.Data.(T)
	if !ok {
		return zero, fmt.Errorf("asset '%s' holds %T, not %T: %w", source, res.Data, zero, core.ErrUnexpectedData)
	}
	return data, nil
}

// Unload releases a loaded resource through its loader.
func (am *AssetManager) Unload(source string) error {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	res, ok := am.assets[source]
	if !ok {
		return fmt.Errorf("asset '%s': %w", source, core.ErrAssetNotLoaded)
	}
	delete(am.assets, source)
	if loader, ok := am.loaders[res.Type]; ok {
		return loader.Unload(res)
	}
	return nil
}

// SetReloadHandler is called, from the watcher goroutine, after an asset was
// reloaded because its file changed.
func (am *AssetManager) SetReloadHandler(fn func(res *resources.Resource)) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.onReload = fn
}

// Watch starts reloading loaded assets whenever their file is written.
func (am *AssetManager) Watch() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	if am.fsnotify != nil {
		return nil
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	am.fsnotify = fsWatch
	if err := am.watchRecursive(am.rootDir); err != nil {
		am.fsnotify.Close()
		am.fsnotify = nil
		return err
	}
	am.watchDone = make(chan struct{})
	go am.start(fsWatch, am.watchDone)
	return nil
}

func (am *AssetManager) start(watcher *fsnotify.Watcher, finished chan struct{}) {
	defer close(finished)
	for {
		select {

		case e, ok := <-watcher.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.mutex.Lock()
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("unable to watch '%s': %s", e.Name, err)
					}
					am.mutex.Unlock()
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				core.LogWarn("asset file '%s' removed, keeping the loaded copy", e.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-am.done:
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	rel, err := filepath.Rel(am.rootDir, path)
	if err != nil {
		return
	}
	source := filepath.ToSlash(rel)

	am.mutex.RLock()
	old, ok := am.assets[source]
	onReload := am.onReload
	am.mutex.RUnlock()
	if !ok {
		return
	}

	res, err := am.loadAsset(resourceAsset{source: source, resourceType: old.Type})
	if err != nil {
		// a writer may still hold the file, the next write event retries
		core.LogWarn("reload of '%s' failed: %s", source, err)
		return
	}

	am.mutex.Lock()
	am.assets[source] = res
	am.mutex.Unlock()
	core.LogInfo("asset '%s' reloaded", source)

	if onReload != nil {
		onReload(res)
	}
}

// Shutdown stops the watcher and the loading workers.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	close(am.done)
	watcher, finished := am.fsnotify, am.watchDone
	am.mutex.Unlock()

	var err error
	if watcher != nil {
		<-finished
		err = watcher.Close()
	}
	return errors.Join(err, am.jobs.Shutdown())
}

type resourceAsset struct {
	source       string
	resourceType resources.ResourceType
}

func (a resourceAsset) Source() string               { return a.source }
func (a resourceAsset) Type() resources.ResourceType { return a.resourceType }
