package backend

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/errors"
)

// deviceFile is the on-disk descriptor for a hotplugged device. Dropping
// such a file into the watched directory attaches the device; deleting
// the file detaches it.
type deviceFile struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Vendor  uint32 `yaml:"vendor"`
	Product uint32 `yaml:"product"`
	Buttons int    `yaml:"buttons"`
	Rings   int    `yaml:"rings"`
	Strips  int    `yaml:"strips"`
}

// ParseDeviceType maps the textual device type used in descriptor and
// scenario files to its DeviceType.
func ParseDeviceType(s string) (DeviceType, error) {
	switch s {
	case "keyboard":
		return DeviceKeyboard, nil
	case "pointer":
		return DevicePointer, nil
	case "tablet-pad":
		return DeviceTabletPad, nil
	case "tablet-tool":
		return DeviceTabletTool, nil
	case "touch":
		return DeviceTouch, nil
	case "switch":
		return DeviceSwitch, nil
	}
	return 0, errors.InvalidData("unknown device type %q", s)
}

// DevWatcher simulates hotplug by watching a directory of device
// descriptor files. It must run on the same goroutine that drives the
// Backend; Run blocks and applies changes as they arrive.
type DevWatcher struct {
	backend *Backend
	watcher *fsnotify.Watcher
	devices map[string]wlkit.NativeID
}

// NewDevWatcher starts watching dir. Descriptor files already present are
// attached immediately, before any watch events are processed.
func NewDevWatcher(b *Backend, dir string) (*DevWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	w := &DevWatcher{
		backend: b,
		watcher: fw,
		devices: make(map[string]wlkit.NativeID),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fw.Close()
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() {
			w.attach(filepath.Join(dir, e.Name()))
		}
	}
	return w, nil
}

// Run processes watch events until the context is canceled or the
// watcher is closed.
func (w *DevWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			Logger().Warn("device watch error", zap.Error(err))
		}
	}
}

// Close stops the watcher. Attached devices stay attached.
func (w *DevWatcher) Close() error {
	return w.watcher.Close()
}

func (w *DevWatcher) handle(ev fsnotify.Event) {
	switch {
	case ev.Op.Has(fsnotify.Create), ev.Op.Has(fsnotify.Write):
		w.attach(ev.Name)
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		w.detach(ev.Name)
	}
}

func (w *DevWatcher) attach(path string) {
	if _, ok := w.devices[path]; ok {
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		Logger().Warn("read device descriptor",
			zap.String("path", path), zap.Error(err))
		return
	}
	var df deviceFile
	if err := yaml.Unmarshal(raw, &df); err != nil {
		Logger().Warn("parse device descriptor",
			zap.String("path", path), zap.Error(err))
		return
	}
	typ, err := ParseDeviceType(df.Type)
	if err != nil {
		Logger().Warn("device descriptor",
			zap.String("path", path), zap.Error(err))
		return
	}
	name := df.Name
	if name == "" {
		name = filepath.Base(path)
	}
	obj, err := w.backend.CreateInput(InputState{
		Name:    name,
		Type:    typ,
		Vendor:  df.Vendor,
		Product: df.Product,
		Buttons: df.Buttons,
		Rings:   df.Rings,
		Strips:  df.Strips,
	})
	if err != nil {
		Logger().Warn("attach device",
			zap.String("path", path), zap.Error(err))
		return
	}
	w.devices[path] = obj.ID()
}

func (w *DevWatcher) detach(path string) {
	id, ok := w.devices[path]
	if !ok {
		return
	}
	delete(w.devices, path)
	if err := w.backend.Destroy(id); err != nil {
		Logger().Warn("detach device",
			zap.String("path", path), zap.Error(err))
	}
}
