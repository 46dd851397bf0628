package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const watchTimeout = 5 * time.Second

func writeDescriptor(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
	return path
}

const padDescriptor = `
name: wacom-pad
type: tablet-pad
vendor: 1386
product: 209
buttons: 8
rings: 1
`

func TestDevWatcher_AttachesExistingDescriptors(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "pad.yaml", padDescriptor)

	b := New()
	w, err := NewDevWatcher(b, dir)
	if err != nil {
		t.Fatalf("NewDevWatcher failed: %v", err)
	}
	defer w.Close()

	obj, ok := b.Lookup("wacom-pad")
	if !ok {
		t.Fatal("pre-existing descriptor not attached")
	}
	in := obj.Input()
	if in.Type != DeviceTabletPad || in.Buttons != 8 || in.Rings != 1 {
		t.Fatalf("descriptor fields lost: %+v", in)
	}
}

func TestDevWatcher_HotplugRoundTrip(t *testing.T) {
	dir := t.TempDir()
	b := New()
	w, err := NewDevWatcher(b, dir)
	if err != nil {
		t.Fatalf("NewDevWatcher failed: %v", err)
	}
	defer w.Close()

	attached := make(chan *Object, 1)
	detached := make(chan struct{}, 1)
	b.OnNewInput().Add(func(data any) {
		obj := data.(*Object)
		// Subscribed here so it runs on the watcher goroutine.
		obj.On(EventDestroy).Add(func(any) {
			detached <- struct{}{}
		})
		attached <- obj
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	path := writeDescriptor(t, dir, "pad.yaml", padDescriptor)

	select {
	case <-attached:
	case <-time.After(watchTimeout):
		t.Fatal("device was not attached after descriptor appeared")
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove descriptor: %v", err)
	}

	select {
	case <-detached:
	case <-time.After(watchTimeout):
		t.Fatal("device was not detached after descriptor disappeared")
	}
}

func TestDevWatcher_IgnoresMalformedDescriptors(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "broken.yaml", "::not yaml::\n\t")
	writeDescriptor(t, dir, "unknown.yaml", "name: x\ntype: joystick\n")
	writeDescriptor(t, dir, "good.yaml", "name: trackball\ntype: pointer\n")

	b := New()
	w, err := NewDevWatcher(b, dir)
	if err != nil {
		t.Fatalf("NewDevWatcher failed: %v", err)
	}
	defer w.Close()

	if b.Len() != 1 {
		t.Fatalf("attached %d devices, want 1", b.Len())
	}
	if _, ok := b.Lookup("trackball"); !ok {
		t.Fatal("valid descriptor skipped")
	}
}

func TestParseDeviceType(t *testing.T) {
	tests := []struct {
		in   string
		want DeviceType
		ok   bool
	}{
		{"keyboard", DeviceKeyboard, true},
		{"pointer", DevicePointer, true},
		{"tablet-pad", DeviceTabletPad, true},
		{"tablet-tool", DeviceTabletTool, true},
		{"touch", DeviceTouch, true},
		{"switch", DeviceSwitch, true},
		{"joystick", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseDeviceType(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Fatalf("ParseDeviceType(%q) = %v, %v", tt.in, got, err)
		}
		if !tt.ok && err == nil {
			t.Fatalf("ParseDeviceType(%q) should fail", tt.in)
		}
	}
}
