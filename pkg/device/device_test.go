package device_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/device"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// fakeBackend records effect calls and mints sequential ids.
type fakeBackend struct {
	creates []createCall
	sets    []effect.ID
	deletes []effect.ID

	createErr error
}

type createCall struct {
	category effect.Category
	kind     effect.Kind
	payload  any
}

func (f *fakeBackend) Initialize(context.Context, backend.AppInfo) error { return nil }
func (f *fakeBackend) Uninitialize(context.Context) error               { return nil }
func (f *fakeBackend) Close() error                                     { return nil }

func (f *fakeBackend) CreateEffect(_ context.Context, category effect.Category, kind effect.Kind, payload any) (effect.ID, error) {
	if f.createErr != nil {
		return effect.Nil, f.createErr
	}
	f.creates = append(f.creates, createCall{category, kind, payload})
	return effect.ID(uuid.New()), nil
}

func (f *fakeBackend) SetEffect(_ context.Context, id effect.ID) error {
	f.sets = append(f.sets, id)
	return nil
}

func (f *fakeBackend) DeleteEffect(_ context.Context, id effect.ID) error {
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeBackend) QueryDevice(context.Context, uuid.UUID) (backend.DeviceInfo, error) {
	return backend.DeviceInfo{}, backend.ErrUnsupportedOperation
}

func (f *fakeBackend) RegisterEventNotifications(uintptr) error { return nil }
func (f *fakeBackend) UnregisterEventNotifications() error      { return nil }
func (f *fakeBackend) Supports(backend.Operation) bool          { return true }

func (f *fakeBackend) lastCreate(t *testing.T) createCall {
	t.Helper()
	if len(f.creates) == 0 {
		t.Fatal("no create-effect call recorded")
	}
	return f.creates[len(f.creates)-1]
}

func TestSetEffectTracksCurrent(t *testing.T) {
	fb := &fakeBackend{}
	dir := device.NewDirectory(fb, device.DirectoryConfig{})

	kb := dir.Keyboard()
	if !kb.CurrentEffect().IsZero() {
		t.Error("fresh device should have no current effect")
	}

	id, err := kb.SetStatic(context.Background(), effect.Red)
	if err != nil {
		t.Fatalf("SetStatic failed: %v", err)
	}
	if kb.CurrentEffect() != id {
		t.Errorf("CurrentEffect = %v, want %v", kb.CurrentEffect(), id)
	}

	call := fb.lastCreate(t)
	if call.category != effect.CategoryKeyboard || call.kind != effect.KindStatic {
		t.Errorf("create call = %v/%v", call.category, call.kind)
	}
	if params, ok := call.payload.(effect.StaticParams); !ok || params.Color != effect.Red {
		t.Errorf("payload = %#v, want static red", call.payload)
	}
}

func TestSetEffectFailureKeepsCurrent(t *testing.T) {
	fb := &fakeBackend{}
	dir := device.NewDirectory(fb, device.DirectoryConfig{})
	mouse := dir.Mouse()

	id, err := mouse.SetAll(context.Background(), effect.Green)
	if err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}

	fb.createErr = &backend.CallError{Endpoint: "/mouse", Op: backend.OpCreateEffect, HTTPStatus: 500}
	if _, err := mouse.SetAll(context.Background(), effect.Blue); err == nil {
		t.Fatal("expected create failure to surface")
	}
	if mouse.CurrentEffect() != id {
		t.Error("a failed create must not replace the current effect")
	}
}

func TestClearIsNoneKind(t *testing.T) {
	fb := &fakeBackend{}
	dir := device.NewDirectory(fb, device.DirectoryConfig{})

	// Clear must be observably equivalent to setting the None kind on every
	// category.
	devices := []interface {
		Clear(context.Context) error
		CurrentEffect() effect.ID
	}{
		dir.Keyboard(), dir.Mouse(), dir.Mousepad(), dir.Headset(), dir.Keypad(), dir.Link(),
	}

	for _, d := range devices {
		before := len(fb.creates)
		if err := d.Clear(context.Background()); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		if len(fb.creates) != before+1 {
			t.Fatalf("Clear issued %d create calls, want 1", len(fb.creates)-before)
		}
		call := fb.creates[len(fb.creates)-1]
		if call.kind != effect.KindNone {
			t.Errorf("Clear kind = %v, want %v", call.kind, effect.KindNone)
		}
		if call.payload != nil {
			t.Errorf("Clear payload = %#v, want nil", call.payload)
		}
		if d.CurrentEffect().IsZero() {
			t.Error("Clear should still track the backend-minted effect id")
		}
	}
}

func TestApplyAndDelete(t *testing.T) {
	fb := &fakeBackend{}
	dir := device.NewDirectory(fb, device.DirectoryConfig{})
	hs := dir.Headset()

	id, err := hs.SetStatic(context.Background(), effect.White)
	if err != nil {
		t.Fatalf("SetStatic failed: %v", err)
	}

	if err := hs.Apply(context.Background(), id); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(fb.sets) != 1 || fb.sets[0] != id {
		t.Errorf("sets = %v, want [%v]", fb.sets, id)
	}

	if err := hs.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !hs.CurrentEffect().IsZero() {
		t.Error("deleting the current effect should reset bookkeeping")
	}
}

func TestGenericRefusesSetAll(t *testing.T) {
	fb := &fakeBackend{}
	catalog := device.NewCatalog([]device.CatalogEntry{{ID: uuid.MustParse("9D24B0AB-0162-466C-9640-7A924AA4D9FD"), Name: "led-strip"}})
	dir := device.NewDirectory(fb, device.DirectoryConfig{Catalog: catalog})

	g, err := dir.Generic(uuid.MustParse("9D24B0AB-0162-466C-9640-7A924AA4D9FD"))
	if err != nil {
		t.Fatalf("Generic failed: %v", err)
	}

	before := len(fb.creates)
	_, err = g.SetAll(context.Background(), effect.Red)
	if !errors.Is(err, backend.ErrUnsupportedOperation) {
		t.Errorf("SetAll = %v, want ErrUnsupportedOperation", err)
	}
	if len(fb.creates) != before {
		t.Error("refused SetAll must not reach the backend")
	}

	// Raw effect submission is still available.
	if _, err := g.SetEffect(context.Background(), effect.KindStatic, effect.StaticParams{Color: effect.Red}); err != nil {
		t.Errorf("SetEffect failed: %v", err)
	}
}

func TestLinkIndexedWrites(t *testing.T) {
	fb := &fakeBackend{}
	dir := device.NewDirectory(fb, device.DirectoryConfig{})
	link := dir.Link()

	before := len(fb.creates)
	if _, err := link.SetColor(context.Background(), 3, effect.Blue); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}
	if got := len(fb.creates) - before; got != 1 {
		t.Fatalf("SetColor issued %d create calls, want exactly 1", got)
	}

	// The full buffer is submitted, with only position 3 changed.
	buf, ok := fb.lastCreate(t).payload.(effect.LinkCustom)
	if !ok {
		t.Fatalf("payload = %#v, want LinkCustom", fb.lastCreate(t).payload)
	}
	for i, c := range buf {
		want := effect.Color(0)
		if i == 3 {
			want = effect.Blue
		}
		if c != want {
			t.Errorf("buf[%d] = %v, want %v", i, c, want)
		}
	}

	got, err := link.Color(3)
	if err != nil {
		t.Fatalf("Color failed: %v", err)
	}
	if got != effect.Blue {
		t.Errorf("Color(3) = %v, want %v", got, effect.Blue)
	}

	// The buffer survives reopening the facade from the directory.
	again, err := dir.Link().Color(3)
	if err != nil {
		t.Fatalf("Color failed: %v", err)
	}
	if again != effect.Blue {
		t.Error("link buffer must be shared across opens")
	}
}

func TestLinkPositionBounds(t *testing.T) {
	dir := device.NewDirectory(&fakeBackend{}, device.DirectoryConfig{})
	link := dir.Link()

	if _, err := link.SetColor(context.Background(), -1, effect.Red); err == nil {
		t.Error("expected error for negative position")
	}
	if _, err := link.SetColor(context.Background(), effect.LinkLEDCount, effect.Red); err == nil {
		t.Error("expected error for out-of-range position")
	}
	if _, err := link.Color(effect.LinkLEDCount); err == nil {
		t.Error("expected error for out-of-range read")
	}
}

func TestCloseClearsBestEffort(t *testing.T) {
	fb := &fakeBackend{}
	dir := device.NewDirectory(fb, device.DirectoryConfig{})
	kb := dir.Keyboard()

	if _, err := kb.SetStatic(context.Background(), effect.Red); err != nil {
		t.Fatalf("SetStatic failed: %v", err)
	}

	// Close never fails, even when the backend refuses the clear.
	fb.createErr = backend.ErrInvalidState
	if err := kb.Close(); err != nil {
		t.Errorf("Close = %v, want nil", err)
	}
}
