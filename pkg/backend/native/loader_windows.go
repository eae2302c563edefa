//go:build windows

package native

import (
	"fmt"
	"unsafe"

	"github.com/google/uuid"
	"golang.org/x/sys/windows"

	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

const dllName = "RzChromaSDK64.dll"

// Per-category effect-type codes from the vendor headers. Only the kinds
// this library exposes are mapped.
var nativeKinds = map[effect.Category]map[effect.Kind]uintptr{
	effect.CategoryKeyboard: {
		effect.KindNone:      0,
		effect.KindCustom:    2,
		effect.KindStatic:    4,
		effect.KindCustomKey: 8,
	},
	effect.CategoryMouse: {
		effect.KindNone:   0,
		effect.KindCustom: 3,
		effect.KindStatic: 6,
	},
	effect.CategoryMousepad: {
		effect.KindNone:   0,
		effect.KindCustom: 2,
		effect.KindStatic: 4,
	},
	effect.CategoryHeadset: {
		effect.KindNone:   0,
		effect.KindStatic: 1,
		effect.KindCustom: 4,
	},
	effect.CategoryKeypad: {
		effect.KindNone:   0,
		effect.KindCustom: 2,
		effect.KindStatic: 5,
	},
	effect.CategoryLink: {
		effect.KindNone:   0,
		effect.KindCustom: 1,
		effect.KindStatic: 2,
	},
}

var createProcNames = map[effect.Category]string{
	effect.CategoryKeyboard: "CreateKeyboardEffect",
	effect.CategoryMouse:    "CreateMouseEffect",
	effect.CategoryMousepad: "CreateMousepadEffect",
	effect.CategoryHeadset:  "CreateHeadsetEffect",
	effect.CategoryKeypad:   "CreateKeypadEffect",
	effect.CategoryLink:     "CreateChromaLinkEffect",
}

// sysLibrary is the real vendor SDK function table.
type sysLibrary struct {
	dll *windows.LazyDLL

	init         *windows.LazyProc
	uninit       *windows.LazyProc
	setEffect    *windows.LazyProc
	deleteEffect *windows.LazyProc
	queryDevice  *windows.LazyProc
	register     *windows.LazyProc
	unregister   *windows.LazyProc
	create       map[effect.Category]*windows.LazyProc
}

// LoadSystemLibrary resolves the vendor SDK from the system search path.
func LoadSystemLibrary() (Library, error) {
	dll := windows.NewLazySystemDLL(dllName)
	if err := dll.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSDKUnavailable, err)
	}

	lib := &sysLibrary{
		dll:          dll,
		init:         dll.NewProc("Init"),
		uninit:       dll.NewProc("UnInit"),
		setEffect:    dll.NewProc("SetEffect"),
		deleteEffect: dll.NewProc("DeleteEffect"),
		queryDevice:  dll.NewProc("QueryDevice"),
		register:     dll.NewProc("RegisterEventNotification"),
		unregister:   dll.NewProc("UnregisterEventNotification"),
		create:       make(map[effect.Category]*windows.LazyProc, len(createProcNames)),
	}
	for category, name := range createProcNames {
		lib.create[category] = dll.NewProc(name)
	}
	return lib, nil
}

func (l *sysLibrary) Init(backend.AppInfo) error {
	return callResult(l.init)
}

func (l *sysLibrary) UnInit() error {
	return callResult(l.uninit)
}

func (l *sysLibrary) CreateEffect(category effect.Category, kind effect.Kind, payload any) (effect.ID, error) {
	proc, ok := l.create[category]
	if !ok {
		// Generic devices are addressed by hardware GUID, which the
		// in-process SDK only exposes through the control plane.
		return effect.Nil, fmt.Errorf("create effect on %s: %w", category, backend.ErrUnsupportedOperation)
	}
	code, ok := nativeKinds[category][kind]
	if !ok {
		return effect.Nil, &backend.CallError{Endpoint: proc.Name, Op: backend.OpCreateEffect, Result: int64(ResultNotSupported)}
	}

	words, err := payloadWords(payload)
	if err != nil {
		return effect.Nil, &backend.CallError{Endpoint: proc.Name, Op: backend.OpCreateEffect, Err: err}
	}
	var param unsafe.Pointer
	if len(words) > 0 {
		param = unsafe.Pointer(&words[0])
	}

	var gid windows.GUID
	r1, _, _ := proc.Call(code, uintptr(param), uintptr(unsafe.Pointer(&gid)))
	if Result(r1) != ResultSuccess {
		return effect.Nil, &backend.CallError{Endpoint: proc.Name, Op: backend.OpCreateEffect, Result: int64(r1)}
	}
	return effect.ID(uuidFromGUID(gid)), nil
}

func (l *sysLibrary) SetEffect(id effect.ID) error {
	gid := guidFromUUID(uuid.UUID(id))
	r1, _, _ := l.setEffect.Call(uintptr(unsafe.Pointer(&gid)))
	if Result(r1) != ResultSuccess {
		return &backend.CallError{Endpoint: l.setEffect.Name, Op: backend.OpSetEffect, Result: int64(r1)}
	}
	return nil
}

func (l *sysLibrary) DeleteEffect(id effect.ID) error {
	gid := guidFromUUID(uuid.UUID(id))
	r1, _, _ := l.deleteEffect.Call(uintptr(unsafe.Pointer(&gid)))
	if Result(r1) != ResultSuccess {
		return &backend.CallError{Endpoint: l.deleteEffect.Name, Op: backend.OpDeleteEffect, Result: int64(r1)}
	}
	return nil
}

func (l *sysLibrary) QueryDevice(deviceID uuid.UUID) (backend.DeviceInfo, error) {
	// DEVICE_INFO_TYPE: device type followed by a connected flag.
	var info struct {
		DeviceType uint32
		Connected  uint32
	}
	gid := guidFromUUID(deviceID)
	r1, _, _ := l.queryDevice.Call(uintptr(unsafe.Pointer(&gid)), uintptr(unsafe.Pointer(&info)))
	if Result(r1) != ResultSuccess {
		return backend.DeviceInfo{}, &backend.CallError{Endpoint: l.queryDevice.Name, Op: backend.OpQueryDevice, Result: int64(r1)}
	}
	return backend.DeviceInfo{Type: info.DeviceType, Connected: info.Connected != 0}, nil
}

func (l *sysLibrary) RegisterEventNotification(windowHandle uintptr) error {
	r1, _, _ := l.register.Call(windowHandle)
	if Result(r1) != ResultSuccess {
		return &backend.CallError{Endpoint: l.register.Name, Op: backend.OpEventNotifications, Result: int64(r1)}
	}
	return nil
}

func (l *sysLibrary) UnregisterEventNotification() error {
	return callResult(l.unregister)
}

func callResult(proc *windows.LazyProc) error {
	r1, _, _ := proc.Call()
	if Result(r1) != ResultSuccess {
		return &backend.CallError{Endpoint: proc.Name, Op: backend.OpInitialize, Result: int64(r1)}
	}
	return nil
}

// payloadWords flattens a typed parameter struct into the COLORREF buffer
// the native calls consume.
func payloadWords(payload any) ([]uint32, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case effect.StaticParams:
		return []uint32{uint32(p.Color)}, nil
	case effect.KeyboardCustom:
		return flattenGrid(p[:]), nil
	case effect.KeypadCustom:
		return flattenGrid(p[:]), nil
	case effect.MouseCustom:
		return flattenGrid(p[:]), nil
	case effect.MousepadCustom:
		return flattenRow(p[:]), nil
	case effect.LinkCustom:
		return flattenRow(p[:]), nil
	default:
		return nil, fmt.Errorf("unsupported native payload type %T", payload)
	}
}

func flattenGrid[Row ~[22]effect.Color | ~[5]effect.Color | ~[7]effect.Color](rows []Row) []uint32 {
	var out []uint32
	for i := range rows {
		for _, c := range rows[i] {
			out = append(out, uint32(c))
		}
	}
	return out
}

func flattenRow(colors []effect.Color) []uint32 {
	out := make([]uint32, len(colors))
	for i, c := range colors {
		out[i] = uint32(c)
	}
	return out
}

// guidFromUUID converts a canonical UUID to the mixed-endian layout of a
// Windows GUID.
func guidFromUUID(u uuid.UUID) windows.GUID {
	return windows.GUID{
		Data1: uint32(u[0])<<24 | uint32(u[1])<<16 | uint32(u[2])<<8 | uint32(u[3]),
		Data2: uint16(u[4])<<8 | uint16(u[5]),
		Data3: uint16(u[6])<<8 | uint16(u[7]),
		Data4: [8]byte{u[8], u[9], u[10], u[11], u[12], u[13], u[14], u[15]},
	}
}

// uuidFromGUID is the inverse of guidFromUUID.
func uuidFromGUID(g windows.GUID) uuid.UUID {
	var u uuid.UUID
	u[0] = byte(g.Data1 >> 24)
	u[1] = byte(g.Data1 >> 16)
	u[2] = byte(g.Data1 >> 8)
	u[3] = byte(g.Data1)
	u[4] = byte(g.Data2 >> 8)
	u[5] = byte(g.Data2)
	u[6] = byte(g.Data3 >> 8)
	u[7] = byte(g.Data3)
	copy(u[8:], g.Data4[:])
	return u
}
