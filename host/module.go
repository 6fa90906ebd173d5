package host

import (
	"context"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/structpack"
	"github.com/wippyai/structpack/errors"
)

// ModuleName is the import namespace guests use for the codec functions.
const ModuleName = "structpack"

// Status codes returned to guests by pack and unpack. Non-negative returns
// are byte counts.
const (
	ErrnoBadHandle       int32 = -1 // unknown or dropped descriptor handle
	ErrnoOutOfBounds     int32 = -2 // pointer/length outside linear memory
	ErrnoMalformedValues int32 = -3 // value wire bytes did not decode
	ErrnoCodecFailure    int32 = -4 // pack or unpack rejected the input
	ErrnoShortOutput     int32 = -5 // out_cap smaller than the result
)

// Host owns the descriptor table shared by every guest instance that
// imports the module.
type Host struct {
	table  *Table
	config *structpack.Config
}

// New creates a Host with default codec configuration.
func New() *Host {
	return NewWithConfig(nil)
}

// NewWithConfig creates a Host whose compile function applies cfg.
func NewWithConfig(cfg *structpack.Config) *Host {
	return &Host{table: NewTable(), config: cfg}
}

// Instantiate registers the host module with the runtime. Call it once per
// wazero.Runtime, before instantiating guests that import ModuleName.
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Closer, error) {
	i32 := api.ValueTypeI32
	i64 := api.ValueTypeI64

	builder := r.NewHostModuleBuilder(ModuleName)

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.compile), []api.ValueType{i32, i32}, []api.ValueType{i64}).
		Export("compile")

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.fieldCount), []api.ValueType{i32}, []api.ValueType{i32}).
		Export("field_count")

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.totalSize), []api.ValueType{i32}, []api.ValueType{i32}).
		Export("total_size")

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.pack), []api.ValueType{i32, i32, i32, i32, i32}, []api.ValueType{i32}).
		Export("pack")

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.unpack), []api.ValueType{i32, i32, i32, i32, i32}, []api.ValueType{i32}).
		Export("unpack")

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.drop), []api.ValueType{i32}, nil).
		Export("drop")

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(ModuleName, err)
	}

	Logger().Info("registered host module", zap.String("module", ModuleName))
	return mod, nil
}

// Len returns the number of live descriptors, useful for leak checks.
func (h *Host) Len() int {
	return h.table.Len()
}

// Close releases every descriptor. Guests must not call into the module
// afterwards.
func (h *Host) Close() {
	h.table.Close()
}

func (h *Host) compile(_ context.Context, mod api.Module, stack []uint64) {
	stack[0] = h.compileFrom(NewWazeroMemory(mod.Memory()), uint32(stack[0]), uint32(stack[1]))
}

func (h *Host) fieldCount(_ context.Context, _ api.Module, stack []uint64) {
	d, ok := h.table.Get(Handle(uint32(stack[0])))
	if !ok {
		stack[0] = 0xFFFFFFFF // -1 as uint32
		return
	}
	stack[0] = uint64(uint32(d.NumFields()))
}

func (h *Host) totalSize(_ context.Context, _ api.Module, stack []uint64) {
	d, ok := h.table.Get(Handle(uint32(stack[0])))
	if !ok {
		stack[0] = 0xFFFFFFFF // -1 as uint32
		return
	}
	stack[0] = uint64(uint32(d.Size()))
}

func (h *Host) pack(_ context.Context, mod api.Module, stack []uint64) {
	ret := h.packInto(NewWazeroMemory(mod.Memory()), Handle(uint32(stack[0])),
		uint32(stack[1]), uint32(stack[2]), uint32(stack[3]), uint32(stack[4]))
	stack[0] = uint64(uint32(ret))
}

func (h *Host) unpack(_ context.Context, mod api.Module, stack []uint64) {
	ret := h.unpackInto(NewWazeroMemory(mod.Memory()), Handle(uint32(stack[0])),
		uint32(stack[1]), uint32(stack[2]), uint32(stack[3]), uint32(stack[4]))
	stack[0] = uint64(uint32(ret))
}

func (h *Host) drop(_ context.Context, _ api.Module, stack []uint64) {
	h.table.Remove(Handle(uint32(stack[0])))
}

// compileFrom reads a format string out of guest memory and compiles it.
// The return packs the handle into the low 32 bits and the descriptor's
// total size into the high 32; it is 0 when anything fails.
func (h *Host) compileFrom(mem Memory, ptr, length uint32) uint64 {
	data, err := mem.Read(ptr, length)
	if err != nil {
		Logger().Debug("compile: format read failed", zap.Error(err))
		return 0
	}

	format := string(data)
	d, err := structpack.CompileWithConfig(format, h.config)
	if err != nil {
		Logger().Debug("compile failed", zap.String("format", format), zap.Error(err))
		return 0
	}

	// Sizes must fit the ABI's i32 returns.
	if d.Size() > math.MaxInt32 {
		Logger().Debug("compile: descriptor too large", zap.Int("size", d.Size()))
		return 0
	}

	handle := h.table.Insert(d)
	if handle == 0 {
		return 0
	}
	return uint64(handle) | uint64(uint32(d.Size()))<<32
}

// packInto decodes a value sequence from guest memory, packs it with the
// handle's descriptor, and writes the buffer to out_ptr. It returns the
// number of bytes written or a negative status code.
func (h *Host) packInto(mem Memory, handle Handle, valsPtr, valsLen, outPtr, outCap uint32) int32 {
	d, ok := h.table.Get(handle)
	if !ok {
		Logger().Debug("pack: bad handle", zap.Error(errors.NotFound(uint32(handle))))
		return ErrnoBadHandle
	}

	data, err := mem.Read(valsPtr, valsLen)
	if err != nil {
		return ErrnoOutOfBounds
	}

	values, err := DecodeValues(data)
	if err != nil {
		Logger().Debug("pack: malformed value bytes", zap.Error(err))
		return ErrnoMalformedValues
	}

	buf, err := d.Pack(values)
	if err != nil {
		Logger().Debug("pack failed", zap.String("format", d.Format()), zap.Error(err))
		return ErrnoCodecFailure
	}

	if uint64(len(buf)) > uint64(outCap) {
		return ErrnoShortOutput
	}
	if err := mem.Write(outPtr, buf); err != nil {
		return ErrnoOutOfBounds
	}
	return int32(len(buf))
}

// unpackInto reads a packed buffer from guest memory, unpacks it, and
// writes the encoded value sequence to out_ptr. It returns the number of
// bytes written or a negative status code.
func (h *Host) unpackInto(mem Memory, handle Handle, bufPtr, bufLen, outPtr, outCap uint32) int32 {
	d, ok := h.table.Get(handle)
	if !ok {
		Logger().Debug("unpack: bad handle", zap.Error(errors.NotFound(uint32(handle))))
		return ErrnoBadHandle
	}

	buf, err := mem.Read(bufPtr, bufLen)
	if err != nil {
		return ErrnoOutOfBounds
	}

	values, err := d.Unpack(buf)
	if err != nil {
		Logger().Debug("unpack failed", zap.String("format", d.Format()), zap.Error(err))
		return ErrnoCodecFailure
	}

	encoded := EncodeValues(values)
	if uint64(len(encoded)) > uint64(outCap) || len(encoded) > math.MaxInt32 {
		return ErrnoShortOutput
	}
	if err := mem.Write(outPtr, encoded); err != nil {
		return ErrnoOutOfBounds
	}
	return int32(len(encoded))
}
