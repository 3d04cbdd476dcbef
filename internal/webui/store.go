//go:build js && wasm

package webui

import (
	"log/slog"
	"syscall/js"

	"github.com/san-kum/chaospanel/internal/param"
)

// ModuleStore forwards writes to the set_*_param functions exported on the
// global emscripten Module. The Module is looked up on every call since the
// runtime may finish loading after the panel is built.
type ModuleStore struct {
	logger *slog.Logger
}

func NewModuleStore(logger *slog.Logger) *ModuleStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModuleStore{logger: logger}
}

func (s *ModuleStore) call(fn string, args ...any) {
	module := js.Global().Get("Module")
	if module.IsUndefined() || module.Get(fn).Type() != js.TypeFunction {
		s.logger.Warn("module function unavailable", "fn", fn)
		return
	}
	module.Call(fn, args...)
}

func (s *ModuleStore) SetInt(code param.Code, v int) {
	s.call("set_int_param", int(code), v)
}

func (s *ModuleStore) SetFloat(code param.Code, v float64) {
	s.call("set_float_param", int(code), v)
}

func (s *ModuleStore) SetBool(code param.Code, v bool) {
	s.call("set_bool_param", int(code), v)
}

func (s *ModuleStore) SetVec(code param.Code, n, i int, v float64) {
	s.call("set_vec_param", int(code), n, i, v)
}

func (s *ModuleStore) SetIVec(code param.Code, n, i int, v int) {
	s.call("set_ivec_param", int(code), n, i, v)
}

func (s *ModuleStore) SetString(code param.Code, i int, v string) {
	s.call("set_string_param", int(code), i, v)
}
