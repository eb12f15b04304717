package cypress

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"cyspec/pkg/logging"

	"github.com/dop251/goja"
	"github.com/evanw/esbuild/pkg/api"
)

// ScriptLoader evaluates a config script and returns the value it exports.
type ScriptLoader interface {
	Load(ctx context.Context, path string) (map[string]any, error)
}

// maxExportDepth bounds the conversion of exported JS values; config objects
// are shallow and anything deeper is plugin state we do not read.
const maxExportDepth = 16

// sandboxLoader runs config scripts in an isolated goja runtime. The script
// sees CommonJS module globals, a read-only copy of the environment and a
// require restricted to a small allow-list.
type sandboxLoader struct {
	environ func() []string
}

// NewScriptLoader returns the default ScriptLoader.
func NewScriptLoader() ScriptLoader {
	return &sandboxLoader{environ: os.Environ}
}

// Transpile turns a TypeScript or ES module config into CommonJS that the
// sandbox can evaluate. Plain CommonJS passes through unchanged apart from
// formatting.
func Transpile(path string, src []byte) (string, error) {
	loader := api.LoaderJS
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		loader = api.LoaderTS
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:     loader,
		Format:     api.FormatCommonJS,
		Platform:   api.PlatformNode,
		Target:     api.ES2017,
		Sourcefile: path,
	})
	if len(result.Errors) > 0 {
		diagnostics := make([]string, 0, len(result.Errors))
		for _, msg := range result.Errors {
			diagnostics = append(diagnostics, formatMessage(msg))
		}
		return "", &TranspileError{File: path, Diagnostics: diagnostics}
	}
	for _, msg := range result.Warnings {
		logging.Debug("Transpile", "%s", formatMessage(msg))
	}
	return string(result.Code), nil
}

func formatMessage(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
}

// Load reads, transpiles and evaluates the script at path.
func (l *sandboxLoader) Load(ctx context.Context, path string) (map[string]any, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{File: path, Err: err}
	}

	code, err := Transpile(path, src)
	if err != nil {
		return nil, err
	}

	s := newSandbox(path, l.environ())
	exported, err := s.run(ctx, code)
	if err != nil {
		return nil, &ConfigError{File: path, Err: err}
	}

	obj, ok := exported.(map[string]any)
	if !ok {
		return nil, &ConfigError{File: path, Err: fmt.Errorf("config must export an object, got %T", exported)}
	}
	return obj, nil
}

// sandboxPrelude defines the JS-side helpers: the cypress module shim and the
// inert stub handed out for modules outside the allow-list. The stub absorbs
// property access and calls so top-level plugin wiring does not abort loading.
const sandboxPrelude = `
var __cyspec = (function () {
  function identity(config) { return config; }
  var handler = {
    get: function (target, prop) {
      if (prop === '__esModule') { return false; }
      if (prop === 'then' || typeof prop === 'symbol') { return undefined; }
      return stub;
    },
    apply: function () { return stub; },
    construct: function () { return stub; }
  };
  var stub = new Proxy(function () {}, handler);
  return {
    cypress: {
      defineConfig: identity,
      defineComponentFramework: identity
    },
    stub: stub
  };
})();
`

type sandbox struct {
	vm      *goja.Runtime
	file    string
	environ []string
	shims   *goja.Object
}

func newSandbox(file string, environ []string) *sandbox {
	return &sandbox{vm: goja.New(), file: file, environ: environ}
}

func (s *sandbox) run(ctx context.Context, code string) (any, error) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			s.vm.Interrupt(ctx.Err())
		case <-stop:
		}
	}()

	if err := s.installGlobals(); err != nil {
		return nil, err
	}

	wrapper := "(function (exports, require, module, __filename, __dirname) {\n" + code + "\n})"
	fnValue, err := s.vm.RunScript(s.file, wrapper)
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		return nil, fmt.Errorf("module wrapper did not evaluate to a function")
	}

	module := s.vm.NewObject()
	exports := s.vm.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return nil, err
	}

	_, err = fn(goja.Undefined(),
		exports,
		s.vm.ToValue(s.require),
		module,
		s.vm.ToValue(s.file),
		s.vm.ToValue(filepath.Dir(s.file)),
	)
	if err != nil {
		return nil, err
	}

	var exported any
	if ex := s.vm.Try(func() {
		exported = exportValue(module.Get("exports"), 0)
	}); ex != nil {
		return nil, ex
	}
	return exported, nil
}

func (s *sandbox) installGlobals() error {
	if _, err := s.vm.RunString(sandboxPrelude); err != nil {
		return fmt.Errorf("failed to prepare sandbox: %w", err)
	}
	s.shims = s.vm.Get("__cyspec").ToObject(s.vm)

	if err := s.vm.Set("process", s.processObject()); err != nil {
		return err
	}
	return s.vm.Set("console", s.consoleObject())
}

// require resolves the allow-listed modules; anything else becomes the stub.
func (s *sandbox) require(call goja.FunctionCall) goja.Value {
	name := call.Argument(0).String()
	switch strings.TrimPrefix(name, "node:") {
	case "cypress":
		return s.shims.Get("cypress")
	case "path":
		return s.pathModule()
	case "process":
		return s.vm.Get("process")
	}
	logging.Debug("ConfigScript", "Module %q is not available while reading %s, using a stub", name, s.file)
	return s.shims.Get("stub")
}

func (s *sandbox) processObject() *goja.Object {
	env := s.vm.NewObject()
	for _, kv := range s.environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		_ = env.Set(key, value)
	}

	dir := filepath.Dir(s.file)
	process := s.vm.NewObject()
	_ = process.Set("env", env)
	_ = process.Set("platform", runtime.GOOS)
	_ = process.Set("argv", s.vm.NewArray())
	_ = process.Set("cwd", func(goja.FunctionCall) goja.Value { return s.vm.ToValue(dir) })
	return process
}

func (s *sandbox) consoleObject() *goja.Object {
	log := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		logging.Debug("ConfigScript", "%s", strings.Join(parts, " "))
		return goja.Undefined()
	}
	console := s.vm.NewObject()
	for _, method := range []string{"log", "info", "warn", "error", "debug"} {
		_ = console.Set(method, log)
	}
	return console
}

func (s *sandbox) pathModule() goja.Value {
	str := func(call goja.FunctionCall, i int) string {
		if goja.IsUndefined(call.Argument(i)) {
			return ""
		}
		return call.Argument(i).String()
	}
	all := func(call goja.FunctionCall) []string {
		out := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			out = append(out, arg.String())
		}
		return out
	}
	dir := filepath.Dir(s.file)

	mod := s.vm.NewObject()
	_ = mod.Set("sep", string(filepath.Separator))
	_ = mod.Set("join", func(call goja.FunctionCall) goja.Value {
		return s.vm.ToValue(filepath.Join(all(call)...))
	})
	_ = mod.Set("resolve", func(call goja.FunctionCall) goja.Value {
		resolved := dir
		for _, p := range all(call) {
			if filepath.IsAbs(p) {
				resolved = p
			} else {
				resolved = filepath.Join(resolved, p)
			}
		}
		return s.vm.ToValue(filepath.Clean(resolved))
	})
	_ = mod.Set("dirname", func(call goja.FunctionCall) goja.Value {
		return s.vm.ToValue(filepath.Dir(str(call, 0)))
	})
	_ = mod.Set("basename", func(call goja.FunctionCall) goja.Value {
		return s.vm.ToValue(strings.TrimSuffix(filepath.Base(str(call, 0)), str(call, 1)))
	})
	_ = mod.Set("extname", func(call goja.FunctionCall) goja.Value {
		return s.vm.ToValue(filepath.Ext(str(call, 0)))
	})
	_ = mod.Set("normalize", func(call goja.FunctionCall) goja.Value {
		return s.vm.ToValue(filepath.Clean(str(call, 0)))
	})
	_ = mod.Set("isAbsolute", func(call goja.FunctionCall) goja.Value {
		return s.vm.ToValue(filepath.IsAbs(str(call, 0)))
	})
	_ = mod.Set("relative", func(call goja.FunctionCall) goja.Value {
		rel, err := filepath.Rel(str(call, 0), str(call, 1))
		if err != nil {
			panic(s.vm.NewGoError(err))
		}
		return s.vm.ToValue(rel)
	})
	return mod
}

// exportValue converts a JS value into plain Go values. Functions are dropped,
// arrays become []any and plain objects map[string]any. Getters are invoked,
// which is how esbuild exposes `export default`.
func exportValue(v goja.Value, depth int) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	if depth > maxExportDepth {
		return nil
	}
	if _, isFunc := goja.AssertFunction(v); isFunc {
		return nil
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return v.Export()
	}

	switch obj.ClassName() {
	case "Array":
		length := obj.Get("length").ToInteger()
		out := make([]any, 0, length)
		for i := int64(0); i < length; i++ {
			out = append(out, exportValue(obj.Get(strconv.FormatInt(i, 10)), depth+1))
		}
		return out
	case "Object":
		out := make(map[string]any)
		for _, key := range obj.Keys() {
			out[key] = exportValue(obj.Get(key), depth+1)
		}
		return out
	default:
		return obj.Export()
	}
}
