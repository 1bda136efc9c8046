// Package js runs event scenarios written in JavaScript against a dom.Document.
// It uses the goja JavaScript engine (pure Go ES5.1+ implementation).
//
// Scripts register listeners with addEventListener and fire events with the
// Event constructors and dispatchEvent, element.click(), element.focus() and
// the dispatchWheel and runScoped helpers. Every event goes through the dom
// dispatch core.
package js

import (
	"fmt"
	"sync"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/chrisuehlinger/evdispatch/dom"
)

// Runtime wraps a goja JavaScript runtime bound to one document.
type Runtime struct {
	vm       *goja.Runtime
	registry *require.Registry
	binder   *DOMBinder
	doc      *dom.Document

	session string
	log     *logrus.Entry

	// mu serializes use of the VM; goja runtimes are not goroutine safe.
	mu sync.Mutex

	outMu   sync.Mutex
	errors  []error
	console []string
	onError func(error)
}

// NewRuntime creates a runtime with document, console and the event
// constructors installed as globals.
func NewRuntime(doc *dom.Document) *Runtime {
	if doc == nil {
		doc = dom.NewDocument()
	}
	session := uuid.NewString()
	r := &Runtime{
		vm:       goja.New(),
		registry: require.NewRegistry(),
		doc:      doc,
		session:  session,
		log:      logrus.WithField("session", session),
	}
	r.binder = NewDOMBinder(r)

	r.setupConsole()
	r.binder.setupEventConstructors()
	r.binder.setupGlobals()
	r.vm.Set("document", r.binder.BindDocument(doc))
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Document returns the document scripts operate on.
func (r *Runtime) Document() *dom.Document {
	return r.doc
}

// Binder returns the binder mapping dom nodes and events to script objects.
func (r *Runtime) Binder() *DOMBinder {
	return r.binder
}

// SessionID identifies this runtime in log output.
func (r *Runtime) SessionID() string {
	return r.session
}

// SetOnError sets a callback for script errors, including exceptions thrown
// by event listeners.
func (r *Runtime) SetOnError(handler func(error)) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Recover from panics in the goja parser/runtime
	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("script execution panic: %v", p)
			r.reportError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.reportError(err)
	}
	return result, err
}

// ExecuteScript compiles and runs a script, naming it src in stack traces.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("script compilation panic in %s: %v", src, p)
			r.reportError(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		err = errors.Wrapf(err, "compile %s", src)
		r.reportError(err)
		return err
	}

	if _, err = r.vm.RunProgram(program); err != nil {
		err = errors.Wrapf(err, "run %s", src)
		r.reportError(err)
	}
	return err
}

// Do runs fn with exclusive use of the VM. Go code that dispatches events
// with script listeners attached, such as an input router, must go through Do.
func (r *Runtime) Do(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	r.errors = r.errors[:0]
}

// ConsoleOutput returns the lines printed through console, in order.
// Warnings and errors carry a "[warn]" or "[error]" prefix.
func (r *Runtime) ConsoleOutput() []string {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	return append([]string{}, r.console...)
}

func (r *Runtime) reportError(err error) {
	r.outMu.Lock()
	r.errors = append(r.errors, err)
	onError := r.onError
	r.outMu.Unlock()

	r.log.WithError(err).Warn("script error")
	if onError != nil {
		onError(err)
	}
}

func (r *Runtime) appendConsole(line string) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	r.console = append(r.console, line)
}

// setupConsole installs the goja_nodejs console module with a printer that
// records output and forwards it to logrus.
func (r *Runtime) setupConsole() {
	r.registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(&consolePrinter{r: r}))
	r.registry.Enable(r.vm)
	console.Enable(r.vm)
}

// consolePrinter implements console.Printer.
type consolePrinter struct {
	r *Runtime
}

func (p *consolePrinter) Log(s string) {
	p.r.appendConsole(s)
	p.r.log.WithField("source", "console").Info(s)
}

func (p *consolePrinter) Warn(s string) {
	p.r.appendConsole("[warn] " + s)
	p.r.log.WithField("source", "console").Warn(s)
}

func (p *consolePrinter) Error(s string) {
	p.r.appendConsole("[error] " + s)
	p.r.log.WithField("source", "console").Error(s)
}

// throwTypeError raises a JavaScript TypeError from a native function.
func (r *Runtime) throwTypeError(format string, args ...interface{}) {
	panic(r.vm.NewTypeError(fmt.Sprintf(format, args...)))
}

// throwDOMError raises a DOMError as a TypeError whose message starts with
// the error's name.
func (r *Runtime) throwDOMError(err *dom.DOMError) {
	panic(r.vm.NewTypeError(err.Error()))
}
