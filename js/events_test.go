package js

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/evdispatch/dom"
	"github.com/chrisuehlinger/evdispatch/html"
)

func newScenarioRuntime(t *testing.T, markup string) *Runtime {
	t.Helper()
	doc, err := html.Parse(markup)
	require.NoError(t, err)
	return NewRuntime(doc)
}

func run(t *testing.T, r *Runtime, code string) string {
	t.Helper()
	v, err := r.Execute(code)
	require.NoError(t, err)
	if v == nil {
		return ""
	}
	return v.String()
}

const chainMarkup = `<body><div id="d"><span id="s">x</span></div><input id="a"><input id="b"></body>`

func TestEventListenerOrder(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var log = [];
		var d = document.getElementById('d');
		var s = document.getElementById('s');
		[[document, 'root'], [d, 'div']].forEach(function(p) {
			p[0].addEventListener('click', function() { log.push(p[1] + '(capture)'); }, true);
			p[0].addEventListener('click', function() { log.push(p[1] + '(bubble)'); });
		});
		s.addEventListener('click', function() { log.push('span(target)'); });
		document.addEventListener('dblclick', function() { log.push('dblclick'); });
		s.dispatchEvent(new MouseEvent('click', {bubbles: true, cancelable: true, detail: 1}));
		log.join(',');
	`)
	assert.Equal(t, "root(capture),div(capture),span(target),div(bubble),root(bubble)", got)
}

func TestEventDoubleClickSynthesis(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var log = [];
		var s = document.getElementById('s');
		document.addEventListener('click', function(e) { log.push('click:' + e.detail); });
		document.addEventListener('dblclick', function(e) {
			log.push('dblclick:' + e.detail + ':' + e.isTrusted + ':' + e.target.id);
		});
		dispatchMouse(s, 'click', {detail: 2, clientX: 5, clientY: 6});
		log.join(',');
	`)
	assert.Equal(t, "click:2,dblclick:2:true:s", got)
}

func TestEventPreventDefault(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var s = document.getElementById('s');
		s.addEventListener('ping', function(e) { e.preventDefault(); });
		var ev = new Event('ping', {cancelable: true});
		var result = s.dispatchEvent(ev);
		result + ':' + ev.defaultPrevented;
	`)
	assert.Equal(t, "false:true", got)

	got = run(t, r, `
		var passive = new Event('quiet', {cancelable: true});
		s.addEventListener('quiet', function(e) { e.preventDefault(); }, {passive: true});
		s.dispatchEvent(passive) + ':' + passive.defaultPrevented;
	`)
	assert.Equal(t, "true:false", got)
}

func TestEventStateAfterDispatch(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var s = document.getElementById('s');
		var during;
		document.addEventListener('ping', function(e) {
			during = e.eventPhase + ':' + (e.currentTarget === document);
		});
		var ev = new Event('ping', {bubbles: true});
		s.dispatchEvent(ev);
		[during, ev.eventPhase, ev.currentTarget, ev.target.id].join(',');
	`)
	assert.Equal(t, "3:true,0,,s", got)
}

func TestEventStopPropagation(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var log = [];
		var d = document.getElementById('d');
		var s = document.getElementById('s');
		d.addEventListener('ping', function(e) { log.push('d1'); e.stopImmediatePropagation(); });
		d.addEventListener('ping', function() { log.push('d2'); });
		document.addEventListener('ping', function() { log.push('root'); });
		s.dispatchEvent(new Event('ping', {bubbles: true}));
		log.join(',');
	`)
	assert.Equal(t, "d1", got)
}

func TestEventRemoveListener(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var count = 0;
		var s = document.getElementById('s');
		function handler() { count++; }
		s.addEventListener('ping', handler);
		s.addEventListener('ping', handler);
		s.dispatchEvent(new Event('ping'));
		s.removeEventListener('ping', handler, true);
		s.dispatchEvent(new Event('ping'));
		s.removeEventListener('ping', handler);
		s.dispatchEvent(new Event('ping'));
		count;
	`)
	assert.Equal(t, "2", got)
}

func TestEventOnceListener(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var count = 0;
		var s = document.getElementById('s');
		function handler() { count++; }
		s.addEventListener('ping', handler, {once: true});
		s.dispatchEvent(new Event('ping'));
		s.dispatchEvent(new Event('ping'));
		s.addEventListener('ping', handler, {once: true});
		s.dispatchEvent(new Event('ping'));
		count;
	`)
	assert.Equal(t, "2", got)
}

func TestEventRedispatchThrows(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	run(t, r, `
		var s = document.getElementById('s');
		var ev = new Event('ping');
		s.dispatchEvent(ev);
	`)
	_, err := r.Execute(`s.dispatchEvent(ev)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidStateError")

	_, err = r.Execute(`s.dispatchEvent({type: 'ping'})`)
	assert.Error(t, err)
}

func TestEventListenerExceptionIsReported(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var log = [];
		var s = document.getElementById('s');
		s.addEventListener('ping', function() { throw new Error('listener failed'); });
		s.addEventListener('ping', function() { log.push('second'); });
		s.dispatchEvent(new Event('ping'));
		log.join(',');
	`)
	assert.Equal(t, "second", got)
	require.Len(t, r.Errors(), 1)
	assert.Contains(t, r.Errors()[0].Error(), "listener failed")
}

func TestEventShadowRetargeting(t *testing.T) {
	r := newScenarioRuntime(t, `<body>
		<div id="host"><template shadowrootmode="open"><span id="inner"></span></template></div>
	</body>`)
	got := run(t, r, `
		var log = [];
		var host = document.getElementById('host');
		var inner = host.shadowRoot.getElementById('inner');
		host.shadowRoot.addEventListener('click', function(e) { log.push('shadow:' + e.target.id); });
		document.addEventListener('click', function(e) { log.push('document:' + e.target.id); });
		var ev = new MouseEvent('click', {bubbles: true});
		inner.dispatchEvent(ev);
		log.push('after:' + ev.target.id);
		log.join(',');
	`)
	assert.Equal(t, "shadow:inner,document:host,after:inner", got)
}

func TestEventRelatedTargetRetargeting(t *testing.T) {
	r := newScenarioRuntime(t, `<body>
		<div id="host"><template shadowrootmode="open"><span id="x"></span><span id="y"></span></template></div>
		<p id="out"></p>
	</body>`)
	got := run(t, r, `
		var log = [];
		var host = document.getElementById('host');
		var x = host.shadowRoot.getElementById('x');
		var out = document.getElementById('out');
		host.shadowRoot.addEventListener('mouseover', function(e) { log.push('shadow:' + e.relatedTarget.id); });
		document.addEventListener('mouseover', function(e) { log.push('document:' + e.relatedTarget.id); });
		dispatchMouse(out, 'mouseover', {relatedTarget: x});
		log.join(',');
	`)
	assert.Equal(t, "document:host", got)
}

func TestEventFocus(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var log = [];
		var a = document.getElementById('a');
		var b = document.getElementById('b');
		a.focus();
		a.addEventListener('blur', function(e) { log.push('blur:' + e.relatedTarget.id + ':' + document.activeElement.id); });
		document.addEventListener('focusout', function(e) { log.push('focusout:' + e.target.id); });
		b.addEventListener('focus', function(e) { log.push('focus:' + e.relatedTarget.id); });
		document.addEventListener('focusin', function(e) { log.push('focusin:' + e.target.id); });
		b.focus();
		log.join(',');
	`)
	assert.Equal(t, "blur:b:b,focusout:a,focus:a,focusin:b", got)
}

func TestEventWheel(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var log = [];
		var s = document.getElementById('s');
		document.addEventListener('wheel', function(e) {
			log.push(e.deltaY + ':' + e.wheelDeltaY + ':' + e.deltaMode);
		});
		var zero = dispatchWheel(s, {});
		dispatchWheel(s, {deltaY: -10, wheelTicksY: -1});
		dispatchWheel(s, {deltaY: -1, page: true});
		zero + ',' + log.join(',');
	`)
	assert.Equal(t, "true,10:-120:0,1:0:2", got)
}

func TestEventRunScoped(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var log = [];
		var s = document.getElementById('s');
		s.addEventListener('ping', function(e) { log.push('ping:' + e.target.id); });
		runScoped(function() {
			dispatchScoped(s, new Event('ping'));
			log.push('queued');
		});
		dispatchScoped(s, new Event('ping'));
		log.join(',');
	`)
	assert.Equal(t, "queued,ping:s,ping:s", got)
}

func TestEventTouchScoping(t *testing.T) {
	r := newScenarioRuntime(t, `<body>
		<div id="host"><template shadowrootmode="open"><span id="inner"></span></template></div>
	</body>`)
	got := run(t, r, `
		var log = [];
		var host = document.getElementById('host');
		var inner = host.shadowRoot.getElementById('inner');
		var touch = new Touch({identifier: 1, target: inner, clientX: 3, clientY: 4});
		function record(name) {
			return function(e) {
				log.push(name + ':' + e.touches.length + ':' + e.touches[0].target.id + ':' + e.targetTouches.length);
			};
		}
		host.shadowRoot.addEventListener('touchstart', record('shadow'));
		document.addEventListener('touchstart', record('document'));
		inner.dispatchEvent(new TouchEvent('touchstart', {
			touches: [touch], targetTouches: [touch], changedTouches: [touch]
		}));
		log.join(',');
	`)
	assert.Equal(t, "shadow:1:inner:1,document:1:host:1", got)
}

func TestEventSimulateClick(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	got := run(t, r, `
		var log = [];
		var s = document.getElementById('s');
		['mouseover', 'mousedown', 'mouseup', 'click'].forEach(function(type) {
			s.addEventListener(type, function(e) { log.push(type); });
		});
		simulateClick(s, 'overupdown');
		s.click();
		log.join(',');
	`)
	assert.Equal(t, "mouseover,mousedown,mouseup,click,click", got)
}

func TestEventWrapperLivesWithEvent(t *testing.T) {
	r := newScenarioRuntime(t, chainMarkup)
	run(t, r, `
		var count = 0, same = 0, first;
		document.addEventListener('ping', function(e) { first = e; count++; }, true);
		document.addEventListener('ping', function(e) { if (e === first) same++; });
	`)

	const n = 1000
	doc := r.Document().AsNode()
	for i := 0; i < n; i++ {
		ev := dom.NewEvent("ping", true, false)
		dom.DispatchEvent(doc, dom.NewEventDispatchMediator(ev))
		w, ok := ev.Binding().(*eventWrapper)
		require.True(t, ok, "dispatch %d left no wrapper on the event", i)
		assert.Same(t, r.Binder(), w.binder)
	}

	want := strconv.Itoa(n)
	assert.Equal(t, want+":"+want, run(t, r, `count + ':' + same`))
}
