package js

import (
	"strings"
	"testing"

	"github.com/chrisuehlinger/evdispatch/dom"
)

func TestRuntimeBasic(t *testing.T) {
	r := NewRuntime(nil)

	result, err := r.Execute("1 + 2")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 3 {
		t.Errorf("Expected 3, got %v", result.ToInteger())
	}
	if r.Document() == nil {
		t.Error("NewRuntime(nil) should create a document")
	}
}

func TestRuntimeVariables(t *testing.T) {
	r := NewRuntime(dom.NewDocument())

	if _, err := r.Execute("var x = 42;"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	result, err := r.Execute("x")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 42 {
		t.Errorf("Expected 42, got %v", result.ToInteger())
	}
}

func TestRuntimeConsole(t *testing.T) {
	r := NewRuntime(nil)

	_, err := r.Execute(`
		console.log("hello", 42);
		console.warn("careful");
		console.error("broken");
	`)
	if err != nil {
		t.Fatalf("console methods failed: %v", err)
	}

	out := r.ConsoleOutput()
	want := []string{"hello 42", "[warn] careful", "[error] broken"}
	if len(out) != len(want) {
		t.Fatalf("Expected %d console lines, got %d: %q", len(want), len(out), out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], out[i])
		}
	}
}

func TestRuntimeErrors(t *testing.T) {
	r := NewRuntime(nil)

	var reported []error
	r.SetOnError(func(err error) { reported = append(reported, err) })

	_, err := r.Execute("throw new Error('boom')")
	if err == nil {
		t.Fatal("Expected an error from throw")
	}
	if len(r.Errors()) != 1 {
		t.Fatalf("Expected 1 recorded error, got %d", len(r.Errors()))
	}
	if len(reported) != 1 {
		t.Errorf("Expected the error callback to run once, got %d", len(reported))
	}

	r.ClearErrors()
	if len(r.Errors()) != 0 {
		t.Error("ClearErrors should empty the error list")
	}
}

func TestRuntimeExecuteScript(t *testing.T) {
	r := NewRuntime(nil)

	if err := r.ExecuteScript("var y = 1;", "ok.js"); err != nil {
		t.Fatalf("ExecuteScript failed: %v", err)
	}

	err := r.ExecuteScript("var = ;", "broken.js")
	if err == nil {
		t.Fatal("Expected a compile error")
	}
	if !strings.Contains(err.Error(), "broken.js") {
		t.Errorf("error should name the script, got %v", err)
	}
}

func TestRuntimeSessionID(t *testing.T) {
	a := NewRuntime(nil)
	b := NewRuntime(nil)
	if a.SessionID() == "" {
		t.Fatal("Expected a session id")
	}
	if a.SessionID() == b.SessionID() {
		t.Error("Each runtime should have its own session id")
	}
}

func TestRuntimeDo(t *testing.T) {
	doc := dom.NewDocument()
	body := doc.CreateElement("body")
	doc.AppendChild(doc.CreateElement("html").AsNode()).AppendChild(body.AsNode())
	r := NewRuntime(doc)

	if _, err := r.Execute(`
		var clicks = 0;
		document.body.addEventListener('click', function() { clicks++; });
	`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	r.Do(func() {
		body.Click()
	})

	result, err := r.Execute("clicks")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 1 {
		t.Errorf("Expected 1 click, got %v", result.ToInteger())
	}
}
