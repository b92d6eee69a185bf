package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
)

type codedErr struct{}

func (codedErr) Error() string { return "boom" }
func (codedErr) Code() string  { return "Q040" }

func TestNew(t *testing.T) {
	err := New("Q001")

	if err.Code != "Q001" {
		t.Errorf("Code = %q, want Q001", err.Code)
	}
	if err.Category != CategorySetup {
		t.Errorf("Category = %q, want setup", err.Category)
	}
	if err.Message != "Selector matched no elements" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Suggestion == "" {
		t.Error("Suggestion should come from the template")
	}
	if !err.Fatal() {
		t.Error("setup errors are fatal")
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("Q999")
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "bad flag %s", "--x")
	if err.Message != "bad flag --x" || err.Category != CategoryCLI {
		t.Errorf("got %+v", err)
	}
	if err.Fatal() {
		t.Error("cli errors are not fatal")
	}
}

func TestQuasarError_Error(t *testing.T) {
	err := New("Q020").Wrap(stderrors.New("counter"))
	if got := err.Error(); got != "Q020: Missing state key: counter" {
		t.Errorf("Error() = %q", got)
	}
}

func TestQuasarError_Unwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := New("Q021").Wrap(inner)
	if !stderrors.Is(err, inner) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "Q082") != nil {
		t.Error("FromError(nil) should be nil")
	}

	q := New("Q060")
	if FromError(q, "Q082") != q {
		t.Error("QuasarError should pass through")
	}

	coded := FromError(codedErr{}, "Q082")
	if coded.Code != "Q040" {
		t.Errorf("Code = %q, want Q040", coded.Code)
	}

	plain := FromError(stderrors.New("x"), "Q082")
	if plain.Code != "Q082" {
		t.Errorf("Code = %q, want Q082", plain.Code)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("Q040").Wrap(stderrors.New("key counter"))
	out := err.Format()

	for _, want := range []string{
		"ERROR Q040 [invariant]:",
		"Reentrant state access",
		"Cause: key counter",
		"Hint:  Move the write",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, New("Q080"))
	if !strings.Contains(buf.String(), "Q080") {
		t.Errorf("got %q", buf.String())
	}
}

func TestRegistry(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Fatalf("GetTemplate(%s) missing", code)
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s: incomplete template", code)
		}
	}

	Register("Q098", ErrorTemplate{Category: CategoryCLI, Message: "test"})
	if _, ok := GetTemplate("Q098"); !ok {
		t.Error("Register should add the template")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	if len(lines) != 3 {
		t.Errorf("lines = %q", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should yield nil")
	}
}
