package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "handle error",
			code:    "M101",
			wantMsg: "Handle used before mount",
			wantCat: CategoryRuntime,
		},
		{
			name:    "loader error",
			code:    "M201",
			wantMsg: "Custom element definition failed to load",
			wantCat: CategoryLoader,
		},
		{
			name:    "config error",
			code:    "M301",
			wantMsg: "Invalid port",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "M999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "mwc.json")
	if err.Message != `file "mwc.json" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if got := err.Error(); got != `file "mwc.json" not found` {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	sentinel := stderrors.New("boom")
	err := New("M103").Wrap(sentinel)

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}
	if got := err.Error(); got != "M103: Native call failed: boom" {
		t.Errorf("Error() = %q", got)
	}

	var coded *Error
	wrapped := fmt.Errorf("outer: %w", err)
	if !stderrors.As(wrapped, &coded) {
		t.Fatal("errors.As should find *Error")
	}
	if coded.Code != "M103" {
		t.Errorf("Code = %q, want M103", coded.Code)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "M401") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("M301")
	if got := FromError(orig, "M401"); got != orig {
		t.Error("FromError should return an existing *Error unchanged")
	}

	plain := stderrors.New("plain")
	got := FromError(plain, "M401")
	if got.Code != "M401" || got.Wrapped != plain {
		t.Errorf("FromError = %+v", got)
	}
}

func TestCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", New("M202"))
	if got := Code(err); got != "M202" {
		t.Errorf("Code() = %q, want M202", got)
	}
	if got := Code(stderrors.New("x")); got != "" {
		t.Errorf("Code() = %q, want empty", got)
	}
	if got := Code(nil); got != "" {
		t.Errorf("Code(nil) = %q, want empty", got)
	}
}

func TestFormat(t *testing.T) {
	out := New("M201").
		WithSuggestion("check assets.dir").
		Wrap(stderrors.New("no such file")).
		Format()

	for _, want := range []string{"ERROR M201", "Cause: no such file", "Hint: check assets.dir"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("registry is empty")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}

	Register("M998", ErrorTemplate{Category: CategoryCLI, Message: "test"})
	tpl, ok := GetTemplate("M998")
	if !ok || tpl.Message != "test" {
		t.Errorf("GetTemplate(M998) = %+v, %v", tpl, ok)
	}
	delete(registry, "M998")
}
