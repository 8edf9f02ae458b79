package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

type fakeFetcher struct {
	pages  map[string]string
	calls  int
	closed bool
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls++
	page, ok := f.pages[url]
	if !ok {
		return "", errors.New("not found")
	}
	return page, nil
}

func (f *fakeFetcher) Close() error {
	f.closed = true
	return nil
}

func (f *fakeFetcher) Type() string { return "fake" }

func TestIsURL(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"https://example.com", true},
		{"HTTP://example.com", true},
		{"page.html", false},
		{"ftp://example.com", false},
		{"-", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.arg); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(`<p class="x">hi</p>`), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(Options{}, nil)
	in, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if in.Name != path || in.HTML != `<p class="x">hi</p>` {
		t.Errorf("unexpected input: %+v", in)
	}

	if _, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoader_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.html")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader(Options{}, nil).Load(context.Background(), path)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestLoader_Stdin(t *testing.T) {
	for _, arg := range []string{"", "-"} {
		l := NewLoader(Options{}, strings.NewReader("<div>x</div>"))
		in, err := l.Load(context.Background(), arg)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", arg, err)
		}
		if in.Name != Stdin || in.HTML != "<div>x</div>" {
			t.Errorf("Load(%q) = %+v", arg, in)
		}
	}

	t.Run("read error", func(t *testing.T) {
		l := NewLoader(Options{}, iotest.ErrReader(errors.New("boom")))
		if _, err := l.Load(context.Background(), "-"); err == nil || !strings.Contains(err.Error(), "boom") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("no reader", func(t *testing.T) {
		if _, err := NewLoader(Options{}, nil).Load(context.Background(), "-"); err == nil {
			t.Error("expected error without stdin")
		}
	})
}

func TestLoader_URLUsesSingleFetcher(t *testing.T) {
	fake := &fakeFetcher{pages: map[string]string{
		"https://a.test/": "<p>a</p>",
		"https://b.test/": "<p>b</p>",
	}}
	created := 0

	l := NewLoader(Options{Mode: ModeDynamic}, nil)
	l.newFetcher = func(opts Options) (Fetcher, error) {
		created++
		if opts.Mode != ModeDynamic {
			t.Errorf("expected dynamic mode, got %q", opts.Mode)
		}
		return fake, nil
	}

	for _, url := range []string{"https://a.test/", "https://b.test/"} {
		if _, err := l.Load(context.Background(), url); err != nil {
			t.Fatalf("Load(%q) error = %v", url, err)
		}
	}
	if created != 1 || fake.calls != 2 {
		t.Errorf("expected one fetcher and two fetches, got %d and %d", created, fake.calls)
	}

	_, err := l.Load(context.Background(), "https://c.test/")
	if err == nil || !strings.Contains(err.Error(), "(fake)") {
		t.Errorf("expected wrapped fetch error, got %v", err)
	}

	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fake.closed {
		t.Error("expected fetcher to be closed")
	}
}

func TestLoader_CloseWithoutFetcher(t *testing.T) {
	if err := NewLoader(Options{}, nil).Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewFetcher_UnknownMode(t *testing.T) {
	if _, err := NewFetcher(Options{Mode: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown mode")
	}
	f, err := NewFetcher(Options{Mode: ModeStatic})
	if err != nil {
		t.Fatalf("NewFetcher() error = %v", err)
	}
	if f.Type() != ModeStatic {
		t.Errorf("Type() = %q, want static", f.Type())
	}
}

func TestStaticFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
			return
		case "/ua":
			_, _ = w.Write([]byte(r.UserAgent()))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<div class="card">Hello</div>`))
	}))
	defer srv.Close()

	f := NewStatic(Options{UserAgent: "scrub-test", Timeout: DefaultOptions().Timeout})

	t.Run("ok", func(t *testing.T) {
		html, err := f.Fetch(context.Background(), srv.URL+"/page")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if html != `<div class="card">Hello</div>` {
			t.Errorf("Fetch() = %q", html)
		}
	})

	t.Run("user agent", func(t *testing.T) {
		ua, err := f.Fetch(context.Background(), srv.URL+"/ua")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if ua != "scrub-test" {
			t.Errorf("expected user agent scrub-test, got %q", ua)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/missing")
		if err == nil || !strings.Contains(err.Error(), "404") {
			t.Errorf("expected HTTP 404 error, got %v", err)
		}
	})
}

func TestLoader_StaticURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<p>served</p>`))
	}))
	defer srv.Close()

	l := NewLoader(Options{}, nil)
	defer l.Close()

	in, err := l.Load(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if in.Name != srv.URL || in.HTML != `<p>served</p>` {
		t.Errorf("unexpected input: %+v", in)
	}
}

func TestFindChromePath(t *testing.T) {
	old := lookPath
	t.Cleanup(func() { lookPath = old })

	lookPath = func(name string) (string, error) {
		if name == "chromium" {
			return "/usr/bin/chromium", nil
		}
		return "", errors.New("not found")
	}
	if got := FindChromePath(); got != "/usr/bin/chromium" {
		t.Errorf("FindChromePath() = %q", got)
	}

	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	if got := FindChromePath(); got != "" {
		t.Errorf("FindChromePath() = %q, want empty", got)
	}
}
