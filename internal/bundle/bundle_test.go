package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/kaki-lang/kaki/internal/declfile"
	"github.com/kaki-lang/kaki/internal/kernel"
)

const src = `
traits:
  - name: Named
    fields: [name]
types:
  - name: Greeter
    compose: [Named]
    constructors:
      - name: new
        params:
          - name: name
            class: keyword
            default: anonymous
`

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decls.kkb")
	if err := Write(path, []byte(src)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}

	p, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !p.Fresh([]byte(src)) {
		t.Fatal("bundle must be fresh against its own source")
	}
	if p.Fresh([]byte(src + "\n# edited")) {
		t.Fatal("edited source must read as stale")
	}

	// The payload loads into a store exactly like the YAML would.
	k := kernel.New()
	if err := declfile.Build(&p.File, k.Store()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	ty, ok := k.Store().Type("Greeter")
	if !ok {
		t.Fatal("Greeter not registered from the bundle")
	}
	if _, err := k.Instantiate(ty, "new", kernel.Args()); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
}

func TestReadRejectsUnknownSchema(t *testing.T) {
	p, err := Compile([]byte(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	p.Schema = schemaVersion + 1
	data, err := msgpack.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "future.kkb")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err = Read(path)
	if err == nil || !strings.Contains(err.Error(), "schema") {
		t.Fatalf("want a schema error, got %v", err)
	}
}

func TestCompileRejectsBadSource(t *testing.T) {
	if _, err := Compile([]byte("traits: {not: a list}")); err == nil {
		t.Fatal("malformed YAML must be rejected at compile time")
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.kkb")
	if err := os.WriteFile(path, []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("non-bundle bytes must be rejected")
	}
}
