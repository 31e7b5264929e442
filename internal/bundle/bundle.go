// Package bundle reads and writes compiled declaration bundles: a parsed
// declaration set serialized with msgpack, carrying a schema version and a
// content hash of the YAML source it was compiled from. Bundles let a host
// skip YAML parsing on startup and detect stale artifacts.
package bundle

import (
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/kaki-lang/kaki/internal/declfile"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// Payload is the on-disk bundle format.
type Payload struct {
	// Schema version for safe invalidation when the format changes
	Schema uint16

	// SourceHash is the sha256 of the YAML source the bundle was compiled
	// from, letting callers detect a stale bundle next to edited source.
	SourceHash [sha256.Size]byte

	File declfile.File
}

// Compile builds a bundle payload from YAML source.
func Compile(src []byte) (*Payload, error) {
	f, err := declfile.Parse(src)
	if err != nil {
		return nil, err
	}
	return &Payload{
		Schema:     schemaVersion,
		SourceHash: sha256.Sum256(src),
		File:       *f,
	}, nil
}

// Write compiles src and writes the bundle to path. The write goes through
// a temp file and rename so a crashed writer never leaves a torn bundle.
func Write(path string, src []byte) error {
	p, err := Compile(src)
	if err != nil {
		return err
	}
	data, err := msgpack.Marshal(p)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Read loads a bundle from path, rejecting unknown schema versions.
func Read(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("bundle %s: %w", path, err)
	}
	if p.Schema != schemaVersion {
		return nil, fmt.Errorf("bundle %s: schema %d, expected %d", path, p.Schema, schemaVersion)
	}
	return &p, nil
}

// Fresh reports whether the bundle was compiled from exactly src.
func (p *Payload) Fresh(src []byte) bool {
	return p.SourceHash == sha256.Sum256(src)
}
