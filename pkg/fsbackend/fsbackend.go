package fsbackend

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/cuemby/brokerage/pkg/log"
	"github.com/cuemby/brokerage/pkg/types"
)

// osTag maps the running GOOS to the tag used in the rendezvous directory
// name, per spec.md §6: windows, osx, linux.
func osTag() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "osx"
	default:
		return "linux"
	}
}

// EffectiveRoot computes <root>/main/<protocolVersion>.<osTag>/ terminated
// with the platform's directory separator, per spec.md §3.
func EffectiveRoot(root string, protocolVersion uint32) string {
	dirName := strconv.FormatUint(uint64(protocolVersion), 10) + "." + osTag()
	return filepath.Join(root, "main", dirName) + string(filepath.Separator)
}

// Backend manages sentinel files under a single versioned rendezvous
// directory.
type Backend struct {
	root string // already versioned, trailing separator
}

// New returns a Backend rooted at <root>/main/<protocolVersion>.<osTag>/.
func New(root string, protocolVersion uint32) *Backend {
	return &Backend{
		root: EffectiveRoot(root, protocolVersion),
	}
}

// Root returns the effective, versioned rendezvous directory.
func (b *Backend) Root() string {
	return b.root
}

// SentinelPath returns the path of the sentinel file for the given host
// identity.
func (b *Backend) SentinelPath(identity types.HostIdentity) string {
	return filepath.Join(b.root, string(identity))
}

// Exists reports whether the sentinel file for identity is currently
// present.
func (b *Backend) Exists(identity types.HostIdentity) bool {
	_, err := os.Stat(b.SentinelPath(identity))
	return err == nil
}

// Announce ensures the rendezvous directory exists and creates an empty
// sentinel file for identity. If the file already exists this is a no-op
// (spec.md §4.4: "create-if-missing").
func (b *Backend) Announce(identity types.HostIdentity) error {
	if err := os.MkdirAll(b.root, 0o755); err != nil {
		return err
	}

	path := b.SentinelPath(identity)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	return f.Close()
}

// Revoke deletes the sentinel file for identity. A missing file is not an
// error.
func (b *Backend) Revoke(identity types.HostIdentity) error {
	err := os.Remove(b.SentinelPath(identity))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Enumerate lists the worker identifiers currently present in the
// rendezvous directory. A missing directory is treated as "no workers"
// with a warning, not an error (spec.md §4.4, §7).
func (b *Backend) Enumerate() ([]string, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithComponent("fsbackend").Warn().Str("root", b.root).Msg("rendezvous directory missing, reporting no workers")
			return nil, nil
		}
		return nil, err
	}

	workers := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		workers = append(workers, entry.Name())
	}

	if len(workers) == 0 {
		log.WithComponent("fsbackend").Warn().Str("root", b.root).Msg("rendezvous directory empty, reporting no workers")
	}

	return workers, nil
}
