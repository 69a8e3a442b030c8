package credential

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchFileNotifiesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"keys": ["AIzaSyA-one"]}`), 0o600))

	changed := make(chan struct{})
	var once sync.Once
	w := WatchFile(path, func() {
		once.Do(func() { close(changed) })
	})
	defer w.Stop()

	// Give the watcher a moment to establish itself before mutating the file.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"keys": ["AIzaSyB-two"]}`), 0o600))

	select {
	case <-changed:
	case <-time.After(10 * time.Second):
		t.Fatal("watcher did not report the file change")
	}
}

func TestWatchFileSurvivesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"keys": ["AIzaSyA-one"]}`), 0o600))

	changes := make(chan struct{}, 4)
	w := WatchFile(path, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer w.Stop()

	time.Sleep(200 * time.Millisecond)

	// Editors and config management tools replace files by writing a
	// sibling and renaming it over the target.
	replace := func(content string) {
		tmp := filepath.Join(dir, "keys.json.tmp")
		require.NoError(t, os.WriteFile(tmp, []byte(content), 0o600))
		require.NoError(t, os.Rename(tmp, path))
	}

	replace(`{"keys": ["AIzaSyB-two"]}`)
	select {
	case <-changes:
	case <-time.After(10 * time.Second):
		t.Fatal("watcher missed the first rename-over")
	}

	// A second replace must still be seen: the directory watch keeps the
	// watcher alive after the original inode went away.
	time.Sleep(200 * time.Millisecond)
	replace(`{"keys": ["AIzaSyC-three"]}`)
	select {
	case <-changes:
	case <-time.After(10 * time.Second):
		t.Fatal("watcher went dead after the first rename-over")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"keys": []}`), 0o600))

	w := WatchFile(path, func() {})
	w.Stop()
	w.Stop()
}
