package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid  int
	exe  string
	ppid int
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return p.ppid }
func (p fakeProcess) Executable() string { return p.exe }

func lockPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "widget.lock")
}

func TestAcquireAndRelease(t *testing.T) {
	path := lockPath(t)

	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}
	wantPrefix := fmt.Sprintf("%d|", os.Getpid())
	if got := string(content); len(got) < len(wantPrefix) || got[:len(wantPrefix)] != wantPrefix {
		t.Errorf("lockfile content = %q, want pid prefix %q", got, wantPrefix)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("lockfile still present after Release")
	}
}

func TestAcquireRefusesLiveHolder(t *testing.T) {
	path := lockPath(t)
	if err := os.WriteFile(path, []byte("4242|arttimer"), 0600); err != nil {
		t.Fatal(err)
	}

	old := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		return fakeProcess{pid: pid, exe: "arttimer"}, nil
	}
	t.Cleanup(func() { findProcessFunc = old })

	if _, err := Acquire(path); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	path := lockPath(t)
	if err := os.WriteFile(path, []byte("4242|arttimer"), 0600); err != nil {
		t.Fatal(err)
	}

	old := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		return nil, nil // holder pid is dead
	}
	t.Cleanup(func() { findProcessFunc = old })

	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire over stale lock: %v", err)
	}
	defer lock.Release()
}

func TestAcquireIgnoresDifferentExecutable(t *testing.T) {
	path := lockPath(t)
	if err := os.WriteFile(path, []byte("4242|some-other-tool"), 0600); err != nil {
		t.Fatal(err)
	}

	old := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		return fakeProcess{pid: pid, exe: "arttimer"}, nil
	}
	t.Cleanup(func() { findProcessFunc = old })

	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire over recycled pid: %v", err)
	}
	defer lock.Release()
}

func TestAcquireIgnoresMalformedLockfile(t *testing.T) {
	path := lockPath(t)
	if err := os.WriteFile(path, []byte("not a lockfile"), 0600); err != nil {
		t.Fatal(err)
	}

	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire over malformed lock: %v", err)
	}
	defer lock.Release()
}
