package gps

import "testing"

func TestLoadFromDiskSelfProvides(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "zlib", "Name: zlib\nVersion: 1.2.13\n")
	client := testClient(t, dir)

	pkg, err := loadFromDisk(client, "zlib")
	if err != nil {
		t.Fatalf("loadFromDisk: %v", err)
	}
	if !pkg.VerifyDependency(NewDependency("zlib")) {
		t.Error("expected self-provides to satisfy an unversioned dependency on its own id")
	}
	entries := pkg.Provides.Entries()
	if len(entries) == 0 || entries[0].Package != "zlib" {
		t.Errorf("expected self-provides entry first, got %+v", entries)
	}
}

func TestLoadFromDiskUninstalledFlag(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "foo-uninstalled", "Name: foo\nVersion: 1.0\n")
	client := testClient(t, dir)

	pkg, err := loadFromDisk(client, "foo-uninstalled")
	if err != nil {
		t.Fatalf("loadFromDisk: %v", err)
	}
	if !pkg.Flags.has(FlagUninstalled) {
		t.Error("expected FlagUninstalled to be set for a -uninstalled stem")
	}
}

func TestLoadFromDiskNotFound(t *testing.T) {
	dir := t.TempDir()
	client := testClient(t, dir)
	_, err := loadFromDisk(client, "nope")
	if _, ok := err.(*PackageNotFoundError); !ok {
		t.Errorf("expected *PackageNotFoundError, got %T (%v)", err, err)
	}
}

func TestFindPcPathAcceptsLiteralPath(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "explicit", "Name: explicit\nVersion: 1.0\n")
	client := testClient(t, dir)

	path, ok := findPcPath(client, dir+"/explicit.pc")
	if !ok || path != dir+"/explicit.pc" {
		t.Errorf("findPcPath() = %q, %v; want the literal path", path, ok)
	}
}
