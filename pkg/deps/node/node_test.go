package node

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/depdoc/pkg/deps"
	"github.com/matzehuels/depdoc/pkg/errors"
)

const testPackageJSON = `{
  "name": "my-app",
  "version": "1.0.0",
  "dependencies": {
    "express": "^4.18.0",
    "@types/node": "^20.0.0"
  },
  "devDependencies": {
    "jest": "^29.0.0"
  }
}`

const testLockV3 = `{
  "name": "my-app",
  "lockfileVersion": 3,
  "packages": {
    "": {"name": "my-app", "version": "1.0.0"},
    "node_modules/express": {"version": "4.18.2"},
    "node_modules/@types/node": {"version": "20.10.5"},
    "node_modules/jest": {"version": "29.7.0", "dev": true},
    "node_modules/jest/node_modules/express": {"version": "3.0.0"}
  }
}`

const testLockV1 = `{
  "name": "my-app",
  "lockfileVersion": 1,
  "dependencies": {
    "express": {"version": "4.17.1"},
    "@types/node": {"version": "18.0.0"},
    "jest": {"version": "27.5.1", "dev": true}
  }
}`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestAdapter_Detect(t *testing.T) {
	a := Adapter{}
	if !a.Detect(writeProject(t, map[string]string{ProjectFile: "{}"})) {
		t.Error("Detect() = false for directory with package.json")
	}
	if a.Detect(t.TempDir()) {
		t.Error("Detect() = true for empty directory")
	}
}

func TestAdapter_Installed(t *testing.T) {
	tests := []struct {
		name string
		lock string
		want []deps.Package
	}{
		{
			name: "lockfile v3",
			lock: testLockV3,
			want: []deps.Package{
				{Manager: deps.Node, Name: "@types/node", Version: "20.10.5"},
				{Manager: deps.Node, Name: "express", Version: "4.18.2"},
				{Manager: deps.Node, Name: "jest", Version: "29.7.0", Group: deps.DevGroup},
			},
		},
		{
			name: "lockfile v1",
			lock: testLockV1,
			want: []deps.Package{
				{Manager: deps.Node, Name: "@types/node", Version: "18.0.0"},
				{Manager: deps.Node, Name: "express", Version: "4.17.1"},
				{Manager: deps.Node, Name: "jest", Version: "27.5.1", Group: deps.DevGroup},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeProject(t, map[string]string{ProjectFile: testPackageJSON, LockFile: tt.lock})
			inv, err := Adapter{}.Installed(dir)
			if err != nil {
				t.Fatalf("Installed failed: %v", err)
			}
			got := inv.All()
			if len(got) != len(tt.want) {
				t.Fatalf("Installed returned %d packages, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("package[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAdapter_InstalledErrors(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		wantCode errors.Code
	}{
		{
			name:     "missing lockfile",
			files:    map[string]string{ProjectFile: testPackageJSON},
			wantCode: errors.ErrCodeFileSystem,
		},
		{
			name:     "malformed package.json",
			files:    map[string]string{ProjectFile: `{"dependencies": []}`, LockFile: testLockV3},
			wantCode: errors.ErrCodeParse,
		},
		{
			name:     "malformed lockfile",
			files:    map[string]string{ProjectFile: testPackageJSON, LockFile: "not json"},
			wantCode: errors.ErrCodeParse,
		},
		{
			name: "dependency not locked",
			files: map[string]string{
				ProjectFile: `{"dependencies": {"left-pad": "^1.3.0"}}`,
				LockFile:    `{"lockfileVersion": 3, "packages": {}}`,
			},
			wantCode: errors.ErrCodeParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Adapter{}.Installed(writeProject(t, tt.files))
			if err == nil {
				t.Fatal("Installed() expected error, got nil")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Installed() error code = %q, want %q (%v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}
