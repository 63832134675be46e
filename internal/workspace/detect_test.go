package workspace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		wantKind Kind
		want     []string
	}{
		{
			name: "pnpm quoted and bare items",
			files: map[string]string{
				"pnpm-workspace.yaml": "packages:\n  - 'packages/*'\n  - \"apps/*\"\n  - tools/cli\n",
			},
			wantKind: KindPnpm,
			want:     []string{"packages/*", "apps/*", "tools/cli"},
		},
		{
			name: "pnpm wins over nx",
			files: map[string]string{
				"pnpm-workspace.yaml": "packages:\n  - 'libs/*'\n",
				"nx.json":             "{}",
			},
			wantKind: KindPnpm,
			want:     []string{"libs/*"},
		},
		{
			name:     "lerna default patterns",
			files:    map[string]string{"lerna.json": `{"version": "1.0.0"}`},
			wantKind: KindLerna,
			want:     []string{"packages/*"},
		},
		{
			name:     "lerna explicit patterns",
			files:    map[string]string{"lerna.json": `{"packages": ["modules/*"]}`},
			wantKind: KindLerna,
			want:     []string{"modules/*"},
		},
		{
			name: "malformed lerna falls through to nx",
			files: map[string]string{
				"lerna.json": `{"packages": [`,
				"nx.json":    "not even json",
			},
			wantKind: KindNx,
			want:     []string{"packages/*", "apps/*", "libs/*"},
		},
		{
			name: "turbo with array workspaces",
			files: map[string]string{
				"turbo.json":   "{}",
				"package.json": `{"workspaces": ["apps/*", "packages/*"]}`,
			},
			wantKind: KindTurbo,
			want:     []string{"apps/*", "packages/*"},
		},
		{
			name:     "npm object form",
			files:    map[string]string{"package.json": `{"workspaces": {"packages": ["pkgs/*"]}}`},
			wantKind: KindNpm,
			want:     []string{"pkgs/*"},
		},
		{
			name: "pnpm without items falls through to npm",
			files: map[string]string{
				"pnpm-workspace.yaml": "catalog:\n  react: ^18\n",
				"package.json":        `{"workspaces": ["packages/*"]}`,
			},
			wantKind: KindNpm,
			want:     []string{"packages/*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files)

			got := Detect(root)
			if got == nil {
				t.Fatal("Detect() = nil, want descriptor")
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if diff := cmp.Diff(tt.want, got.Patterns); diff != "" {
				t.Errorf("Patterns mismatch (-want +got):\n%s", diff)
			}
			if got.Root != root {
				t.Errorf("Root = %q, want %q", got.Root, root)
			}
		})
	}
}

func TestDetect_None(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"empty directory", nil},
		{"plain package", map[string]string{"package.json": `{"name": "single"}`}},
		{"empty workspaces", map[string]string{"package.json": `{"workspaces": []}`}},
		{"broken package.json", map[string]string{"package.json": `{`}},
		{"turbo without workspaces", map[string]string{"turbo.json": "{}", "package.json": `{}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files)
			if got := Detect(root); got != nil {
				t.Errorf("Detect() = %+v, want nil", got)
			}
		})
	}
}
