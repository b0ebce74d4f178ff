// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlefisher666/swagger-docgen/internal/config"
)

func TestDetectProjectInfo(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantTitle string
		wantName  string
	}{
		{
			name:      "go module",
			file:      "go.mod",
			content:   "module github.com/user/myapp\n\ngo 1.21\n",
			wantTitle: "Myapp API",
			wantName:  "myapp",
		},
		{
			name:      "go module with hyphens",
			file:      "go.mod",
			content:   "module github.com/user/my-awesome-api\n",
			wantTitle: "My Awesome Api API",
			wantName:  "my-awesome-api",
		},
		{
			name:      "gradle settings",
			file:      "settings.gradle",
			content:   "rootProject.name = 'pet_store'\ninclude 'core'\n",
			wantTitle: "Pet Store API",
			wantName:  "pet_store",
		},
		{
			name:      "gradle kotlin settings",
			file:      "settings.gradle.kts",
			content:   "rootProject.name = \"inventory\"\n",
			wantTitle: "Inventory API",
			wantName:  "inventory",
		},
		{
			name: "maven pom",
			file: "pom.xml",
			content: `<project>
  <groupId>com.acme</groupId>
  <artifactId>order-service</artifactId>
</project>
`,
			wantTitle: "Order Service API",
			wantName:  "order-service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, tt.file), []byte(tt.content), 0o644))

			info := detectProjectInfo(tmpDir)

			assert.Equal(t, tt.wantName, info.Name)
			assert.Equal(t, tt.wantTitle, info.Title)
		})
	}
}

func TestDetectProjectInfo_NoBuildFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pet-clinic")
	require.NoError(t, os.Mkdir(dir, 0o755))

	info := detectProjectInfo(dir)

	assert.Equal(t, "pet-clinic", info.Name)
	assert.Equal(t, "Pet Clinic API", info.Title)
}

func TestDetectDocRoots(t *testing.T) {
	tests := []struct {
		name     string
		dirs     []string
		expected []string
	}{
		{"maven layout", []string{"src/main/java", "src/test/java"}, []string{"./src/main/java"}},
		{"plain src", []string{"src"}, []string{"./src"}},
		{"no sources", []string{"docs"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			for _, dir := range tt.dirs {
				require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, filepath.FromSlash(dir)), 0o755))
			}

			assert.Equal(t, tt.expected, detectDocRoots(tmpDir))
		})
	}
}

func TestBuildConfigYAML(t *testing.T) {
	cfg := config.Default()
	cfg.Info.Title = "Petstore"
	cfg.Info.Version = "1.0.0"
	cfg.BasePath = "/api"

	out, err := buildConfigYAML(cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "# docgen configuration file")
	assert.Contains(t, out, "title: Petstore")
	assert.Contains(t, out, "basePath: /api")
	assert.Contains(t, out, "fileName: swagger")
}

func TestInitCommand_WritesLoadableConfig(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "main", "java"), 0o755))

	saved := initTitle
	initTitle = "Petstore"
	t.Cleanup(func() { initTitle = saved })

	require.NoError(t, runInit(initCmd, nil))

	cfg, err := config.Load("docgen.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Petstore", cfg.Info.Title)
	assert.Equal(t, "1.0.0", cfg.Info.Version)
	assert.True(t, cfg.Docs.Enabled)
	assert.Equal(t, []string{"./src/main/java"}, cfg.Docs.Paths)
	assert.NoError(t, cfg.Validate())

	// refuses to overwrite without --force
	err = runInit(initCmd, nil)
	assert.ErrorContains(t, err, "already exists")

	initForce = true
	t.Cleanup(func() { initForce = false })
	assert.NoError(t, runInit(initCmd, nil))
}
