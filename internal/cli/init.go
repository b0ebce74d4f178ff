// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/littlefisher666/swagger-docgen/internal/config"
)

var (
	initForce       bool
	initInteractive bool
	initTitle       string
	initVersion     string
	initDescription string
	initBasePath    string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new docgen configuration file",
	Long: `Initialize a new docgen configuration file in the current directory.

This command creates a docgen.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Infers the API title from pom.xml, build.gradle or go.mod
  - Enables doc comments when a Java source root is found
  - Sets up appropriate exclude patterns

Example:
  docgen init                         # Create config with detected defaults
  docgen init --force                 # Overwrite existing config
  docgen init --interactive           # Interactive mode with prompts
  docgen init --title "Petstore"      # Set custom API title
  docgen init --base-path /api        # Set the API base path`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().StringVar(&initTitle, "title", "", "API title for the info section")
	initCmd.Flags().StringVar(&initVersion, "version", "1.0.0", "API version for the info section")
	initCmd.Flags().StringVar(&initDescription, "description", "", "API description for the info section")
	initCmd.Flags().StringVar(&initBasePath, "base-path", "", "base path the API is served on")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := "docgen.yaml"

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	cfg := config.Default()
	info := detectProjectInfo(projectRoot)

	if initTitle != "" {
		cfg.Info.Title = initTitle
	} else {
		cfg.Info.Title = info.Title
	}
	cfg.Info.Version = initVersion
	cfg.Info.Description = initDescription
	cfg.BasePath = initBasePath

	if roots := detectDocRoots(projectRoot); len(roots) > 0 {
		cfg.Docs.Enabled = true
		cfg.Docs.Paths = roots
		printVerbose("Detected doc roots: %s", strings.Join(roots, ", "))
	}

	if initInteractive && isTerminal() {
		cfg, err = interactiveInit(cfg)
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	out, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFile, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Title: %s", cfg.Info.Title)
	printVerbose("Output: %s/%s", cfg.Output.Dir, cfg.Output.FileName)

	return nil
}

// projectInfo holds information detected from the project.
type projectInfo struct {
	Title string
	Name  string
}

// buildFiles are read in order; the first that names the project wins.
var buildFiles = []struct {
	file   string
	prefix string
}{
	{"go.mod", "module "},
	{"settings.gradle", "rootProject.name"},
	{"settings.gradle.kts", "rootProject.name"},
	{"pom.xml", "<artifactId>"},
}

// detectProjectInfo derives a title from the project's build file, falling
// back to the directory name.
func detectProjectInfo(projectRoot string) projectInfo {
	name := ""
	for _, bf := range buildFiles {
		if name = readProjectName(filepath.Join(projectRoot, bf.file), bf.prefix); name != "" {
			break
		}
	}
	if name == "" {
		name = filepath.Base(projectRoot)
	}

	// e.g., "github.com/user/pet-store" -> "Pet Store API"
	parts := strings.Split(name, "/")
	name = parts[len(parts)-1]
	words := strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(name)

	return projectInfo{
		Name:  name,
		Title: cases.Title(language.English).String(words) + " API",
	}
}

// readProjectName returns the value on the first line starting with prefix.
func readProjectName(path, prefix string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		value := strings.TrimPrefix(line, prefix)
		value = strings.TrimSuffix(value, "</artifactId>")
		value = strings.TrimLeft(value, " =")
		return strings.Trim(value, `"' `)
	}
	return ""
}

// detectDocRoots returns the Java source roots present in the project.
func detectDocRoots(projectRoot string) []string {
	var roots []string
	for _, candidate := range []string{"src/main/java", "src"} {
		full := filepath.Join(projectRoot, filepath.FromSlash(candidate))
		if stat, err := os.Stat(full); err == nil && stat.IsDir() {
			roots = append(roots, "./"+candidate)
			break
		}
	}
	return roots
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts the user for configuration options.
func interactiveInit(cfg *config.Config) (*config.Config, error) {
	reader := bufio.NewReader(os.Stdin)

	prompt := func(label string, value *string) {
		fmt.Printf("%s [%s]: ", label, *value)
		answer, _ := reader.ReadString('\n')
		if answer = strings.TrimSpace(answer); answer != "" {
			*value = answer
		}
	}

	prompt("API Title", &cfg.Info.Title)
	prompt("API Version", &cfg.Info.Version)
	prompt("API Description", &cfg.Info.Description)
	prompt("Base path", &cfg.BasePath)
	prompt("Output directory", &cfg.Output.Dir)

	formats := strings.Join(cfg.Output.Formats, ",")
	prompt("Output formats (json,yaml,openapi3)", &formats)
	cfg.Output.Formats = strings.Split(formats, ",")

	return cfg, nil
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# docgen configuration file
# Descriptor files matching source.include are read from source.paths.

`
	return header + string(data), nil
}
