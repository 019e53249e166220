// Package detect locates a source file's project root and infers a project
// name from the nearest build marker, grounded on
// inspector/repository/detector.go's marker-walk-up strategy. It is a
// standalone helper: no other package of this module calls it, and
// ir.Config.ProjectName is never filled from it automatically.
package detect

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Project describes the detected project root and its inferred type/name.
type Project struct {
	RootPath string
	Type     string // "go", "java", "unknown"
	Name     string
}

// markers lists build files searched for, in the same precedence order as
// inspector/repository/detector.go's Detector.markers.
var markers = []string{"go.mod", "pom.xml", "build.gradle"}

// DetectProject walks up from filePath looking for a build marker, returning the
// directory containing it plus a best-effort project name. If no marker is
// found, RootPath falls back to filePath's containing directory and Type is
// "unknown".
func DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	root, marker := findRoot(startDir)
	if root == "" {
		return &Project{RootPath: startDir, Type: "unknown", Name: filepath.Base(startDir)}, nil
	}

	proj := &Project{RootPath: root, Type: projectType(marker)}
	proj.Name = projectName(root, marker)
	return proj, nil
}

func findRoot(startDir string) (dir, marker string) {
	dir = startDir
	for {
		for _, m := range markers {
			candidate := filepath.Join(dir, m)
			if _, err := os.Stat(candidate); err == nil {
				return dir, m
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

func projectType(marker string) string {
	switch marker {
	case "go.mod":
		return "go"
	case "pom.xml", "build.gradle":
		return "java"
	default:
		return "unknown"
	}
}

func projectName(root, marker string) string {
	switch marker {
	case "go.mod":
		return goModuleName(filepath.Join(root, "go.mod"))
	case "pom.xml":
		return mavenArtifactID(filepath.Join(root, "pom.xml"))
	case "build.gradle":
		return gradleProjectName(filepath.Join(root, "build.gradle"))
	default:
		return filepath.Base(root)
	}
}

// goModuleName parses go.mod with golang.org/x/mod/modfile, reading the
// file through afs.Service the way inspector/repository/detector.go does,
// falling back to os.ReadFile if the afs download fails.
func goModuleName(goModPath string) string {
	fs := afs.New()
	if content, err := fs.DownloadWithURL(context.Background(), goModPath); err == nil && len(content) > 0 {
		if mod, err := modfile.Parse(goModPath, content, nil); err == nil && mod.Module != nil {
			return mod.Module.Mod.Path
		}
	}
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return filepath.Base(filepath.Dir(goModPath))
	}
	if mod, err := modfile.Parse(goModPath, data, nil); err == nil && mod.Module != nil {
		return mod.Module.Mod.Path
	}
	return filepath.Base(filepath.Dir(goModPath))
}

var artifactIDPattern = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)

func mavenArtifactID(pomPath string) string {
	data, err := os.ReadFile(pomPath)
	if err != nil {
		return filepath.Base(filepath.Dir(pomPath))
	}
	if m := artifactIDPattern.FindSubmatch(data); len(m) == 2 {
		return string(m[1])
	}
	return filepath.Base(filepath.Dir(pomPath))
}

var gradleNamePattern = regexp.MustCompile(`(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`)

func gradleProjectName(gradlePath string) string {
	data, err := os.ReadFile(gradlePath)
	if err != nil {
		return filepath.Base(filepath.Dir(gradlePath))
	}
	if m := gradleNamePattern.FindSubmatch(data); len(m) == 2 {
		return string(m[1])
	}
	return filepath.Base(filepath.Dir(gradlePath))
}
