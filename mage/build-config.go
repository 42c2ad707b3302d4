package mage

import (
	"fmt"
	"runtime"
	"time"
)

type BuildConfig struct {
	AppLongName   string   // Long Name of the application
	AppShortName  string   // Short name of the application
	ArchType      string   // Architecture type (e.g., amd64, arm64)
	ArtifactsDir  string   // Directory where build artifacts are stored
	BuildArgs     []string // Arguments for the build command
	BuildDir      string   // Directory to place build outputs
	BuildTime     string   // Build time in RFC3339 format
	FrontendDir   string   // Directory of the frontend source code
	Commit        string   // Git commit hash
	OsType        string   // Operating system type (e.g., linux, windows)
	PackagePath   string   // Go module package path
	ReleaseAssets []string // List of release asset file paths
	Version       string   // Version of the app build
}

func NewBuildConfig() BuildConfig {
	appShortName := "argusdeck"
	now := time.Now().UTC()

	version, err := getProductVersion()
	if err != nil {
		panic(fmt.Sprintf("failed to get app version: %v", err))
	}

	cfg := BuildConfig{
		AppLongName:   "Argus Deck",
		AppShortName:  appShortName,
		ArchType:      runtime.GOARCH,
		ArtifactsDir:  "build/artifacts",
		BuildArgs:     []string{"build", "-clean", "-o", appShortName},
		BuildDir:      "build",
		BuildTime:     now.Format(time.RFC3339),
		FrontendDir:   "frontend",
		Commit:        gitRevParse(),
		OsType:        runtime.GOOS,
		PackagePath:   "github.com/argusdeck/app",
		ReleaseAssets: []string{".deb", ".rpm", ".dmg", ".zip"},
		Version:       version,
	}

	return cfg
}
