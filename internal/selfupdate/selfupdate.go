package selfupdate

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	githubRepo = "cmdremind/cli"
	githubAPI  = "https://api.github.com/repos/" + githubRepo + "/releases/latest"
	timeout    = 10 * time.Second
)

// Release represents a GitHub release.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset represents a release asset.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// CheckAndUpdate checks for a newer release and attempts an in-place
// update. It is best-effort: every failure path returns nil so the
// user's actual command is never blocked by the updater.
func CheckAndUpdate(currentVersion string) error {
	if os.Getenv("REMIND_NO_SELF_UPDATE") == "1" {
		return nil
	}

	// Skip dev builds.
	if currentVersion == "" || currentVersion == "dev" || !strings.HasPrefix(currentVersion, "v") {
		return nil
	}

	state, err := LoadState()
	if err != nil {
		return nil
	}

	if !state.ShouldCheck(defaultTTL) {
		return nil
	}

	release, err := fetchLatestRelease()
	if err != nil {
		// Record the attempt even on error to avoid hammering GitHub.
		state.MarkChecked()
		_ = state.SaveState()
		return nil
	}

	state.MarkChecked()
	_ = state.SaveState()

	if release.TagName == currentVersion {
		return nil
	}

	assetName := assetNameForPlatform()
	asset := findAsset(release.Assets, assetName)
	if asset == nil {
		return nil
	}

	exePath, err := os.Executable()
	if err != nil {
		return nil
	}
	exePath, err = filepath.EvalSymlinks(exePath)
	if err != nil {
		return nil
	}

	if !canWriteToPath(exePath) {
		// Only warn once per version.
		if state.ShouldWarnForVersion(release.TagName) {
			printManualUpdateInstructions(currentVersion, release.TagName, asset.BrowserDownloadURL, exePath)
			state.MarkWarnedForVersion(release.TagName)
			_ = state.SaveState()
		}
		return nil
	}

	if err := downloadAndReplace(asset.BrowserDownloadURL, exePath); err != nil {
		return nil
	}

	fmt.Printf("✓ Updated remind from %s to %s\n", currentVersion, release.TagName)
	fmt.Println("  Please re-run your command to use the new version.")

	return nil
}

func fetchLatestRelease() (*Release, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(githubAPI)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}

	return &release, nil
}

func assetNameForPlatform() string {
	return fmt.Sprintf("remind-%s-%s", runtime.GOOS, runtime.GOARCH)
}

func findAsset(assets []Asset, name string) *Asset {
	for _, asset := range assets {
		if asset.Name == name {
			return &asset
		}
	}
	return nil
}

func canWriteToPath(path string) bool {
	dir := filepath.Dir(path)
	testFile := filepath.Join(dir, ".remind-write-test")

	f, err := os.Create(testFile)
	if err != nil {
		return false
	}
	_ = f.Close()
	_ = os.Remove(testFile)

	return true
}

func downloadAndReplace(url, targetPath string) error {
	// Temp file in the same directory so the final rename is atomic.
	dir := filepath.Dir(targetPath)
	tmpFile, err := os.CreateTemp(dir, ".remind-update-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		_ = tmpFile.Close()
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_ = tmpFile.Close()
		return fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		_ = tmpFile.Close()
		return err
	}
	_ = tmpFile.Close()

	if err := os.Chmod(tmpPath, 0755); err != nil {
		return err
	}

	return os.Rename(tmpPath, targetPath)
}

func printManualUpdateInstructions(currentVersion, newVersion, downloadURL, exePath string) {
	fmt.Printf("\nUpdate available: %s → %s\n\n", currentVersion, newVersion)
	fmt.Printf("The remind binary is installed in a location that requires\n")
	fmt.Printf("elevated permissions to update. To update manually, run:\n\n")
	fmt.Printf("  curl -L %s -o /tmp/remind\n", downloadURL)
	fmt.Printf("  chmod +x /tmp/remind\n")
	fmt.Printf("  sudo mv /tmp/remind %s\n\n", exePath)
}
