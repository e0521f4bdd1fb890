package media

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	ffmpegReleaseVersion = "6.1"
	ffmpegReleaseBaseURL = "https://github.com/ffbinaries/ffbinaries-prebuilt/releases/download"

	envFFmpegPath  = "TEASER_FFMPEG_PATH"
	envFFprobePath = "TEASER_FFPROBE_PATH"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure locates ffmpeg and ffprobe once per process: explicit env paths
// first, then PATH, then a cached ffbinaries download.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = locate()
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func locate() (BinaryPaths, error) {
	paths := BinaryPaths{
		FFmpeg:  os.Getenv(envFFmpegPath),
		FFprobe: os.Getenv(envFFprobePath),
	}
	if paths.FFmpeg == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			paths.FFmpeg = found
		}
	}
	if paths.FFprobe == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			paths.FFprobe = found
		}
	}
	if paths.FFmpeg != "" && paths.FFprobe != "" {
		return paths, nil
	}

	installDir, err := cacheDir()
	if err != nil {
		return BinaryPaths{}, err
	}
	cached := BinaryPaths{
		FFmpeg:  filepath.Join(installDir, "ffmpeg"+executableSuffix()),
		FFprobe: filepath.Join(installDir, "ffprobe"+executableSuffix()),
	}
	if fileExists(cached.FFmpeg) && fileExists(cached.FFprobe) {
		return cached, nil
	}

	assetName, err := assetForPlatform(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return BinaryPaths{}, err
	}
	if err := download(assetName, installDir); err != nil {
		return BinaryPaths{}, err
	}
	if !fileExists(cached.FFmpeg) || !fileExists(cached.FFprobe) {
		return BinaryPaths{}, errors.New("ffmpeg binaries not found after extraction")
	}
	return cached, nil
}

func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "teaser", "ffmpeg", ffmpegReleaseVersion, runtime.GOOS, runtime.GOARCH)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create ffmpeg cache dir: %w", err)
	}
	return dir, nil
}

func assetForPlatform(goos, goarch string) (string, error) {
	switch {
	case goos == "linux" && goarch == "amd64":
		return "ffmpeg-" + ffmpegReleaseVersion + "-linux-64.zip", nil
	case goos == "linux" && goarch == "arm64":
		return "ffmpeg-" + ffmpegReleaseVersion + "-linux-arm-64.zip", nil
	case goos == "darwin" && goarch == "amd64":
		return "ffmpeg-" + ffmpegReleaseVersion + "-macos-64.zip", nil
	case goos == "windows" && goarch == "amd64":
		return "ffmpeg-" + ffmpegReleaseVersion + "-win-64.zip", nil
	default:
		return "", fmt.Errorf("unsupported platform for bundled ffmpeg: %s/%s", goos, goarch)
	}
}

func download(assetName, installDir string) error {
	url := fmt.Sprintf("%s/v%s/%s", ffmpegReleaseBaseURL, ffmpegReleaseVersion, assetName)
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("download ffmpeg bundle: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download ffmpeg bundle: unexpected status %s", resp.Status)
	}

	tmpFile, err := os.CreateTemp("", "teaser-ffmpeg-*.zip")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	archivePath := tmpFile.Name()
	defer func() { _ = os.Remove(archivePath) }()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	return extractArchive(archivePath, installDir)
}

func extractArchive(archivePath, installDir string) error {
	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open ffmpeg archive: %w", err)
	}
	defer func() { _ = zipReader.Close() }()

	found := 0
	for _, file := range zipReader.File {
		name := strings.TrimSuffix(strings.ToLower(filepath.Base(file.Name)), ".exe")
		if name != "ffmpeg" && name != "ffprobe" {
			continue
		}
		dest := filepath.Join(installDir, name+executableSuffix())
		if err := extractZipFile(file, dest); err != nil {
			return err
		}
		found++
	}
	if found < 2 {
		return fmt.Errorf("ffmpeg archive missing required binaries")
	}
	return nil
}

func extractZipFile(file *zip.File, dest string) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("open ffmpeg archive entry: %w", err)
	}
	defer func() { _ = reader.Close() }()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
	if err != nil {
		return fmt.Errorf("create ffmpeg binary: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, reader); err != nil {
		return fmt.Errorf("write ffmpeg binary: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
