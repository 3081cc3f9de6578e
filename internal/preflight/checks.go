// Package preflight verifies the environment before a run: the whisper
// binary, directory permissions, free disk space, and translation
// credentials. Results feed the `whisparr status` command.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"whisparr/internal/config"
	"whisparr/internal/translator"
)

// Result reports one check's outcome.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minFreeBytes is the free-space floor below which the disk check fails.
// Whisper model downloads and JSON scratch output both land on disk.
const minFreeBytes = 1 << 30

// CheckBinary verifies that the named executable resolves on PATH.
func CheckBinary(name, command string) Result {
	command = strings.TrimSpace(command)
	if command == "" {
		return Result{Name: name, Detail: "command not configured"}
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("binary %q not found", command)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckDirectory verifies the path exists, is a directory, and is fully
// accessible.
func CheckDirectory(name, path string) Result {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding path has headroom for model
// and subtitle output.
func CheckDiskSpace(name, path string) Result {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s (%.1f GiB free)", path, float64(free)/float64(1<<30))
	if free < minFreeBytes {
		return Result{Name: name, Detail: detail + " below 1 GiB floor"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckTranslation verifies the configured provider parses and has an API
// key available. Skipped (passing) when translation is disabled.
func CheckTranslation(cfg config.Translation) Result {
	const name = "Translation"
	if !cfg.Enabled {
		return Result{Name: name, Passed: true, Detail: "disabled"}
	}
	provider, err := translator.ParseProvider(cfg.Provider)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unsupported provider %q", cfg.Provider)}
	}
	if strings.TrimSpace(cfg.APIKey) == "" && strings.TrimSpace(os.Getenv(provider.EnvKey())) == "" {
		return Result{Name: name, Detail: fmt.Sprintf("no API key (set %s)", provider.EnvKey())}
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = provider.DefaultModel()
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s / %s", provider, model)}
}

// Run evaluates all checks for the given configuration.
func Run(cfg *config.Config) []Result {
	results := []Result{
		CheckBinary("Whisper", cfg.Whisper.Binary),
	}
	if dir := cfg.Processing.OutputDirectory; dir != "" {
		results = append(results, CheckDirectory("Output directory", dir))
		results = append(results, CheckDiskSpace("Disk space", dir))
	} else {
		cwd, err := os.Getwd()
		if err == nil {
			results = append(results, CheckDiskSpace("Disk space", cwd))
		}
	}
	results = append(results, CheckTranslation(cfg.Translation))
	return results
}
