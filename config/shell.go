package config

import (
	"strings"

	"fupa/services/shellcache"
)

const ShellCachePrefix = "fupa-snack-shell"

// ShellPaths are the resources the PWA needs to start offline.
var ShellPaths = []string{
	"/",
	"/index.html",
	"/karyawan.html",
	"/admin.html",
	"/app.js",
	"/manifest.webmanifest",
	"/service-worker.js",
}

// ShellSettings locates the PWA origin and names the cache version.
// Origin wins over Dir when both are set.
type ShellSettings struct {
	Origin  string
	Dir     string
	Version string
	Paths   []string
}

func LoadShellSettings() ShellSettings {
	paths := ShellPaths
	if raw := GetEnv("SHELL_PATHS"); strings.TrimSpace(raw) != "" {
		paths = nil
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
	}
	return ShellSettings{
		Origin:  GetEnv("SHELL_ORIGIN"),
		Dir:     GetEnvDefault("SHELL_DIR", "web"),
		Version: GetEnvDefault("SHELL_CACHE_VERSION", "v1"),
		Paths:   paths,
	}
}

func (s ShellSettings) Manifest() shellcache.Manifest {
	return shellcache.Manifest{
		Prefix:  ShellCachePrefix,
		Version: s.Version,
		Paths:   append([]string(nil), s.Paths...),
	}
}
