package paths

import (
	"os"
	"path/filepath"
)

const envHome = "TESTGEN_HOME_DIR"

// Home returns the base directory for testgen configuration and runtime files.
// Defaults to ~/.testgen, can be overridden via TESTGEN_HOME_DIR.
func Home() string {
	if v := os.Getenv(envHome); v != "" {
		return v
	}
	hd, err := os.UserHomeDir()
	if err != nil || hd == "" {
		return ".testgen"
	}
	return filepath.Join(hd, ".testgen")
}

func EnsureHome() (string, error) {
	h := Home()
	if err := os.MkdirAll(h, 0o755); err != nil {
		return "", err
	}
	return h, nil
}
