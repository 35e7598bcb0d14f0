package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/programme-lv/autograder/internal/config"
)

// loadEnvFiles loads the dotenv files named by --env-file and <root>/.env
// into the process environment. It runs before the command line is parsed
// because flag env sources are read during parsing.
func loadEnvFiles(args []string) error {
	envFile := envOr("AUTOGRADER_ENV_FILE", ".env")
	root := envOr("AUTOGRADER_ROOT", ".")
	if v, ok := scanFlag(args, "env-file"); ok {
		envFile = v
	}
	if v, ok := scanFlag(args, "root"); ok {
		root = v
	}
	return config.LoadEnv(envFile, filepath.Join(root, ".env"))
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// scanFlag finds the last "--name value" or "--name=value" before "--".
func scanFlag(args []string, name string) (value string, found bool) {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		trimmed := strings.TrimLeft(arg, "-")
		if trimmed == arg || len(arg)-len(trimmed) > 2 {
			continue
		}
		if v, ok := strings.CutPrefix(trimmed, name+"="); ok {
			value, found = v, true
			continue
		}
		if trimmed == name && i+1 < len(args) {
			value, found = args[i+1], true
			i++
		}
	}
	return value, found
}
