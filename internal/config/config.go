package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config is the root configuration for horas, stored in ~/.horas/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Sheet SheetConfig `json:"sheet"`
}

// SheetConfig holds the Google Apps Script endpoint settings.
type SheetConfig struct {
	// ScriptURL is the deployed Apps Script web app URL.
	ScriptURL string `json:"script_url"`
	// Mode is "confirmed" (parse the script's response envelope) or
	// "fire-and-forget" (send without reading a structured response).
	Mode string `json:"mode"`
	// DefaultName pre-fills the Nombre column so repeat users can skip --name.
	DefaultName string `json:"default_name"`
}

const (
	// DefaultScriptURL is the shared deployment of the hours sheet script.
	// Replace with your own deployment URL for a private sheet.
	DefaultScriptURL = "https://script.google.com/macros/s/AKfycbygt8_3nGfCvNh4jH_89GmbEZ-ObwdB8V1V1dDm5NQWg2dAULlXUc_oyNe2bi3ukk0y/exec"
	// DefaultMode parses the script's response envelope before committing
	// the local copy.
	DefaultMode = "confirmed"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Sheet: SheetConfig{
			ScriptURL:   DefaultScriptURL,
			Mode:        DefaultMode,
			DefaultName: "",
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// horas configuration – ~/.horas/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box against the shared sheet. Edit this file to customise behaviour.
// Values can also be overridden with the HORAS_SCRIPT_URL, HORAS_MODE and
// HORAS_NAME environment variables (a .env file in the working directory is
// honoured too).
{
  // ── Google Sheet script endpoint ─────────────────────────────────────────
  "sheet": {
    // Deployed Apps Script web app URL receiving add/delete commands.
    "script_url": "` + DefaultScriptURL + `",

    // Response handling:
    // • "confirmed"       – parse the script's {result, message} envelope and
    //                       keep the local copy only on success (default)
    // • "fire-and-forget" – send the command without reading the response;
    //                       only a transport failure is treated as an error
    "mode": "confirmed",

    // Default value for the Nombre column, used when --name is omitted.
    "default_name": ""
  }
}
`

// configFilePath returns the path to ~/.horas/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".horas", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.horas/config.json, creating it with annotated defaults on
// first run, then applies environment overrides. Lines starting with // are
// treated as comments and stripped before JSON parsing.
func Load() (Config, error) {
	// Best-effort .env support; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := loadFile()
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func loadFile() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Sheet.ScriptURL == "" {
		cfg.Sheet.ScriptURL = DefaultScriptURL
	}
	if cfg.Sheet.Mode == "" {
		cfg.Sheet.Mode = DefaultMode
	}

	return cfg, nil
}

// applyEnv overrides config values from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("HORAS_SCRIPT_URL"); v != "" {
		cfg.Sheet.ScriptURL = v
	}
	if v := os.Getenv("HORAS_MODE"); v != "" {
		cfg.Sheet.Mode = v
	}
	if v := os.Getenv("HORAS_NAME"); v != "" {
		cfg.Sheet.DefaultName = v
	}
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
