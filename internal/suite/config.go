package suite

import (
	"fmt"
	"net/http"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration decodes TOML strings such as "30s" or "1m30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type BenchmarkEntry struct {
	Name string `toml:"name"`

	// Exactly one of these selects the target kind.
	Command []string `toml:"command"`
	Url     string   `toml:"url"`
	File    string   `toml:"file"`

	// Command only
	SizeFile    string `toml:"size_file"`
	CountStdout bool   `toml:"count_stdout"`
}

type ConfigFile struct {
	Timeout    Duration         `toml:"timeout"`
	FailFast   bool             `toml:"fail_fast"`
	Benchmarks []BenchmarkEntry `toml:"benchmark"`
}

func LoadConfigFromToml(path string) (ConfigFile, error) {
	var cfg ConfigFile
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return ConfigFile{}, err
	}

	if err := cfg.Validate(); err != nil {
		return ConfigFile{}, err
	}

	return cfg, nil
}

func (entry BenchmarkEntry) kind() string {
	switch {
	case len(entry.Command) > 0:
		return KindCommand
	case entry.Url != "":
		return KindHTTP
	case entry.File != "":
		return KindFile
	}
	return ""
}

func (entry BenchmarkEntry) Validate() error {
	if entry.Name == "" {
		return fmt.Errorf("missing name")
	}

	kinds := 0
	if len(entry.Command) > 0 {
		kinds++
	}
	if entry.Url != "" {
		kinds++
	}
	if entry.File != "" {
		kinds++
	}
	if kinds != 1 {
		return fmt.Errorf("exactly one of command, url or file must be specified")
	}

	if entry.kind() != KindCommand && (entry.SizeFile != "" || entry.CountStdout) {
		return fmt.Errorf("size_file and count_stdout only apply to command benchmarks")
	}

	return nil
}

func (cfg ConfigFile) Validate() error {
	if len(cfg.Benchmarks) == 0 {
		return fmt.Errorf("no [[benchmark]] entries")
	}
	if cfg.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	seen := make(map[string]int, len(cfg.Benchmarks))
	for i, entry := range cfg.Benchmarks {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("benchmark #%d: %w", i+1, err)
		}
		if first, ok := seen[entry.Name]; ok {
			return fmt.Errorf("benchmark #%d: name %q already used by #%d", i+1, entry.Name, first)
		}
		seen[entry.Name] = i + 1
	}

	return nil
}

// BuildTargets turns validated entries into targets, preserving file order.
func (cfg ConfigFile) BuildTargets(client *http.Client) []Target {
	targets := make([]Target, 0, len(cfg.Benchmarks))
	for _, entry := range cfg.Benchmarks {
		switch entry.kind() {
		case KindCommand:
			targets = append(targets, NewCommandTarget(entry.Name, entry.Command, entry.SizeFile, entry.CountStdout))
		case KindHTTP:
			targets = append(targets, NewHTTPTarget(entry.Name, entry.Url, client))
		case KindFile:
			targets = append(targets, NewFileTarget(entry.Name, entry.File))
		}
	}
	return targets
}
