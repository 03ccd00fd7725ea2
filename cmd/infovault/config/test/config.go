package configtest

import (
	"bufio"
	"os"
	"strings"

	"github.com/nspcc-dev/infovault/cmd/infovault/config"
)

func fromFile(path string) *config.Config {
	var p config.Prm

	return config.New(p,
		config.WithConfigFile(path),
	)
}

func forEachFile(paths []string, f func(*config.Config)) {
	for i := range paths {
		f(fromFile(paths[i]))
	}
}

// ForEachFileType passes configs read from next files:
//   - `<pref>.yaml`;
//   - `<pref>.json`.
func ForEachFileType(pref string, f func(*config.Config)) {
	forEachFile([]string{
		pref + ".yaml",
		pref + ".json",
	}, f)
}

// ForEnvFileType passes config with values read from `<pref>.env` file
// exported to the process environment. Variables are unset after f returns.
func ForEnvFileType(pref string, f func(*config.Config)) {
	envs := loadEnv(pref + ".env")

	defer func() {
		for i := range envs {
			_ = os.Unsetenv(envs[i])
		}
	}()

	f(EmptyConfig())
}

// EmptyConfig returns config without any values and sections.
func EmptyConfig() *config.Config {
	var p config.Prm

	return config.New(p)
}

// loadEnv exports KEY=VALUE lines of the file, returns exported keys.
func loadEnv(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		panic("can't open .env file: " + err.Error())
	}
	defer f.Close()

	var keys []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		k, v, ok := strings.Cut(line, "=")
		if !ok {
			panic("invalid .env line: " + line)
		}

		v = strings.Trim(v, `"`)

		if err := os.Setenv(k, v); err != nil {
			panic("can't set environment variable: " + err.Error())
		}

		keys = append(keys, k)
	}

	if err := scanner.Err(); err != nil {
		panic("can't read .env file: " + err.Error())
	}

	return keys
}
