package config

import (
	"bufio"
	"os"
	"strings"
)

// ParseEnvFile reads an existing env file into a key/value map. Blank lines
// and comment lines are skipped and a single layer of surrounding quotes is
// stripped from each value. A missing file is not an error: it returns an
// empty map, which makes the first provisioning run and a re-run share the
// same code path.
func ParseEnvFile(path string) (map[string]string, error) {
	values := map[string]string{}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		values[strings.TrimSpace(key)] = stripQuotes(strings.TrimSpace(value))
	}

	return values, scanner.Err()
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}

	return s
}
