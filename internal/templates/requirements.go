package templates

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// LoadRequirements reads the requirements file in dir. A missing file yields
// an empty list. Blank lines and # comments are dropped.
func LoadRequirements(dir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, RequirementsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	reqs := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		reqs = append(reqs, line)
	}
	return reqs, scanner.Err()
}
