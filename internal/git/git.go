package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"path"
	"strconv"
	"strings"
)

// ChangedFiles runs git diff against baseRef and returns the added or
// modified files that live under one of dirs.
func ChangedFiles(root, baseRef string, dirs []string) ([]string, error) {
	args := []string{"-c", "core.quotePath=false", "diff", "--name-only", "--diff-filter=AM", baseRef, "--"}
	args = append(args, dirs...)
	cmd := exec.Command("git", args...)
	cmd.Dir = root
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return filterDirs(parseNameOnly(output), dirs), nil
}

// ParseList splits a newline separated path list, as passed through the
// CHANGED_MINUTES environment variable, dropping blank lines.
func ParseList(list string) []string {
	return parseNameOnly([]byte(list))
}

func parseNameOnly(output []byte) []string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var files []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Paths with special bytes arrive C-quoted with octal escapes.
		if strings.HasPrefix(line, `"`) {
			if unquoted, err := strconv.Unquote(line); err == nil {
				line = unquoted
			} else {
				line = strings.Trim(line, `"`)
			}
		}
		files = append(files, line)
	}
	return files
}

func filterDirs(files, dirs []string) []string {
	if len(dirs) == 0 {
		return files
	}
	var out []string
	for _, f := range files {
		clean := path.Clean(f)
		for _, d := range dirs {
			if strings.HasPrefix(clean, path.Clean(d)+"/") {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// Stage adds paths to the index of the repository at root.
func Stage(root string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	cmd := exec.Command("git", args...)
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git add failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
