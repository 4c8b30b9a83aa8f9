// Package history appends task mutations to per-project JSONL logs.
package history

import (
	"bufio"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Record is one mutation of the tasks file.
type Record struct {
	Time        time.Time `json:"time"`
	Op          string    `json:"op"`    // "add" or "remove"
	Index       int       `json:"index"` // 1-based position affected
	Description string    `json:"task"`
}

// Log appends and reads mutation records for one project.
type Log struct {
	Dir  string
	Path string
}

// Open resolves the per-project history file under baseDir and creates
// the directory. The file itself is created lazily on first append.
func Open(baseDir, workDir string) (*Log, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("history base dir is empty")
	}

	resolvedWorkDir := workDir
	if resolvedWorkDir == "" {
		resolvedWorkDir = "."
	}
	if abs, err := filepath.Abs(resolvedWorkDir); err == nil {
		resolvedWorkDir = abs
	}

	baseDir = resolveBaseDir(baseDir, resolvedWorkDir)
	logDir := filepath.Join(baseDir, projectSlug(resolvedWorkDir))

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	return &Log{
		Dir:  logDir,
		Path: filepath.Join(logDir, "history.jsonl"),
	}, nil
}

// Append writes one record as a JSON line. Records with a zero time are
// stamped with the current UTC time.
func (l *Log) Append(rec Record) error {
	if rec.Time.IsZero() {
		rec.Time = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal history record: %w", err)
	}
	data = append(data, '\n')

	file, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("write history record: %w", err)
	}

	return nil
}

// Tail returns up to n most recent records in chronological order. A
// missing history file yields an empty slice. Lines that fail to decode
// are skipped.
func (l *Log) Tail(n int) ([]Record, error) {
	file, err := os.Open(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}

func resolveBaseDir(baseDir, workDir string) string {
	if filepath.IsAbs(baseDir) {
		return filepath.Clean(baseDir)
	}
	return filepath.Clean(filepath.Join(workDir, baseDir))
}

// projectSlug derives a stable directory name from the project path so
// histories of same-named projects do not collide.
func projectSlug(projectRoot string) string {
	name := filepath.Base(projectRoot)
	slug := slugify(name)
	hash := hashPath(projectRoot)
	return fmt.Sprintf("%s-%s", slug, hash)
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "project"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "project"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}
