// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/kraklabs/typenames/pkg/phpsource"
)

// FileInfo is a file selected for parsing.
type FileInfo struct {
	Path     string // relative to Config.Root, slash separated
	FullPath string
	Size     int64
}

// Scanner walks a directory tree and reports declared type names.
type Scanner struct {
	cfg    Config
	logger *slog.Logger

	// OnDiscover, when set, is called once with the number of files to parse,
	// before parsing starts.
	OnDiscover func(total int)

	// OnFile, when set, is called after each file is parsed or fails. It is
	// called from worker goroutines and must be safe for concurrent use.
	OnFile func(path string)
}

// New creates a Scanner. A nil logger uses slog.Default() and a
// non-positive worker count uses one worker per CPU.
func New(cfg Config, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".php"}
	}
	return &Scanner{cfg: cfg, logger: logger}
}

// Discover returns the files Run would parse and the number of files skipped.
func (s *Scanner) Discover(ctx context.Context) ([]FileInfo, int, error) {
	root := s.cfg.Root
	info, err := os.Stat(root)
	if err != nil {
		return nil, 0, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []FileInfo{{Path: filepath.Base(root), FullPath: root, Size: info.Size()}}, 0, nil
	}

	var files []FileInfo
	skipped := 0

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			s.logger.Warn("scan.walk.error", "path", path, "err", err)
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil || relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if shouldExclude(relPath, s.cfg.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.hasExtension(relPath) || shouldExclude(relPath, s.cfg.ExcludeGlobs) {
			skipped++
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		if s.cfg.MaxFileSizeBytes > 0 && fi.Size() > s.cfg.MaxFileSizeBytes {
			skipped++
			s.logger.Warn("scan.walk.skip_large_file",
				"path", relPath,
				"size", fi.Size(),
				"limit", s.cfg.MaxFileSizeBytes,
			)
			return nil
		}

		files = append(files, FileInfo{Path: relPath, FullPath: path, Size: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, skipped, err
	}
	return files, skipped, nil
}

// Run scans the configured tree.
//
// Files that cannot be read or parsed do not stop the scan: their errors are
// aggregated and returned together with the report of the other files.
// Context cancellation stops the scan and returns the context error.
func (s *Scanner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	files, skipped, err := s.Discover(ctx)
	if err != nil {
		return nil, err
	}
	recordSkipped(skipped)
	if s.OnDiscover != nil {
		s.OnDiscover(len(files))
	}

	s.logger.Info("scan.start",
		"root", s.cfg.Root,
		"files", len(files),
		"skipped", skipped,
		"workers", s.cfg.Workers,
	)

	parsed := make([]*phpsource.File, len(files))
	var (
		mu     sync.Mutex
		result *multierror.Error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file, err := s.parseOne(gctx, f)
			if s.OnFile != nil {
				s.OnFile(f.Path)
			}
			if err != nil {
				mu.Lock()
				result = multierror.Append(result, fmt.Errorf("%s: %w", f.Path, err))
				mu.Unlock()
				return nil
			}
			parsed[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Root: s.cfg.Root, Skipped: skipped, Records: []Record{}}
	for i, file := range parsed {
		if file == nil {
			report.Failed++
			continue
		}
		report.Files++
		report.SyntaxErrors += file.SyntaxErrors
		report.Records = append(report.Records, FileRecords(files[i].Path, file)...)
	}
	SortRecords(report.Records)
	report.Duration = time.Since(start)
	recordRecords(report.Records, report.Duration.Seconds())

	s.logger.Info("scan.complete",
		"files", report.Files,
		"failed", report.Failed,
		"records", len(report.Records),
		"duration", report.Duration,
	)

	return report, result.ErrorOrNil()
}

func (s *Scanner) parseOne(ctx context.Context, f FileInfo) (*phpsource.File, error) {
	start := time.Now()

	parser := phpsource.NewParser(s.logger)
	defer parser.Close()

	file, err := parser.ParseFile(ctx, f.FullPath)
	if err != nil {
		recordParseError()
		s.logger.Warn("scan.file.parse_error", "path", f.Path, "err", err)
		return nil, err
	}
	file.Path = f.Path
	recordParsed(time.Since(start).Seconds(), file.SyntaxErrors)
	return file, nil
}

func (s *Scanner) hasExtension(relPath string) bool {
	ext := strings.ToLower(filepath.Ext(relPath))
	for _, want := range s.cfg.Extensions {
		if strings.ToLower(want) == ext {
			return true
		}
	}
	return false
}
