// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package doccomment

import (
	"context"

	"github.com/littlefisher666/swagger-docgen/internal/logging"
	"github.com/littlefisher666/swagger-docgen/internal/scanner"
)

// Load reads every doc source into a new Store. An unreadable source is
// logged and skipped; only context cancellation aborts the load.
func Load(ctx context.Context, files []scanner.SourceFile, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	store := NewStore()
	var javaParser *JavaParser

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		switch f.Format {
		case "java":
			if javaParser == nil {
				javaParser = NewJavaParser()
			}
			err = javaParser.Load(ctx, store, f.Content)
		case "yaml":
			err = LoadYAML(store, f.Content)
		default:
			logger.Debug("ignoring doc source with unsupported format", "file", f.Path, "format", f.Format)
			continue
		}

		if err != nil {
			logger.Warn("skipping unreadable doc source", "file", f.Path, "error", err)
		}
	}

	logger.Debug("loaded doc comments", "files", len(files), "types", store.Len())
	return store, nil
}
