package util

import (
	"context"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// FileFunc is called for every regular file found by WalkFiles.
// rel is the slash-separated path relative to the walk root.
type FileFunc func(path, rel string) error

// WalkFiles walks base recursively and calls fn for every regular file,
// in lexical order within each directory. The base must be an existing
// directory, otherwise an error is returned before fn is ever called.
// A symlinked base is resolved first; symlinks below it are not followed.
// Unreadable directories below base are logged and skipped.
// The walk stops early when ctx is cancelled.
// It utilizes the fast godirwalk library found here: https://github.com/karrick/godirwalk
func WalkFiles(ctx context.Context, base string, fn FileFunc) error {
	resolved, err := filepath.EvalSymlinks(base)
	if err != nil {
		return errors.Wrapf(err, "cannot read root %s", base)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return errors.Wrapf(err, "cannot read root %s", base)
	}
	if !info.IsDir() {
		return errors.Errorf("root %s is not a directory", base)
	}
	base = resolved

	return godirwalk.Walk(base, &godirwalk.Options{
		Callback: func(fp string, de *godirwalk.Dirent) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !de.IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(base, fp)
			if err != nil {
				return err
			}
			return fn(fp, filepath.ToSlash(rel))
		},
		ErrorCallback: func(fp string, err error) godirwalk.ErrorAction {
			if fp == base || ctx.Err() != nil {
				return godirwalk.Halt
			}
			Printf(ctx, "Cannot read %s: %s\n", fp, err)
			return godirwalk.SkipNode
		},
	})
}
