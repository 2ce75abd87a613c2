package main

import (
	"context"
	"fmt"

	"dagger/kagi/internal/dagger"
)

const golangciLintVersion = "v2.8.0"

// lintOpts returns the GolangcilintOpts shared by CheckLint and FixLint,
// layering golangci-lint on top of goContainer() so the Go caches are reused.
func (k *Kagi) lintOpts() dagger.GolangcilintOpts {
	base := k.goContainer().
		WithExec([]string{
			"go",
			"install",
			fmt.Sprintf("github.com/golangci/golangci-lint/v2/cmd/golangci-lint@%s", golangciLintVersion),
		})

	return dagger.GolangcilintOpts{
		BaseCtr: base,
	}
}

// CheckLint runs golangci-lint against the kagi source code without applying fixes.
func (k *Kagi) CheckLint(ctx context.Context) (string, error) {
	return dag.Golangcilint(k.Source, k.lintOpts()).Check(ctx)
}

// FixLint runs golangci-lint with --fix and returns the modified source directory.
func (k *Kagi) FixLint(ctx context.Context) *dagger.Directory {
	return dag.Golangcilint(k.Source, k.lintOpts()).Lint()
}
