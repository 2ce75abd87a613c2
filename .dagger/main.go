// Kagi CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
package main

import (
	"context"

	"dagger/kagi/internal/dagger"
)

// Kagi is the main module for the kagi CI/CD pipeline
type Kagi struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Kagi CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", "build", "tmp", "_examples"]
	source *dagger.Directory,
) *Kagi {
	return &Kagi{
		Source: source,
	}
}

// goContainer returns a Go container with the project source mounted and
// the module and build caches attached. kagi is pure Go, so CGO stays off.
func (k *Kagi) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", k.Source)
}

// Test runs the kagi unit tests via "go test"
func (k *Kagi) Test(ctx context.Context) (string, error) {
	return k.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}

// Vet runs "go vet" over every package.
//
// +check
func (k *Kagi) Vet(ctx context.Context) (string, error) {
	return k.goContainer().
		WithExec([]string{"go", "vet", "./..."}).
		Stdout(ctx)
}
