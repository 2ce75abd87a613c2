// Package session resolves which Kagi session cookie a command runs with.
package session

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/papercomputeco/kagi/pkg/credentials"
)

// ErrNoSession is returned when no source yields a session.
var ErrNoSession = errors.New("no kagi session found; pass --session, set " +
	credentials.SessionEnvVar + ", or run 'kagi auth'")

// Source names where a resolved session came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceProfile Source = "profile"
)

// Resolve returns the session to use. The --session flag wins over
// KAGI_SESSION, which wins over the stored session of profile.
func Resolve(override, profile, configDir string) (string, Source, error) {
	if s := strings.TrimSpace(override); s != "" {
		return s, SourceFlag, nil
	}

	if s := strings.TrimSpace(os.Getenv(credentials.SessionEnvVar)); s != "" {
		return s, SourceEnv, nil
	}

	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return "", "", fmt.Errorf("loading credentials: %w", err)
	}

	s, err := mgr.GetSession(profile)
	if err != nil {
		return "", "", fmt.Errorf("loading credentials: %w", err)
	}
	if s = strings.TrimSpace(s); s != "" {
		return s, SourceProfile, nil
	}

	return "", "", ErrNoSession
}
