// Package credentials stores Kagi session cookies in credentials.toml under
// named profiles.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/kagi/pkg/dotdir"
)

const (
	credentialsFile = "credentials.toml"

	currentVersion = 0

	// DefaultProfile is used when no profile is named.
	DefaultProfile = "default"

	// SessionEnvVar overrides any stored session.
	SessionEnvVar = "KAGI_SESSION"
)

// Manager manages reading and writing credentials.toml in the .kagi/ directory.
type Manager struct {
	ddm        *dotdir.Manager
	targetPath string
}

// NewManager creates a new credentials Manager. If override is non-empty it is
// used as the .kagi/ directory; otherwise the standard dotdir resolution applies.
func NewManager(override string) (*Manager, error) {
	mgr := &Manager{}
	mgr.ddm = dotdir.NewManager()

	target, err := mgr.ddm.Target(override)
	if err != nil {
		return nil, err
	}

	mgr.targetPath = filepath.Join(target, credentialsFile)

	return mgr, nil
}

// Load reads credentials.toml from the target directory.
// Returns an empty Credentials if the file does not exist.
func (m *Manager) Load() (*Credentials, error) {
	data, err := os.ReadFile(m.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{
				Version:  currentVersion,
				Profiles: make(map[string]SessionCredential),
			}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	creds := &Credentials{}
	if err := toml.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	if creds.Profiles == nil {
		creds.Profiles = make(map[string]SessionCredential)
	}

	return creds, nil
}

// Save writes credentials to credentials.toml with 0600 permissions.
func (m *Manager) Save(creds *Credentials) error {
	if creds == nil {
		return errors.New("cannot save nil credentials")
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(creds); err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(m.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	return nil
}

// SetSession stores the session cookie for profile.
func (m *Manager) SetSession(profile, session string) error {
	if session == "" {
		return errors.New("cannot store an empty session")
	}

	creds, err := m.Load()
	if err != nil {
		return err
	}

	creds.Profiles[profileName(profile)] = SessionCredential{Session: session}

	return m.Save(creds)
}

// GetSession returns the stored session of profile.
// Returns an empty string if none is stored.
func (m *Manager) GetSession(profile string) (string, error) {
	creds, err := m.Load()
	if err != nil {
		return "", err
	}

	return creds.Profiles[profileName(profile)].Session, nil
}

// RemoveSession deletes the stored session of profile.
func (m *Manager) RemoveSession(profile string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	delete(creds.Profiles, profileName(profile))

	return m.Save(creds)
}

// ListProfiles returns the names of profiles that have a stored session.
func (m *Manager) ListProfiles() ([]string, error) {
	creds, err := m.Load()
	if err != nil {
		return nil, err
	}

	profiles := make([]string, 0, len(creds.Profiles))
	for name := range creds.Profiles {
		profiles = append(profiles, name)
	}

	sort.Strings(profiles)

	return profiles, nil
}

// GetTarget returns the resolved path to the credentials file.
func (m *Manager) GetTarget() string {
	return m.targetPath
}

func profileName(profile string) string {
	if profile == "" {
		return DefaultProfile
	}
	return profile
}
