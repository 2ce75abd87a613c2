package credentials

// Credentials represents the stored Kagi sessions in credentials.toml.
type Credentials struct {
	Version  int                          `toml:"version"`
	Profiles map[string]SessionCredential `toml:"profiles"`
}

// SessionCredential holds the kagi_session cookie of one profile.
type SessionCredential struct {
	Session string `toml:"session"`
}
