package session_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/kagi/cmd/kagi/session"
	"github.com/papercomputeco/kagi/pkg/credentials"
)

var _ = Describe("Resolve", func() {
	var (
		tmpDir  string
		origEnv string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "kagi-session-*")
		Expect(err).NotTo(HaveOccurred())

		origEnv = os.Getenv(credentials.SessionEnvVar)
		Expect(os.Unsetenv(credentials.SessionEnvVar)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Setenv(credentials.SessionEnvVar, origEnv)).To(Succeed())
		os.RemoveAll(tmpDir)
	})

	store := func(profile, value string) {
		mgr, err := credentials.NewManager(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(mgr.SetSession(profile, value)).To(Succeed())
	}

	It("prefers the flag value", func() {
		Expect(os.Setenv(credentials.SessionEnvVar, "from-env")).To(Succeed())
		store("", "from-file")

		s, src, err := session.Resolve(" from-flag ", "", tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal("from-flag"))
		Expect(src).To(Equal(session.SourceFlag))
	})

	It("falls back to KAGI_SESSION", func() {
		Expect(os.Setenv(credentials.SessionEnvVar, "from-env")).To(Succeed())
		store("", "from-file")

		s, src, err := session.Resolve("", "", tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal("from-env"))
		Expect(src).To(Equal(session.SourceEnv))
	})

	It("reads the default profile from credentials.toml", func() {
		store("", "from-file")

		s, src, err := session.Resolve("", "", tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal("from-file"))
		Expect(src).To(Equal(session.SourceProfile))
	})

	It("reads a named profile", func() {
		store("", "default-session")
		store("work", "work-session")

		s, _, err := session.Resolve("", "work", tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal("work-session"))
	})

	It("returns ErrNoSession when nothing is configured", func() {
		_, _, err := session.Resolve("", "", tmpDir)
		Expect(err).To(MatchError(session.ErrNoSession))
	})

	It("ignores whitespace-only values", func() {
		Expect(os.Setenv(credentials.SessionEnvVar, "   ")).To(Succeed())

		_, _, err := session.Resolve("  ", "missing", tmpDir)
		Expect(err).To(MatchError(session.ErrNoSession))
	})
})
