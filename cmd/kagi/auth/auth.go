// Package authcmder provides the auth command for storing Kagi sessions.
package authcmder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kagi/cmd/kagi/cmdenv"
	"github.com/papercomputeco/kagi/pkg/auth"
	"github.com/papercomputeco/kagi/pkg/cliui"
	"github.com/papercomputeco/kagi/pkg/credentials"
)

const authLongDesc string = `Store a Kagi session cookie.

The session is the value of the kagi_session cookie from a logged-in
browser. It is stored in credentials.toml in the .kagi/ directory under a
named profile ("default" when no profile is given). KAGI_SESSION and
--session always take precedence over stored sessions.

Examples:
  kagi auth                      Prompt for the default profile's session
  kagi auth work                 Prompt for the "work" profile's session
  echo $COOKIE | kagi auth       Pipe the session from stdin
  kagi auth --list               List stored profiles
  kagi auth --remove work        Remove the "work" profile
  kagi auth --check              Exchange the session for a token and show the account`

const authShortDesc string = "Store a Kagi session cookie"

func NewAuthCmd() *cobra.Command {
	var listFlag bool
	var checkFlag bool
	var removeFlag string

	cmd := &cobra.Command{
		Use:   "auth [profile]",
		Short: authShortDesc,
		Long:  authLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString(cmdenv.FlagConfigDir)
			w := cmd.OutOrStdout()

			switch {
			case listFlag:
				return runList(w, configDir)
			case removeFlag != "":
				return runRemove(w, removeFlag, configDir)
			case checkFlag:
				return runCheck(cmd)
			default:
				profile := credentials.DefaultProfile
				if len(args) == 1 {
					profile = args[0]
				}
				return runAuth(cmd, profile, configDir)
			}
		},
	}

	cmd.Flags().BoolVar(&listFlag, "list", false, "List stored profiles")
	cmd.Flags().StringVar(&removeFlag, "remove", "", "Remove the stored session of a profile")
	cmd.Flags().BoolVar(&checkFlag, "check", false, "Verify the resolved session against Kagi")

	return cmd
}

func runAuth(cmd *cobra.Command, profile, configDir string) error {
	profile = strings.TrimSpace(profile)

	sess, err := readSession(cmd, profile)
	if err != nil {
		return err
	}

	sess = strings.TrimSpace(sess)
	if sess == "" {
		return errors.New("session cannot be empty")
	}

	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	if err := mgr.SetSession(profile, sess); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n  %s Stored session for %s %s\n\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(profile),
		cliui.DimStyle.Render("("+mgr.GetTarget()+")"),
	)
	return nil
}

func runList(w io.Writer, configDir string) error {
	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	profiles, err := mgr.ListProfiles()
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		fmt.Fprintf(w, "\n  %s No stored sessions.\n", cliui.DimStyle.Render("●"))
		fmt.Fprintf(w, "  Use 'kagi auth [profile]' to store one.\n\n")
		return nil
	}

	fmt.Fprintf(w, "\n  %s\n\n", cliui.HeaderStyle.Render("Stored sessions"))
	for _, p := range profiles {
		fmt.Fprintf(w, "  %s  %s\n", cliui.SuccessMark, cliui.NameStyle.Render(p))
	}
	if os.Getenv(credentials.SessionEnvVar) != "" {
		fmt.Fprintf(w, "\n  %s %s\n",
			cliui.WarnStyle.Render("!"),
			cliui.DimStyle.Render(credentials.SessionEnvVar+" is set and overrides stored sessions"))
	}
	fmt.Fprintln(w)

	return nil
}

func runRemove(w io.Writer, profile, configDir string) error {
	profile = strings.TrimSpace(profile)

	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	if err := mgr.RemoveSession(profile); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n  %s Removed session for %s.\n\n", cliui.SuccessMark, cliui.NameStyle.Render(profile))

	return nil
}

func runCheck(cmd *cobra.Command) error {
	env, err := cmdenv.Load(cmd)
	if err != nil {
		return err
	}

	client, err := env.Client(cmd)
	if err != nil {
		return err
	}

	var claims *auth.TokenPayload
	err = cliui.Step(cmd.ErrOrStderr(), "Exchanging session for a token", func() error {
		token, err := client.Auth().Token(cmd.Context())
		if err != nil {
			return err
		}
		claims, err = auth.DecodeToken(token)
		return err
	})
	if err != nil {
		return err
	}

	expires := "never"
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Local().Format("2006-01-02 15:04:05")
	}

	fmt.Fprintln(cmd.OutOrStdout(), cliui.KeyValueTable([][]string{
		{"Account", claims.AccountType},
		{"User ID", claims.UserID},
		{"Logged In", fmt.Sprint(claims.LoggedIn)},
		{"Subscription", fmt.Sprint(claims.Subscription)},
		{"Token Expires", expires},
	}))
	return nil
}

// readSession reads a session from the command's stdin. Piped input yields
// its first line; a terminal is prompted with hidden input.
func readSession(cmd *cobra.Command, profile string) (string, error) {
	in := cmd.InOrStdin()

	if f, ok := in.(*os.File); ok && cliui.IsTerminal(f) {
		fmt.Fprintf(cmd.OutOrStdout(), "Enter kagi_session cookie for %s: ", profile)
		sess, err := cliui.ReadSecret(f)
		fmt.Fprintln(cmd.OutOrStdout())
		return sess, err
	}

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return "", errors.New("no input received on stdin")
}
