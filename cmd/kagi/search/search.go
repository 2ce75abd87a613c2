// Package searchcmder provides the search command for Kagi web search.
package searchcmder

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kagi/cmd/kagi/cmdenv"
	"github.com/papercomputeco/kagi/pkg/cliui"
	"github.com/papercomputeco/kagi/pkg/config"
	"github.com/papercomputeco/kagi/pkg/format"
	"github.com/papercomputeco/kagi/pkg/htmltext"
	"github.com/papercomputeco/kagi/pkg/kagi"
	"github.com/papercomputeco/kagi/pkg/search"
)

const searchLongDesc string = `Search the web with Kagi.

Prints the first page of results. With --all every page is fetched by
following the next_batch cursor until Kagi reports there are no more.

Examples:
  kagi search "golang context cancellation"
  kagi search --all "site:go.dev generics"
  kagi search -F csv "rust vs go" > results.csv`

const searchShortDesc string = "Search the web"

var flagKeys = []string{
	config.FlagFormat,
}

type searchCommander struct {
	query string
	all   bool

	format string
}

func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.query = args[0]
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagFormat, &cmder.format)
	cmd.Flags().BoolVarP(&cmder.all, "all", "a", false, "Fetch every page")

	return cmd
}

func (c *searchCommander) run(cmd *cobra.Command) error {
	env, err := cmdenv.Load(cmd, flagKeys...)
	if err != nil {
		return err
	}

	client, err := env.Client(cmd)
	if err != nil {
		return err
	}

	var pages []*search.Result
	call := func() error {
		var err error
		pages, err = fetch(cmd, client, c.query, c.all)
		return err
	}

	if env.Format == format.Console {
		err = cliui.Step(cmd.ErrOrStderr(), "Searching", call)
	} else {
		err = call()
	}
	if err != nil {
		return err
	}
	env.Logger.Debug("search complete", "pages", len(pages))

	if env.Format == format.Console {
		return Render(cmd.OutOrStdout(), pages)
	}

	out, err := format.Search(env.Format, pages)
	if err != nil {
		return err
	}
	return cmdenv.Write(cmd, out)
}

func fetch(cmd *cobra.Command, client *kagi.Client, query string, all bool) ([]*search.Result, error) {
	if all {
		return client.SearchAll(cmd.Context(), query).Collect()
	}

	page, err := client.Search(cmd.Context(), query, 0)
	if err != nil {
		return nil, err
	}
	return []*search.Result{page}, nil
}

// descriptionWidth caps item descriptions to one wide terminal line.
const descriptionWidth = 160

// Render prints pages for a terminal. Pages without scraped items fall back
// to the plain text of their HTML.
func Render(w io.Writer, pages []*search.Result) error {
	for _, page := range pages {
		if len(page.Items) > 0 {
			for i, item := range page.Items {
				fmt.Fprintln(w, cliui.HeaderStyle.Render(fmt.Sprintf("%d. %s", i+1, item.Title)))
				fmt.Fprintf(w, "   %s\n", cliui.LinkStyle.Render(item.URL))
				if item.WebArchiveURL != nil && *item.WebArchiveURL != "" {
					fmt.Fprintf(w, "   %s\n", cliui.DimStyle.Render("Archive: "+*item.WebArchiveURL))
				}
				if item.Description != "" {
					fmt.Fprintf(w, "   %s\n", cliui.Truncate(item.Description, descriptionWidth))
				}
				fmt.Fprintln(w)
			}
		} else {
			fmt.Fprintln(w, cliui.Panel("Search Results", htmltext.Text(page.SearchHTML)))
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "%s %s\n", cliui.HeaderStyle.Render("Share:"), page.Info.ShareURL)

		if len(page.DomainInfos) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, cliui.TitleStyle.Render("Domains"))
			fmt.Fprintln(w, cliui.Table(
				[]string{"Domain", "Speed", "Trackers", "Secure", "Registered"},
				domainRows(page.DomainInfos),
			))
		}
	}
	return nil
}

func domainRows(domains []search.DomainInfo) [][]string {
	rows := make([][]string, 0, len(domains))
	for _, d := range domains {
		var trackers, secure string
		if d.Trackers != nil {
			trackers = strconv.Itoa(*d.Trackers)
		}
		if d.DomainSecure != nil {
			secure = "No"
			if *d.DomainSecure {
				secure = "Yes"
			}
		}
		rows = append(rows, []string{d.Domain, deref(d.WebsiteSpeed), trackers, secure, deref(d.RegistrationDate)})
	}
	return rows
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
