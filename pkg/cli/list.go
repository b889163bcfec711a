package cli

import (
	"context"
	"io"
	"time"

	"github.com/urfave/cli/v3"
)

func cmdList(w io.Writer) *cli.Command {
	var (
		setup  manageSetup
		filter filterFlags
		format string
	)

	return &cli.Command{
		Name:  "list",
		Usage: "List guests grouped by party",
		Flags: joinFlags(setup.Flags(), filter.Flags(), []cli.Flag{formatFlag(&format)}),
		Action: func(ctx context.Context, c *cli.Command) error {
			out, err := parseOutputFormat(format)
			if err != nil {
				return err
			}

			guestFilter, err := filter.filter()
			if err != nil {
				return err
			}

			uc, repo, err := setup.build(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			view, err := uc.ListGuests(ctx, guestFilter)
			if err != nil {
				return err
			}
			return writeView(w, view, out, time.Now())
		},
	}
}
