package cli

import (
	"context"
	"io"

	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/secmon-lab/rsvp/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdHistory(w io.Writer) *cli.Command {
	var (
		setup  manageSetup
		limit  int
		format string
	)

	flags := joinFlags(
		setup.Flags(),
		[]cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "Maximum number of submissions to show",
				Value:       usecase.DefaultHistoryLimit,
				Destination: &limit,
			},
			formatFlag(&format),
		},
	)

	return &cli.Command{
		Name:      "history",
		Usage:     "Show recorded attendance changes for a guest",
		ArgsUsage: "<guest-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, "guest-id"); err != nil {
				return err
			}
			out, err := parseOutputFormat(format)
			if err != nil {
				return err
			}

			uc, repo, err := setup.build(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			submissions, err := uc.History(ctx, types.GuestID(c.Args().Get(0)), limit)
			if err != nil {
				return err
			}
			return writeSubmissions(w, submissions, out)
		},
	}
}
