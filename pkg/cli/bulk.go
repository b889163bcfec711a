package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdBulk(w io.Writer) *cli.Command {
	var (
		setup  manageSetup
		filter filterFlags
		format string
	)

	return &cli.Command{
		Name:      "bulk",
		Usage:     "Set the same attendance for the members of a party, optionally filtered",
		ArgsUsage: "<group-id> <attendance>",
		Flags:     joinFlags(setup.Flags(), filter.Flags(), []cli.Flag{formatFlag(&format)}),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, "group-id", "attendance"); err != nil {
				return err
			}
			out, err := parseOutputFormat(format)
			if err != nil {
				return err
			}

			attendance, err := types.ParseAttendance(c.Args().Get(1))
			if err != nil {
				return goerr.Wrap(err, "invalid attendance argument")
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

			groupID := types.GroupID(c.Args().Get(0))
			updated, err := uc.BulkUpdateGroup(ctx, groupID, attendance, guestFilter)
			if err != nil {
				ctxlog.From(ctx).Warn("bulk update stopped early", "group_id", groupID, "updated", updated)
				return err
			}
			return writeBulkResult(w, groupID, updated, out)
		},
	}
}
