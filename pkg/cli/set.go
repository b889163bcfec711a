package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdSet(w io.Writer) *cli.Command {
	var (
		setup  manageSetup
		format string
	)

	return &cli.Command{
		Name:      "set",
		Usage:     "Set the attendance of one guest",
		ArgsUsage: "<guest-id> <attendance>",
		Flags:     joinFlags(setup.Flags(), []cli.Flag{formatFlag(&format)}),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, "guest-id", "attendance"); err != nil {
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

			uc, repo, err := setup.build(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			guest, err := uc.UpdateGuest(ctx, types.GuestID(c.Args().Get(0)), attendance)
			if err != nil {
				return err
			}
			return writeGuest(w, guest, out)
		},
	}
}
