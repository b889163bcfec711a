package cli

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/cli/config"
	"github.com/secmon-lab/rsvp/pkg/domain/interfaces"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/secmon-lab/rsvp/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

// manageSetup holds what every host-side command needs. Slack is left out:
// notifications are dispatched asynchronously and a one-shot command exits first.
type manageSetup struct {
	backend   config.Backend
	firestore config.Firestore
}

func (s *manageSetup) Flags() []cli.Flag {
	return joinFlags(s.backend.Flags(), s.firestore.Flags())
}

// build returns a Manage use case recording CLI submissions. The caller closes the repository.
func (s *manageSetup) build(ctx context.Context) (*usecase.Manage, interfaces.Repository, error) {
	client, err := s.backend.Configure()
	if err != nil {
		return nil, nil, err
	}

	repo, err := s.firestore.Configure(ctx)
	if err != nil {
		return nil, nil, err
	}

	uc, err := usecase.NewManage(client, repo, usecase.WithSource(types.SourceCLI))
	if err != nil {
		repo.Close()
		return nil, nil, goerr.Wrap(err, "failed to create manage use case")
	}
	return uc, repo, nil
}

// requireArgs checks the positional argument count
func requireArgs(c *cli.Command, names ...string) error {
	if c.Args().Len() != len(names) {
		return goerr.New("wrong number of arguments",
			goerr.V("expected", names),
			goerr.V("got", c.Args().Slice()))
	}
	return nil
}

// filterFlags are the --query and --attendance flags shared by list and bulk
type filterFlags struct {
	query      string
	attendance string
}

func (f *filterFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Filter by guest or party name",
			Destination: &f.query,
		},
		&cli.StringFlag{
			Name:        "attendance",
			Aliases:     []string{"a"},
			Usage:       "Filter by attendance (" + attendanceChoices() + ")",
			Value:       "All",
			Destination: &f.attendance,
		},
	}
}

func (f *filterFlags) filter() (model.GuestFilter, error) {
	filter := model.GuestFilter{Query: f.query}
	if label := strings.TrimSpace(f.attendance); label != "" && !strings.EqualFold(label, "all") {
		a, err := types.ParseAttendance(label)
		if err != nil {
			return filter, goerr.Wrap(err, "invalid --attendance")
		}
		filter.Attendance = &a
	}
	return filter, nil
}

// attendanceChoices lists the accepted filter labels, "All" first
func attendanceChoices() string {
	labels := []string{"All"}
	for _, a := range types.AllAttendances {
		labels = append(labels, a.Label())
	}
	return strings.Join(labels, ", ")
}
