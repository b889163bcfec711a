package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/interfaces"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	submissionsCollection = "submissions"

	fieldGuestID = "guest_id"
)

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on a wrong project or missing permissions
	_, err = client.Collection(submissionsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// PutSubmission saves a submission to Firestore
func (f *Firestore) PutSubmission(ctx context.Context, submission *model.Submission) error {
	if submission == nil {
		return goerr.New("submission is nil")
	}
	if submission.ID == "" {
		return goerr.New("submission ID is empty")
	}

	_, err := f.client.Collection(submissionsCollection).Doc(submission.ID.String()).Set(ctx, submission)
	if err != nil {
		return goerr.Wrap(err, "failed to save submission to firestore", goerr.V("id", submission.ID))
	}

	return nil
}

// GetSubmission retrieves a submission by ID
func (f *Firestore) GetSubmission(ctx context.Context, id types.SubmissionID) (*model.Submission, error) {
	if id == "" {
		return nil, goerr.New("submission ID is empty")
	}

	doc, err := f.client.Collection(submissionsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrSubmissionNotFound, "failed to get submission", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get submission from firestore", goerr.V("id", id))
	}

	var submission model.Submission
	if err := doc.DataTo(&submission); err != nil {
		return nil, goerr.Wrap(err, "failed to decode submission", goerr.V("id", id))
	}

	return &submission, nil
}

// ListSubmissions lists submissions for a guest, newest first
func (f *Firestore) ListSubmissions(ctx context.Context, guestID types.GuestID, limit int) ([]*model.Submission, error) {
	if guestID == "" {
		return nil, goerr.New("guest ID is empty")
	}

	// Equality filter only, so no composite index is needed; ordering happens in memory
	iter := f.client.Collection(submissionsCollection).
		Where(fieldGuestID, "==", guestID.String()).
		Documents(ctx)
	defer iter.Stop()

	var submissions []*model.Submission
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate submissions", goerr.V("guest_id", guestID))
		}

		var submission model.Submission
		if err := doc.DataTo(&submission); err != nil {
			return nil, goerr.Wrap(err, "failed to decode submission", goerr.V("doc", doc.Ref.ID))
		}
		submissions = append(submissions, &submission)
	}

	sortNewestFirst(submissions)

	if limit > 0 && len(submissions) > limit {
		submissions = submissions[:limit]
	}

	return submissions, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if err := f.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
