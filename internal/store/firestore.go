// Package store is the Firestore persistence layer: assessments are written
// and listed by owner, user profiles are read-only documents keyed by uid.
package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/unimindapp/unimind-backend/internal/platform/logger"
)

// ErrNotFound reports a document that does not exist; callers decide whether
// that is a 404 or an empty result.
var ErrNotFound = errors.New("document not found")

type AssessmentStore interface {
	Save(ctx context.Context, rec *AssessmentRecord) (string, error)
	ListByUser(ctx context.Context, userID string) ([]*AssessmentRecord, error)
}

type UserProfileStore interface {
	Get(ctx context.Context, userID string) (UserProfile, error)
}

type Store struct {
	log         *logger.Logger
	client      *firestore.Client
	assessments string
	users       string
}

var _ AssessmentStore = (*Store)(nil)
var _ UserProfileStore = (*Store)(nil)

func New(ctx context.Context, log *logger.Logger, projectID, credentialsFile, assessmentsCollection, usersCollection string) (*Store, error) {
	storeLog := log.With("store", "Firestore")

	var client *firestore.Client
	var err error
	if credentialsFile != "" {
		client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return &Store{
		log:         storeLog,
		client:      client,
		assessments: assessmentsCollection,
		users:       usersCollection,
	}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Save(ctx context.Context, rec *AssessmentRecord) (string, error) {
	ref, _, err := s.client.Collection(s.assessments).Add(ctx, rec)
	if err != nil {
		return "", err
	}
	s.log.Debug("assessment saved", "user_id", rec.UserID, "assessment_id", ref.ID)
	return ref.ID, nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]*AssessmentRecord, error) {
	iter := s.client.Collection(s.assessments).
		Where("userId", "==", userID).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	out := []*AssessmentRecord{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := &AssessmentRecord{}
		if err := doc.DataTo(rec); err != nil {
			s.log.Warn("skipping malformed assessment document", "doc_id", doc.Ref.ID, "error", err)
			continue
		}
		rec.ID = doc.Ref.ID
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, userID string) (UserProfile, error) {
	doc, err := s.client.Collection(s.users).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return UserProfile(doc.Data()), nil
}
