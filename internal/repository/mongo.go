package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/hackhub/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	hackathonCollection = "hackathons"
	feedbackCollection  = "feedback"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// MongoHackathonStore stores hackathons as documents keyed by id. The version
// field is part of the replace filter, which makes the replace conditional.
type MongoHackathonStore struct {
	coll *mongo.Collection
}

// NewMongoHackathonStore constructs a MongoHackathonStore on db.
func NewMongoHackathonStore(db *mongo.Database) *MongoHackathonStore {
	return &MongoHackathonStore{coll: db.Collection(hackathonCollection)}
}

// EnsureIndexes creates the secondary indexes used by List.
func (r *MongoHackathonStore) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "isApproved", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "organizerId", Value: 1}}},
		{Keys: bson.D{{Key: "participants", Value: 1}}},
		{Keys: bson.D{{Key: "teams.members.user", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create hackathon indexes: %w", err)
	}
	return nil
}

func (r *MongoHackathonStore) Create(ctx context.Context, h *model.Hackathon) error {
	h.Version = 1
	if _, err := r.coll.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("insert hackathon: %w", err)
	}
	return nil
}

func (r *MongoHackathonStore) Get(ctx context.Context, id string) (*model.Hackathon, error) {
	var h model.Hackathon
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&h)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get hackathon: %w", err)
	}
	return &h, nil
}

func (r *MongoHackathonStore) List(ctx context.Context, filter model.HackathonFilter) ([]model.Hackathon, error) {
	q := bson.M{}
	if filter.ApprovedOnly {
		q["isApproved"] = true
	}
	if filter.OrganizerID != "" {
		q["organizerId"] = filter.OrganizerID
	}
	if filter.MemberUserID != "" {
		q["$or"] = bson.A{
			bson.M{"participants": filter.MemberUserID},
			bson.M{"teams.members.user": filter.MemberUserID},
		}
	}

	cur, err := r.coll.Find(ctx, q, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("list hackathons: %w", err)
	}
	var out []model.Hackathon
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode hackathons: %w", err)
	}
	return out, nil
}

func (r *MongoHackathonStore) CompareAndSwap(ctx context.Context, id string, expectedVersion int64, updated *model.Hackathon) error {
	next := *updated
	next.Version = expectedVersion + 1

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id, "version": expectedVersion}, &next)
	if err != nil {
		return fmt.Errorf("replace hackathon: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("check hackathon: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}

	updated.Version = next.Version
	return nil
}

func (r *MongoHackathonStore) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete hackathon: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoFeedbackStore stores feedback messages in their own collection.
type MongoFeedbackStore struct {
	coll *mongo.Collection
}

// NewMongoFeedbackStore constructs a MongoFeedbackStore on db.
func NewMongoFeedbackStore(db *mongo.Database) *MongoFeedbackStore {
	return &MongoFeedbackStore{coll: db.Collection(feedbackCollection)}
}

func (r *MongoFeedbackStore) Create(ctx context.Context, f *model.Feedback) error {
	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *MongoFeedbackStore) Get(ctx context.Context, id string) (*model.Feedback, error) {
	var f model.Feedback
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return &f, nil
}

func (r *MongoFeedbackStore) List(ctx context.Context, filter model.FeedbackFilter) ([]model.Feedback, error) {
	q := bson.M{}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.Priority != "" {
		q["priority"] = filter.Priority
	}

	cur, err := r.coll.Find(ctx, q, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	var out []model.Feedback
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	return out, nil
}

func (r *MongoFeedbackStore) Update(ctx context.Context, f *model.Feedback) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	if err != nil {
		return fmt.Errorf("replace feedback: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoFeedbackStore) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
