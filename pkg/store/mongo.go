package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/slidegen/slidegen/pkg/deck"
	"github.com/slidegen/slidegen/pkg/errors"
)

// MongoStore persists decks in a MongoDB collection, keyed by deck ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	// URI is the connection string, e.g. mongodb://localhost:27017.
	URI string

	// Database holds the deck collection. Defaults to "slidegen".
	Database string

	// Collection names the deck collection. Defaults to "decks".
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "slidegen"
	}
	if cfg.Collection == "" {
		cfg.Collection = "decks"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save stores a deck, replacing any existing deck with the same ID.
func (s *MongoStore) Save(ctx context.Context, d *deck.Deck) error {
	if d == nil || d.ID == "" {
		return errors.New(errors.ErrCodeInvalidContent, "deck must have an ID to be stored")
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": d.ID}, d, opts); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save deck %q", d.ID)
	}
	return nil
}

// Get retrieves a deck by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*deck.Deck, error) {
	var d deck.Deck
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeDeckNotFound, "deck %q not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load deck %q", id)
	}
	return &d, nil
}

// List returns deck summaries, newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{
			"_id":        1,
			"title":      1,
			"created_at": 1,
			"slides":     1,
		})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list decks")
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var d deck.Deck
		if err := cur.Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode deck summary")
		}
		out = append(out, Summary{
			ID:         d.ID,
			Title:      d.Title,
			SlideCount: d.SlideCount(),
			CreatedAt:  d.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "iterate decks")
	}
	return out, nil
}

// Delete removes a deck.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete deck %q", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeDeckNotFound, "deck %q not found", id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
