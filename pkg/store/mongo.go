package store

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/cabinetry/pkg/buildinfo"
	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/io"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "cabinetry"
	DefaultCollection = "designs"
)

// MongoOptions configures a MongoDB design store.
type MongoOptions struct {
	URI        string
	Database   string // default "cabinetry"
	Collection string // default "designs"
}

// MongoStore saves designs as documents in a MongoDB collection. The
// design JSON is kept verbatim in the "design" field.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type designDoc struct {
	Name      string    `bson:"_id"`
	Design    string    `bson:"design,omitempty"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo store needs a URI")
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(opts.URI).
		SetAppName(buildinfo.Short()).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewMongoStoreFromClient(client, opts.Database, opts.Collection), nil
}

// NewMongoStoreFromClient wraps an existing client.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{client: client, coll: client.Database(database).Collection(collection)}
}

func (s *MongoStore) Save(ctx context.Context, name string, c *cabinet.Cabinet) error {
	n, err := ValidateName(name)
	if err != nil {
		return err
	}
	data, err := io.Marshal(c)
	if err != nil {
		return err
	}
	doc := designDoc{Name: n, Design: string(data), UpdatedAt: time.Now().UTC()}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": n}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save design %s: %w", n, err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, name string) (*cabinet.Cabinet, error) {
	n, err := ValidateName(name)
	if err != nil {
		return nil, err
	}
	var doc designDoc
	err = s.coll.FindOne(ctx, bson.M{"_id": n}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "design %q not found", n)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "fetch design %q", n)
	}
	return io.ReadJSON(bytes.NewReader([]byte(doc.Design)))
}

func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"design": 0})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	var docs []designDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	out := make([]Info, len(docs))
	for i, d := range docs {
		out[i] = Info{Name: d.Name, UpdatedAt: d.UpdatedAt}
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	n, err := ValidateName(name)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": n})
	if err != nil {
		return fmt.Errorf("delete design %s: %w", n, err)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "design %q not found", n)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
