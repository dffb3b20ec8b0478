package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

type PlantRepository struct {
	col *mongo.Collection
}

func NewPlantRepository(db *mongo.Database) *PlantRepository {
	return &PlantRepository{col: db.Collection(collectionPlants)}
}

// Create inserts a plant document and returns its generated id.
func (r *PlantRepository) Create(ctx context.Context, p *domain.Plant) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("insert plant: %w", err)
	}
	return insertedHex(res), nil
}

func (r *PlantRepository) List(ctx context.Context, limit int64) ([]*domain.Plant, error) {
	return r.find(ctx, bson.M{}, options.Find().SetLimit(limit))
}

func (r *PlantRepository) ListBySeller(ctx context.Context, sellerEmail string) ([]*domain.Plant, error) {
	return r.find(ctx, bson.M{"seller.email": sellerEmail})
}

func (r *PlantRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domain.Plant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find plants: %w", err)
	}

	plants := []*domain.Plant{}
	if err := cur.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("decode plants: %w", err)
	}
	return plants, nil
}

func (r *PlantRepository) FindByID(ctx context.Context, id string) (*domain.Plant, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Plant
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, fmt.Errorf("find plant: %w", err)
	}
	return &p, nil
}

func (r *PlantRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete plant: %w", err)
	}
	return res.DeletedCount, nil
}

// IncrementQuantity applies delta with a single-document $inc; no floor is
// enforced.
func (r *PlantRepository) IncrementQuantity(ctx context.Context, id string, delta int) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"quantity": delta}},
	)
	if err != nil {
		return nil, fmt.Errorf("increment quantity: %w", err)
	}
	return updateResult(res), nil
}

func (r *PlantRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.EstimatedDocumentCount(ctx)
}
