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

const chartDateFormat = "%Y-%m-%d"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	return insertedHex(res), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete order: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, id, status string) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return updateResult(res), nil
}

func (r *OrderRepository) MarkPaymentVerified(ctx context.Context, transactionID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"transactionId": transactionID},
		bson.M{"$set": bson.M{"paymentVerified": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark payment verified: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *OrderRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"transactionId": transactionID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("find order by transaction: %w", err)
	}
	return n > 0, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, email string) ([]*domain.OrderView, error) {
	return r.joined(ctx, bson.M{"customer.email": email})
}

func (r *OrderRepository) ListBySeller(ctx context.Context, email string) ([]*domain.OrderView, error) {
	return r.joined(ctx, bson.M{"seller": email})
}

func (r *OrderRepository) joined(ctx context.Context, match bson.M) ([]*domain.OrderView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, orderWithPlantPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("aggregate orders: %w", err)
	}

	views := []*domain.OrderView{}
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return views, nil
}

// orderWithPlantPipeline joins each matched order with its plant and lifts
// the plant's display fields onto the order. Orders whose plant no longer
// exists are dropped by the unwind.
func orderWithPlantPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "plantId", Value: bson.D{{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$plantId"},
				{Key: "to", Value: "objectId"},
				{Key: "onError", Value: nil},
				{Key: "onNull", Value: nil},
			}}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionPlants},
			{Key: "localField", Value: "plantId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "plants"},
		}}},
		{{Key: "$unwind", Value: "$plants"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "name", Value: "$plants.name"},
			{Key: "image", Value: "$plants.image"},
			{Key: "category", Value: "$plants.category"},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "plants", Value: 0}}}},
	}
}

func (r *OrderRepository) Totals(ctx context.Context) (*domain.OrderTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, totalsPipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate totals: %w", err)
	}
	defer cur.Close(ctx)

	var totals domain.OrderTotals
	if cur.Next(ctx) {
		if err := cur.Decode(&totals); err != nil {
			return nil, fmt.Errorf("decode totals: %w", err)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("read totals: %w", err)
	}
	return &totals, nil
}

func totalsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			{Key: "totalOrder", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "_id", Value: 0}}}},
	}
}

func (r *OrderRepository) DailyChart(ctx context.Context) ([]domain.ChartPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, dailyChartPipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate chart: %w", err)
	}

	points := []domain.ChartPoint{}
	if err := cur.All(ctx, &points); err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return points, nil
}

// dailyChartPipeline buckets orders by the creation day embedded in their
// ObjectId.
func dailyChartPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: chartDateFormat},
				{Key: "date", Value: bson.D{{Key: "$toDate", Value: "$_id"}}},
			}}}},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
			{Key: "price", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			{Key: "order", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "date", Value: "$_id"},
			{Key: "quantity", Value: 1},
			{Key: "price", Value: 1},
			{Key: "order", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
	}
}
