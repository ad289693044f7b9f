package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository implements ports.AuditLog on an append-only MongoDB
// collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDocument struct {
	Entity     string    `bson:"entity"`
	EntityID   string    `bson:"entity_id"`
	Action     string    `bson:"action"`
	Changes    bson.M    `bson:"changes,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
}

// EnsureIndexes creates the lookup index used by History.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "occurred_at", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}

// Record appends one event to the audit_events collection.
func (r *AuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := auditDocument{
		Entity:     event.Entity,
		EntityID:   event.EntityID,
		Action:     event.Action,
		Changes:    bson.M(event.Changes),
		OccurredAt: event.OccurredAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// History returns the events recorded for one entity, oldest first.
func (r *AuditRepository) History(ctx context.Context, entity, entityID string) ([]domain.AuditEvent, error) {
	filter := bson.M{"entity": entity, "entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []auditDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit events: %w", err)
	}

	events := make([]domain.AuditEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.AuditEvent{
			Entity:     d.Entity,
			EntityID:   d.EntityID,
			Action:     d.Action,
			Changes:    map[string]any(d.Changes),
			OccurredAt: d.OccurredAt,
		})
	}
	return events, nil
}
