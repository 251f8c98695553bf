// Package store persists the canonical marketing event collection as
// a single pretty-printed JSON document. The collection is replaced
// whole on every save; there is no partial-update primitive and no
// optimistic concurrency check, so concurrent writers can overwrite
// each other's appends. That is an accepted limitation of the
// whole-document model, not something callers should try to work
// around here.
package store

import (
	"context"

	"github.com/transformlabs/pulse/pkg/models"
)

// EventsDocument is the object key / file name of the persisted
// collection.
const EventsDocument = "events.json"

// EventStore is the system of record for marketing events. Load on a
// store that has never been written returns an empty collection, not
// an error; any other failure is surfaced, since an unusable store
// means the write side of the system is down.
type EventStore interface {
	Load(ctx context.Context) ([]models.MarketingEvent, error)
	Save(ctx context.Context, events []models.MarketingEvent) error
	Ping(ctx context.Context) error
}
