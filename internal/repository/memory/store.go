// Package memory is an in-process implementation of the repository ports,
// used by tests and by DB_DRIVER=memory for local runs.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

type row[T any] struct {
	value   T
	seq     int64
	created time.Time
}

// database holds every table behind one lock so cross-table reads (profile
// owner names) and multi-row writes (order items) are consistent.
type database struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users         map[uuid.UUID]*row[models.User]
	profiles      map[uuid.UUID]*row[models.MsmeProfile]
	products      map[uuid.UUID]*row[models.Product]
	orders        map[uuid.UUID]*row[models.Order]
	news          map[uuid.UUID]*row[models.NewsItem]
	tourism       map[uuid.UUID]*row[models.TourismSpot]
	notifications map[uuid.UUID]*row[models.Notification]

	// auditLogs keeps only the newest auditRetention entries.
	auditLogs      []models.AuditLog
	auditRetention int
}

// DefaultAuditRetention bounds the audit trail kept in memory.
const DefaultAuditRetention = 1000

type Option func(*database)

// WithAuditRetention changes how many audit entries are kept. Values below
// one keep none.
func WithAuditRetention(n int) Option {
	return func(d *database) {
		d.auditRetention = n
	}
}

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(d *database) {
		d.now = now
	}
}

func NewStore(opts ...Option) *repository.Store {
	d := &database{
		now:           time.Now,
		users:         map[uuid.UUID]*row[models.User]{},
		profiles:      map[uuid.UUID]*row[models.MsmeProfile]{},
		products:      map[uuid.UUID]*row[models.Product]{},
		orders:        map[uuid.UUID]*row[models.Order]{},
		news:          map[uuid.UUID]*row[models.NewsItem]{},
		tourism:       map[uuid.UUID]*row[models.TourismSpot]{},
		notifications: map[uuid.UUID]*row[models.Notification]{},
	}
	d.auditRetention = DefaultAuditRetention
	for _, opt := range opts {
		opt(d)
	}

	return &repository.Store{
		Users:         &userRepository{db: d},
		MsmeProfiles:  &msmeProfileRepository{db: d},
		Products:      &productRepository{db: d},
		Orders:        &orderRepository{db: d},
		News:          &newsRepository{db: d},
		Tourism:       &tourismRepository{db: d},
		Notifications: &notificationRepository{db: d},
		AuditLogs:     &auditLogRepository{db: d},
	}
}

// stamp fills id and timestamps the way the SQL store would. A preset
// CreatedAt is kept. Callers must hold the write lock.
func (d *database) stamp(base *models.BaseModel) int64 {
	d.seq++
	now := d.now()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
	return d.seq
}

// newestFirst returns copies of the rows accepted by keep, ordered by
// creation time descending with insertion order breaking ties.
func newestFirst[T any](rows map[uuid.UUID]*row[T], keep func(*T) bool) []T {
	list := make([]*row[T], 0, len(rows))
	for _, r := range rows {
		if keep == nil || keep(&r.value) {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].created.Equal(list[j].created) {
			return list[i].created.After(list[j].created)
		}
		return list[i].seq > list[j].seq
	})

	out := make([]T, len(list))
	for i, r := range list {
		out[i] = r.value
	}
	return out
}

func count[T any](rows map[uuid.UUID]*row[T], keep func(*T) bool) int64 {
	var n int64
	for _, r := range rows {
		if keep == nil || keep(&r.value) {
			n++
		}
	}
	return n
}

func createdSince[T any](rows map[uuid.UUID]*row[T], since time.Time, keep func(*T) bool) []time.Time {
	var out []time.Time
	for _, r := range rows {
		if r.created.Before(since) {
			continue
		}
		if keep == nil || keep(&r.value) {
			out = append(out, r.created)
		}
	}
	return out
}

func firstN[T any](list []T, n int) []T {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}
