package store

import "github.com/MKhiriev/go-field-sync/internal/logger"

// Repositories groups the repositories backed by one local cache connection.
type Repositories struct {
	Entities      EntityRepository
	Related       RelatedRepository
	FieldSettings FieldSettingsRepository
	History       HistoryRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Entities:      NewEntityRepository(db, log),
		Related:       NewRelatedRepository(db, log),
		FieldSettings: NewFieldSettingsRepository(db, log),
		History:       NewHistoryRepository(db, log),
	}
}
