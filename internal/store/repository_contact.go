package store

import (
	"context"
	"fmt"

	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

// contactRepository is the PostgreSQL-backed implementation of
// [ContactRepository].
type contactRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewContactRepository constructs a [ContactRepository] backed by the
// provided database connection and logger.
func NewContactRepository(db *DB, logger *logger.Logger) ContactRepository {
	logger.Debug().Msg("creating contact repository")
	return &contactRepository{
		db:     db,
		logger: logger,
	}
}

// CreateContact persists a contact-us lead and returns the canonical
// database representation with server-assigned timestamps.
func (r *contactRepository) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createContact,
		contact.ID, contact.FullName, contact.Organization, contact.Email,
		contact.AreaOfInterest, contact.Representation, contact.Message)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*contactRepository.CreateContact").Msg("error: row is nil")
		return models.Contact{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var saved models.Contact
	if err := row.Scan(&saved.ID, &saved.FullName, &saved.Organization, &saved.Email,
		&saved.AreaOfInterest, &saved.Representation, &saved.Message,
		&saved.CreatedAt, &saved.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*contactRepository.CreateContact").Msg("error: scanning error")
		return models.Contact{}, err
	}

	return saved, nil
}

// ListContacts returns one page of leads, newest first, together with the
// total number of leads for pagination.
func (r *contactRepository) ListContacts(ctx context.Context, page models.PageRequest) ([]models.Contact, int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countContacts).Scan(&total); err != nil {
		log.Err(err).Str("func", "*contactRepository.ListContacts").Msg("error: counting contacts")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listContacts, page.Limit, page.Offset())
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.ListContacts").Msg("error: querying contacts")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0, page.Limit)
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.FullName, &c.Organization, &c.Email,
			&c.AreaOfInterest, &c.Representation, &c.Message,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*contactRepository.ListContacts").Msg("error: scanning error")
			return nil, 0, ErrScanningRows
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*contactRepository.ListContacts").Msg("error: iterating rows")
		return nil, 0, ErrScanningRows
	}

	return contacts, total, nil
}
