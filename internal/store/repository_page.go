// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

// pageRepository is the PostgreSQL-backed implementation of [PageRepository].
// Page payloads are free-form JSON stored in a JSONB "data" column; the
// unique title is the natural key the frontend addresses pages by.
type pageRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPageRepository constructs a [PageRepository] backed by the provided
// database connection and logger.
func NewPageRepository(db *DB, logger *logger.Logger) PageRepository {
	logger.Debug().Msg("creating page repository")
	return &pageRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertPage inserts a page under the given title or, when the title already
// exists, replaces its payload wholesale.
func (r *pageRepository) UpsertPage(ctx context.Context, title string, data models.PageData) (models.Page, error) {
	log := logger.FromContext(ctx)

	encoded, err := encodeDocument(data)
	if err != nil {
		log.Err(err).Str("func", "*pageRepository.UpsertPage").Msg("error: encoding data")
		return models.Page{}, ErrEncodingDocument
	}

	row := r.db.QueryRowContext(ctx, upsertPage, uuid.Must(uuid.NewV7()), title, encoded)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*pageRepository.UpsertPage").Msg("error: row is nil")
		return models.Page{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanPageRow(row)
	if err != nil {
		log.Err(err).Str("func", "*pageRepository.UpsertPage").Msg("error: scanning error")
		return models.Page{}, err
	}

	return saved, nil
}

// GetPageByTitle retrieves one page by its unique title.
func (r *pageRepository) GetPageByTitle(ctx context.Context, title string) (models.Page, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getPageByTitle, title)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*pageRepository.GetPageByTitle").Msg("error: row is nil")
		return models.Page{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	found, err := scanPageRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Page{}, ErrPageNotFound
		}
		log.Err(err).Str("func", "*pageRepository.GetPageByTitle").Msg("error: scanning error")
		return models.Page{}, err
	}

	return found, nil
}

// ListPageTitles returns every stored page title in lexical order.
func (r *pageRepository) ListPageTitles(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listPageTitles)
	if err != nil {
		log.Err(err).Str("func", "*pageRepository.ListPageTitles").Msg("error: querying titles")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	titles := make([]string, 0)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			log.Err(err).Str("func", "*pageRepository.ListPageTitles").Msg("error: scanning error")
			return nil, ErrScanningRows
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*pageRepository.ListPageTitles").Msg("error: iterating rows")
		return nil, ErrScanningRows
	}

	return titles, nil
}

// ListPages returns one page of CMS pages, newest first, together with the
// total count for pagination.
func (r *pageRepository) ListPages(ctx context.Context, page models.PageRequest) ([]models.Page, int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countPages).Scan(&total); err != nil {
		log.Err(err).Str("func", "*pageRepository.ListPages").Msg("error: counting pages")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listPages, page.Limit, page.Offset())
	if err != nil {
		log.Err(err).Str("func", "*pageRepository.ListPages").Msg("error: querying pages")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	pages := make([]models.Page, 0, page.Limit)
	for rows.Next() {
		p, err := scanPageRow(rows)
		if err != nil {
			log.Err(err).Str("func", "*pageRepository.ListPages").Msg("error: scanning error")
			return nil, 0, ErrScanningRows
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*pageRepository.ListPages").Msg("error: iterating rows")
		return nil, 0, ErrScanningRows
	}

	return pages, total, nil
}

func scanPageRow(row rowScanner) (models.Page, error) {
	var (
		p    models.Page
		data []byte
	)
	if err := row.Scan(&p.ID, &p.Title, &data, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Page{}, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p.Data); err != nil {
			return models.Page{}, fmt.Errorf("decoding data column: %w", err)
		}
	}
	return p, nil
}
