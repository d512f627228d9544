package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pinky890114/Xianluo/internal/models"
)

// encodeURLs stores an image-URL list as a JSON text column. An empty list is
// stored as NULL-equivalent empty string so old rows stay readable.
func encodeURLs(urls []string) (string, error) {
	if len(urls) == 0 {
		return "", nil
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeURLs(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// InsertCommission writes a new record and returns the assigned identifier.
// The caller is responsible for timestamps and the initial status; no field
// validation happens here.
func (s *Store) InsertCommission(c *models.Commission) (string, error) {
	id := uuid.New().String()

	imageURLs, err := encodeURLs(c.ImageURLs)
	if err != nil {
		return "", fmt.Errorf("encode image urls: %w", err)
	}
	progressURLs, err := encodeURLs(c.ProgressImages)
	if err != nil {
		return "", fmt.Errorf("encode progress image urls: %w", err)
	}

	query := `
		INSERT INTO commissions (id, artist_id, client_name, contact, title, description, type, price, status,
			created_at, last_updated, thumbnail_url, image_urls, notes, source, current_progress, progress_image_urls)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.DB.Exec(query, id, c.ArtistID, c.ClientName, c.Contact, c.Title, c.Description, c.Type, c.Price,
		c.Status, c.CreatedAt, c.LastUpdated, c.ThumbnailURL, imageURLs, c.Notes, c.Source, c.CurrentProgress, progressURLs)
	if err != nil {
		return "", err
	}
	s.notify(CollectionCommissions)
	return id, nil
}

// ListCommissions returns the full collection ordered by creation timestamp
// descending, the same order the live query delivers.
func (s *Store) ListCommissions() ([]models.Commission, error) {
	query := `
		SELECT id, artist_id, client_name, contact, title, description, type, price, status,
			created_at, last_updated, thumbnail_url, image_urls, notes, source, current_progress, progress_image_urls
		FROM commissions
		ORDER BY created_at DESC
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commissions []models.Commission
	for rows.Next() {
		var c models.Commission
		var imageURLs, progressURLs string
		if err := rows.Scan(&c.ID, &c.ArtistID, &c.ClientName, &c.Contact, &c.Title, &c.Description, &c.Type,
			&c.Price, &c.Status, &c.CreatedAt, &c.LastUpdated, &c.ThumbnailURL, &imageURLs, &c.Notes,
			&c.Source, &c.CurrentProgress, &progressURLs); err != nil {
			return nil, err
		}
		if c.ImageURLs, err = decodeURLs(imageURLs); err != nil {
			return nil, fmt.Errorf("decode image urls for %s: %w", c.ID, err)
		}
		if c.ProgressImages, err = decodeURLs(progressURLs); err != nil {
			return nil, fmt.Errorf("decode progress image urls for %s: %w", c.ID, err)
		}
		commissions = append(commissions, c)
	}
	return commissions, rows.Err()
}

// PatchCommission applies a partial update plus a refreshed last_updated
// stamp. The patch type cannot name id or created_at, so those columns are
// untouchable here. Returns ErrNotFound if the id does not exist.
func (s *Store) PatchCommission(id string, patch models.CommissionPatch, now time.Time) error {
	set := []string{"last_updated = ?"}
	args := []any{now}

	add := func(column string, v any) {
		set = append(set, column+" = ?")
		args = append(args, v)
	}

	if patch.ClientName != nil {
		add("client_name", *patch.ClientName)
	}
	if patch.Contact != nil {
		add("contact", *patch.Contact)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.ThumbnailURL != nil {
		add("thumbnail_url", *patch.ThumbnailURL)
	}
	if patch.ImageURLs != nil {
		encoded, err := encodeURLs(*patch.ImageURLs)
		if err != nil {
			return fmt.Errorf("encode image urls: %w", err)
		}
		add("image_urls", encoded)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if patch.Source != nil {
		add("source", *patch.Source)
	}
	if patch.CurrentProgress != nil {
		add("current_progress", *patch.CurrentProgress)
	}
	if patch.ProgressImages != nil {
		encoded, err := encodeURLs(*patch.ProgressImages)
		if err != nil {
			return fmt.Errorf("encode progress image urls: %w", err)
		}
		add("progress_image_urls", encoded)
	}

	query := "UPDATE commissions SET "
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += " WHERE id = ?"
	args = append(args, id)

	res, err := s.DB.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.notify(CollectionCommissions)
	return nil
}

// DeleteCommission hard-deletes the record. Returns ErrNotFound if the id
// does not exist.
func (s *Store) DeleteCommission(id string) error {
	res, err := s.DB.Exec(`DELETE FROM commissions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.notify(CollectionCommissions)
	return nil
}
