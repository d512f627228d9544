package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinky890114/Xianluo/internal/models"
)

// InsertShowcaseItem records a gallery image. Showcase items are create and
// delete only; there is no patch path.
func (s *Store) InsertShowcaseItem(url string, now time.Time) (string, error) {
	id := uuid.New().String()
	_, err := s.DB.Exec(`INSERT INTO showcase (id, url, created_at) VALUES (?, ?, ?)`, id, url, now)
	if err != nil {
		return "", err
	}
	s.notify(CollectionShowcase)
	return id, nil
}

func (s *Store) ListShowcase() ([]models.ShowcaseItem, error) {
	rows, err := s.DB.Query(`SELECT id, url, created_at FROM showcase ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ShowcaseItem
	for rows.Next() {
		var item models.ShowcaseItem
		if err := rows.Scan(&item.ID, &item.URL, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) DeleteShowcaseItem(id string) error {
	res, err := s.DB.Exec(`DELETE FROM showcase WHERE id = ?`, id)
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
	s.notify(CollectionShowcase)
	return nil
}
