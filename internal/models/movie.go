// Movie catalog model definitions

package models

import "time"

// Movie is a catalog record shared by all users. The favorites store only
// references it by ID.
type Movie struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Director    string     `json:"director"`
	Genres      string     `json:"genres"`
	Actors      string     `json:"actors"`
	Released    string     `json:"released"`
	Description string     `json:"description"`
	IMDbRating  float64    `json:"imdb_rating"`
	ImageURL    string     `json:"image_url,omitempty"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// MovieUpdate carries a partial update. Nil fields are left untouched.
type MovieUpdate struct {
	Name        *string
	Director    *string
	Genres      *string
	Actors      *string
	Released    *string
	Description *string
	IMDbRating  *float64
	ImageURL    *string
	UpdatedAt   time.Time
}

// Apply copies the non-nil fields of u onto m.
func (u *MovieUpdate) Apply(m *Movie) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Director != nil {
		m.Director = *u.Director
	}
	if u.Genres != nil {
		m.Genres = *u.Genres
	}
	if u.Actors != nil {
		m.Actors = *u.Actors
	}
	if u.Released != nil {
		m.Released = *u.Released
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.IMDbRating != nil {
		m.IMDbRating = *u.IMDbRating
	}
	if u.ImageURL != nil {
		m.ImageURL = *u.ImageURL
	}
	updatedAt := u.UpdatedAt
	m.UpdatedAt = &updatedAt
}
