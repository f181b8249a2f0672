package types

import "time"

// Education is a single education entry on a profile.
type Education struct {
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Current      bool       `json:"current"`
}

// Experience is a single work experience entry on a profile.
type Experience struct {
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Current     bool       `json:"current"`
}

// Profile is the 1:1 extension of a user account. Exactly one profile
// exists per user; it is created empty at registration.
type Profile struct {
	ID         int          `json:"id" db:"id"`
	UserID     int          `json:"user_id" db:"user_id"`
	Bio        string       `json:"bio" db:"bio"`
	Skills     []string     `json:"skills" db:"skills"`
	Education  []Education  `json:"education" db:"education"`
	Experience []Experience `json:"experience" db:"experience"`

	// Resume holds the blob-store URL of the uploaded resume, if any.
	Resume string `json:"resume" db:"resume"`

	Portfolio string    `json:"portfolio" db:"portfolio"`
	LinkedIn  string    `json:"linkedin" db:"linkedin"`
	GitHub    string    `json:"github" db:"github"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileUpdate carries the fields of a profile update request. Nil
// fields are left untouched; non-nil fields replace the stored value.
type ProfileUpdate struct {
	Bio        *string       `json:"bio"`
	Skills     *[]string     `json:"skills"`
	Education  *[]Education  `json:"education"`
	Experience *[]Experience `json:"experience"`
	Resume     *string       `json:"resume"`
	Portfolio  *string       `json:"portfolio"`
	LinkedIn   *string       `json:"linkedin"`
	GitHub     *string       `json:"github"`
}
