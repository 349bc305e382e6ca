package domain

// Accommodation is a room type (e.g. "Deluxe Suite"). Each room references exactly one.
type Accommodation struct {
	ID   int64
	Name string
}
