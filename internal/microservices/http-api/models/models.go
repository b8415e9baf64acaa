package models

// All returns every model managed by AutoMigrate, parents first.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&MovieRating{},
		&Review{},
		&Like{},
		&CustomList{},
		&CustomListMovie{},
		&UserMovieList{},
	}
}
