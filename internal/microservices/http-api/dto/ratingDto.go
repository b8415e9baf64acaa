package dto

// CreateRatingDTO for creating or updating a rating
type CreateRatingDTO struct {
	MovieID int64 `json:"movieId" binding:"required,min=1"`
	Rating  int   `json:"rating" binding:"required,min=1,max=5"`
}

// RatingValue is one entry of a movie's rating list. Authors are not exposed.
type RatingValue struct {
	Rating int `json:"rating"`
}

// MovieRatingsResponse is the community rating of a movie. Average is null
// when nobody has rated it yet.
type MovieRatingsResponse struct {
	Average *float64      `json:"average"`
	Count   int64         `json:"count"`
	Ratings []RatingValue `json:"ratings"`
}
