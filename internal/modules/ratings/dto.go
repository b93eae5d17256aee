package ratings

type SetRatingRequest struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

type AverageResponse struct {
	ImageID int64   `json:"image_id"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
