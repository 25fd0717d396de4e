package office

type CreateRequest struct {
	Name        string   `json:"name" binding:"required,max=150"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
	Address     string   `json:"address"`
}

type UpdateRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=150"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Address     *string  `json:"address"`
	Status      *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

type Response struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Address     string  `json:"address"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toResponse(o Office) Response {
	return Response{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Latitude:    o.Latitude,
		Longitude:   o.Longitude,
		Address:     o.Address,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   o.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
