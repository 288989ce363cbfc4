package property_api_client

import "property-client/internal/core/domain"

type PropertyResponse struct {
	ID          int64   `json:"id"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Size        float64 `json:"size"`
	Description *string `json:"description"`
}

// PropertyPageResponse - нужная клиенту часть страницы Spring Data,
// остальные поля (totalElements, last, ...) игнорируются
type PropertyPageResponse struct {
	Content    []PropertyResponse `json:"content"`
	Number     int                `json:"number"`
	TotalPages int                `json:"totalPages"`
}

type PropertyRequest struct {
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Size        float64 `json:"size"`
	Description string  `json:"description"`
}

func (r PropertyResponse) toDomain() domain.Property {
	p := domain.Property{
		ID:      r.ID,
		Address: r.Address,
		Price:   r.Price,
		Size:    r.Size,
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	return p
}

func (r PropertyPageResponse) toDomain() *domain.PageResult {
	content := make([]domain.Property, len(r.Content))
	for i, dto := range r.Content {
		content[i] = dto.toDomain()
	}
	return &domain.PageResult{
		Content:    content,
		Number:     r.Number,
		TotalPages: r.TotalPages,
	}
}

func newPropertyRequest(input domain.PropertyInput) PropertyRequest {
	return PropertyRequest{
		Address:     input.Address,
		Price:       input.Price,
		Size:        input.Size,
		Description: input.Description,
	}
}
