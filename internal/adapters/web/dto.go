package web

type propertyDTO struct {
	ID          int64   `json:"id"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Size        float64 `json:"size"`
	Description string  `json:"description"`
}

type messageDTO struct {
	Text    string `json:"text"`
	IsError bool   `json:"isError"`
}

type formDTO struct {
	Mode        string            `json:"mode"`
	EditID      *int64            `json:"editId,omitempty"`
	Title       string            `json:"title"`
	SubmitLabel string            `json:"submitLabel"`
	ShowCancel  bool              `json:"showCancel"`
	Values      map[string]string `json:"values"`
}

type filtersDTO struct {
	Address  string   `json:"address,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	MinSize  *float64 `json:"minSize,omitempty"`
	MaxSize  *float64 `json:"maxSize,omitempty"`
}

// StateResponse - ответ GET /state
type StateResponse struct {
	Rows        []propertyDTO `json:"rows"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	PageLabel   string        `json:"pageLabel"`
	CanPrev     bool          `json:"canPrev"`
	CanNext     bool          `json:"canNext"`
	Message     *messageDTO   `json:"message,omitempty"`
	Form        formDTO       `json:"form"`
	Filters     filtersDTO    `json:"filters"`
}

func newStateResponse(model PageModel) StateResponse {
	rows := make([]propertyDTO, len(model.List.Rows))
	for i, p := range model.List.Rows {
		rows[i] = propertyDTO{ID: p.ID, Address: p.Address, Price: p.Price, Size: p.Size, Description: p.Description}
	}

	resp := StateResponse{
		Rows:        rows,
		CurrentPage: model.List.CurrentPage,
		TotalPages:  model.List.TotalPages,
		PageLabel:   model.List.PageLabel,
		CanPrev:     model.List.CanPrev,
		CanNext:     model.List.CanNext,
		Form: formDTO{
			Mode:        "create",
			Title:       model.Mode.Title(),
			SubmitLabel: model.Mode.SubmitLabel(),
			ShowCancel:  model.Mode.ShowCancel(),
			Values: map[string]string{
				"address":     model.Form.Address,
				"price":       model.Form.Price,
				"size":        model.Form.Size,
				"description": model.Form.Description,
			},
		},
		Filters: filtersDTO{
			Address:  model.Filters.Address,
			MinPrice: model.Filters.MinPrice,
			MaxPrice: model.Filters.MaxPrice,
			MinSize:  model.Filters.MinSize,
			MaxSize:  model.Filters.MaxSize,
		},
	}
	if id, ok := model.Mode.EditID(); ok {
		resp.Form.Mode = "edit"
		resp.Form.EditID = &id
	}
	if !model.Message.IsZero() {
		resp.Message = &messageDTO{Text: model.Message.Text, IsError: model.Message.IsError}
	}
	return resp
}
