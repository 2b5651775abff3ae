package http

import (
	"time"

	"github.com/DRSN-tech/visual-search/internal/usecase"
)

type ResultDTO struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Price          int64   `json:"price"` // пайсы
	PriceFormatted string  `json:"price_formatted"`
	ImageURL       string  `json:"image_url,omitempty"`
	Similarity     float64 `json:"similarity,omitempty"` // нет у текстового поиска
	MatchLabel     string  `json:"match_label,omitempty"`
}

type SearchResponse struct {
	SearchID     string      `json:"search_id"`
	Summary      string      `json:"summary"`
	Scanned      int         `json:"scanned"`
	Skipped      int         `json:"skipped"`
	ModelVersion string      `json:"model_version"`
	Results      []ResultDTO `json:"results"`
}

type TextSearchResponse struct {
	Summary string      `json:"summary"`
	Results []ResultDTO `json:"results"`
}

type SessionCreatedResponse struct {
	SessionID string `json:"session_id"`
}

type SessionResponse struct {
	SessionID string          `json:"session_id"`
	State     string          `json:"state"`
	Progress  float64         `json:"progress"`
	Status    string          `json:"status"`
	Result    *SearchResponse `json:"result,omitempty"`
	Error     *ErrorResponse  `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type CompareResponse struct {
	Similarity float64 `json:"similarity"`
	Similar    bool    `json:"similar"`
	Threshold  float64 `json:"threshold"`
	MatchLabel string  `json:"match_label"`
}

type AvailabilityResponse struct {
	Available    bool   `json:"available"`
	Message      string `json:"message"`
	ModelVersion string `json:"model_version,omitempty"`
}

func toSearchResponse(res *usecase.SearchRes) *SearchResponse {
	return &SearchResponse{
		SearchID:     res.SearchID,
		Summary:      res.Summary,
		Scanned:      res.Scanned,
		Skipped:      res.Skipped,
		ModelVersion: res.ModelVersion,
		Results:      toResultDTOs(res.Results),
	}
}

func toResultDTOs(items []usecase.ResultItem) []ResultDTO {
	results := make([]ResultDTO, 0, len(items))
	for _, item := range items {
		results = append(results, ResultDTO{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Category:       item.CategoryName,
			Price:          item.Price,
			PriceFormatted: item.PriceFormatted,
			ImageURL:       item.ImageURL,
			Similarity:     item.Similarity,
			MatchLabel:     item.MatchLabel,
		})
	}

	return results
}

func toSessionResponse(s *usecase.SessionSnapshot) *SessionResponse {
	resp := &SessionResponse{
		SessionID: s.ID,
		State:     string(s.State),
		Progress:  s.Progress,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	if s.Result != nil {
		resp.Result = toSearchResponse(s.Result)
	}
	if s.Err != nil {
		code, msg := ToHTTPResponse(s.Err)
		resp.Error = NewErrorResponse(code, msg)
	}

	return resp
}
