package dto

import "github.com/releasewatch/mailparser/internal/models"

type ReleaseListResponse struct {
	Releases []ReleaseItem `json:"releases"`
}

type ReleaseItem struct {
	Artist    *string `json:"artist"`
	Date      string  `json:"date"`
	Label     string  `json:"label"`
	Link      string  `json:"link"`
	CoverLink string  `json:"coverLink"`
	Title     string  `json:"title"`
}

func NewReleaseListResponse(records []*models.ReleaseRecord) ReleaseListResponse {
	response := ReleaseListResponse{Releases: make([]ReleaseItem, 0, len(records))}
	for _, record := range records {
		if record == nil {
			continue
		}
		response.Releases = append(response.Releases, ReleaseItem{
			Artist:    record.Artist,
			Date:      record.Date,
			Label:     record.Label,
			Link:      record.Link,
			CoverLink: record.CoverLink,
			Title:     record.Title,
		})
	}
	return response
}
