package models

// ReleaseRecord is one storefront release notification, stored keyed by recipient.
type ReleaseRecord struct {
	Recipient string  `json:"to" dynamodbav:"to" validate:"required"`
	Date      string  `json:"date" dynamodbav:"date" validate:"required"`
	Label     string  `json:"label" dynamodbav:"label" validate:"required"`
	Title     string  `json:"title" dynamodbav:"title" validate:"required"`
	Artist    *string `json:"artist" dynamodbav:"artist"`
	Link      string  `json:"link" dynamodbav:"link" validate:"required"`
	CoverLink string  `json:"coverLink" dynamodbav:"cover_link" validate:"required"`
}
