// Package testmodels holds entities shared by datastore tests.
package testmodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/model"
)

// Timestamp stores a strfmt.DateTime as an RFC 3339 string attribute.
type Timestamp struct {
	strfmt.DateTime
}

// MarshalDynamoDBAttributeValue implements attributevalue.Marshaler.
func (t Timestamp) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberS{Value: t.DateTime.String()}, nil
}

// UnmarshalDynamoDBAttributeValue implements attributevalue.Unmarshaler.
func (t *Timestamp) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return nil
	}
	dt, err := strfmt.ParseDateTime(s.Value)
	if err != nil {
		return err
	}
	t.DateTime = dt
	return nil
}

type RatingSystem struct {
	catalog.Meta `resthub:"entity" bun:"-"`
	model.Resource

	// A description of the rating system.
	// Required: true
	Description *string `json:"Description"`

	// Name of the rating system.
	// Required: true
	Name *string `json:"Name"`

	// site Url
	SiteURL string `json:"SiteUrl,omitempty"`

	// Timestamp when the rating system was created.
	// Format: date-time
	CreatedAt *Timestamp `json:"CreatedAt"`

	// Timestamp when the rating system was last updated.
	// Format: date-time
	UpdatedAt *Timestamp `json:"UpdatedAt"`
}
