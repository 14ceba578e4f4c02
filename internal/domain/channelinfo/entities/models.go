package entities

import "time"

// ChannelInfoModel is a GORM model for the channel_info table
type ChannelInfoModel struct {
	ID             uint     `gorm:"primaryKey"`
	ChannelAddress string   `gorm:"not null;size:128;uniqueIndex"`
	AuthorID       string   `gorm:"not null;size:128;index"`
	Name           string   `gorm:"size:256"`
	Description    string   `gorm:"size:1024"`
	SubscriberIDs  []string `gorm:"serializer:json;type:jsonb"`
	Topics         []Topic  `gorm:"serializer:json;type:jsonb"`
	LatestMessage  time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ChannelInfoModel) TableName() string {
	return "channel_info"
}

// ToEntity converts DB model to domain entity
func (m *ChannelInfoModel) ToEntity() *ChannelInfo {
	return &ChannelInfo{
		ChannelAddress: m.ChannelAddress,
		AuthorID:       m.AuthorID,
		Name:           m.Name,
		Description:    m.Description,
		SubscriberIDs:  m.SubscriberIDs,
		Topics:         m.Topics,
		CreatedDate:    m.CreatedAt,
		LatestMessage:  m.LatestMessage,
	}
}

// FromEntity converts a domain entity to the DB model
func FromEntity(c *ChannelInfo) *ChannelInfoModel {
	return &ChannelInfoModel{
		ChannelAddress: c.ChannelAddress,
		AuthorID:       c.AuthorID,
		Name:           c.Name,
		Description:    c.Description,
		SubscriberIDs:  c.SubscriberIDs,
		Topics:         c.Topics,
		LatestMessage:  c.LatestMessage,
	}
}
