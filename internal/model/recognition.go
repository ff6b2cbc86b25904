package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recognition struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ImageRef             string      `gorm:"type:text" json:"image_ref"`
	RequestedBy          *uuid.UUID  `gorm:"type:uuid" json:"requested_by"`
	FragmentCount        int         `gorm:"not null" json:"fragment_count"`
	PlateCount           int         `gorm:"not null" json:"plate_count"`
	IncludeLowConfidence bool        `gorm:"not null;default:false" json:"include_low_confidence"`
	Plates               []PlateRead `gorm:"foreignKey:RecognitionID" json:"plates"`
	CreatedAt            time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (Recognition) TableName() string {
	return "recognitions"
}

func (r *Recognition) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type PlateRead struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	RecognitionID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"recognition_id"`
	PlateNumber     string      `gorm:"type:varchar(32);not null" json:"plate_number"`
	NormalizedPlate string      `gorm:"type:varchar(32);not null;index" json:"normalized_plate"`
	Confidence      float64     `gorm:"not null" json:"confidence"`
	IsLowConfidence bool        `gorm:"not null;default:false" json:"is_low_confidence"`
	Source          PlateSource `gorm:"type:plate_source;not null" json:"source"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (PlateRead) TableName() string {
	return "plate_reads"
}

func (p *PlateRead) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
