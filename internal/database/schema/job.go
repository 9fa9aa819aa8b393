package schema

import "github.com/jackc/pgx/pgtype"

// Job is one finished encode or decode run.
type Job struct {
	UUID      string `gorm:"type:varchar(36); uniqueIndex; notNull;" json:"uuid"`
	Direction string `gorm:"type:varchar(16); index; notNull;" json:"direction"`
	Name      string `gorm:"type:varchar(1024); notNull;" json:"name"`
	Target    string `gorm:"type:varchar(1024);" json:"target"`
	Status    string `gorm:"type:varchar(16); index; notNull;" json:"status"`
	Error     string `gorm:"type:text;" json:"error"`

	InputBytes     int64 `gorm:"notNull; default:0;" json:"input_bytes"`
	OutputBytes    int64 `gorm:"notNull; default:0;" json:"output_bytes"`
	Symbols        int64 `gorm:"notNull; default:0;" json:"symbols"`
	Padding        int16 `gorm:"type:smallint; notNull; default:0;" json:"padding"`
	ReferenceBytes int64 `gorm:"notNull; default:0;" json:"reference_bytes"`
	DurationMs     int64 `gorm:"notNull; default:0;" json:"duration_ms"`

	// 码表，{"A": "0101", ...}
	Codebook *pgtype.JSONB `gorm:"type:jsonb; notNull; default:'{}'::jsonb;" json:"codebook"`

	Base
}
