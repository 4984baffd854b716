package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ResultAdmitted = "admis"
	ResultDeferred = "ajourne"
)

var ResultStatuses = []string{ResultAdmitted, ResultDeferred}

type AdmissionResultModel struct {
	ResultID        uuid.UUID      `gorm:"column:result_id;type:uuid;default:gen_random_uuid();primaryKey" json:"result_id"`
	ResultLastName  string         `gorm:"column:result_last_name;type:varchar(100);not null;index:idx_result_lookup,priority:3" json:"result_last_name"`
	ResultFirstName string         `gorm:"column:result_first_name;type:varchar(100);not null;default:''" json:"result_first_name"`
	ResultClass     string         `gorm:"column:result_class;type:varchar(50);not null;index:idx_result_lookup,priority:1" json:"result_class"`
	ResultPromotion string         `gorm:"column:result_promotion;type:varchar(20);not null;index:idx_result_lookup,priority:2" json:"result_promotion"`
	ResultStatus    string         `gorm:"column:result_status;type:varchar(20);not null;default:'admis'" json:"result_status"`
	ResultPublished bool           `gorm:"column:result_published;not null;default:false" json:"result_published"`
	ResultSource    datatypes.JSON `gorm:"column:result_source;type:jsonb" json:"result_source,omitempty"`
	ResultCreatedAt time.Time      `gorm:"column:result_created_at;autoCreateTime" json:"result_created_at"`
	ResultUpdatedAt time.Time      `gorm:"column:result_updated_at;autoUpdateTime" json:"result_updated_at"`
}

func (AdmissionResultModel) TableName() string { return "admission_results" }

func (m AdmissionResultModel) FullName() string {
	if m.ResultFirstName == "" {
		return m.ResultLastName
	}
	return m.ResultLastName + " " + m.ResultFirstName
}

func (m AdmissionResultModel) Admitted() bool { return m.ResultStatus == ResultAdmitted }
