package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/academics/aggregation"
	classModel "schoolku_backend/internals/features/school/classes/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

func TestWriteBulletinPDF(t *testing.T) {
	sid := uuid.New()
	math := aggregation.SubjectAverage{SubjectID: uuid.New(), Name: "Mathématiques", Coefficient: 2, Average: 16, GradeCount: 2}
	fr := aggregation.SubjectAverage{SubjectID: uuid.New(), Name: "Français", Coefficient: 1, Average: 12, GradeCount: 1}
	sci := aggregation.SubjectAverage{SubjectID: uuid.New(), Name: "Sciences", Coefficient: 3}

	view := &BulletinView{
		Student: &studentModel.StudentRow{StudentModel: studentModel.StudentModel{
			StudentID:        sid,
			StudentMatricule: "ECL-2024-0001",
			StudentLastName:  "Joseph",
			StudentFirstName: "Hélène",
			StudentBirthDate: time.Date(2012, 3, 4, 0, 0, 0, 0, time.UTC),
		}},
		Class: &classModel.ClassModel{ClassName: "6e A", ClassAcademicYear: "2024-2025"},
		Term:  1,
		Lines: []BulletinLine{{SubjectAverage: math}, {SubjectAverage: fr}, {SubjectAverage: sci}},
		Bulletin: aggregation.Bulletin{
			StudentID:  sid,
			Subjects:   []aggregation.SubjectAverage{math, fr, sci},
			Average:    aggregation.OverallAverage([]aggregation.SubjectAverage{math, fr, sci}),
			Rank:       1,
			ClassSize:  12,
			GradedSize: 11,
			ClassAvg:   11.2,
		},
		PassMark: 10,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBulletinPDF(&buf, "École Schoolku", view))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.True(t, view.Passed())
}
