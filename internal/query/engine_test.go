package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/femiolade/student-report-gateway/internal/domain"
)

func student(name string, science, maths float64, result domain.SubjectResult, attendance float64) domain.StudentRecord {
	return domain.StudentRecord{
		Name: name,
		Subject: domain.Subject{
			Science: science,
			Maths:   maths,
			Result:  result,
		},
		Attendance: attendance,
	}
}

func TestEvaluate_SingleStudent(t *testing.T) {
	report := &domain.StudentReport{Students: []domain.StudentRecord{
		student("A", 90, 60, domain.ResultPass, 40),
	}}

	rs := Evaluate(report)

	assert.Equal(t, []string{"A"}, rs.StudentNames)
	assert.Equal(t, []float64{90}, rs.ScienceMarks)
	assert.Equal(t, []string{"A"}, rs.ScienceAbove80)
	assert.Equal(t, []string{"A"}, rs.PassedStudents)
	assert.Equal(t, []string{"A"}, rs.PassedLowAttendance)
	assert.Empty(t, rs.PerfectScore)
	assert.Equal(t, []NameResult{{Name: "A", Result: domain.ResultPass}}, rs.NameAndResult)
}

func TestEvaluate_PreservesInputOrder(t *testing.T) {
	report := &domain.StudentReport{Students: []domain.StudentRecord{
		student("C", 85, 100, domain.ResultPass, 70),
		student("A", 100, 10, domain.ResultFail, 20),
		student("B", 81, 50, domain.ResultPass, 30),
	}}

	rs := Evaluate(report)

	assert.Equal(t, []string{"C", "A", "B"}, rs.StudentNames)
	assert.Equal(t, []float64{85, 100, 81}, rs.ScienceMarks)
	assert.Equal(t, []string{"C", "A", "B"}, rs.ScienceAbove80)
	assert.Equal(t, []string{"C", "B"}, rs.PassedStudents)
	assert.Equal(t, []string{"B"}, rs.PassedLowAttendance)
	assert.Equal(t, []string{"C", "A"}, rs.PerfectScore)
	assert.Equal(t, []NameResult{
		{Name: "C", Result: domain.ResultPass},
		{Name: "A", Result: domain.ResultFail},
		{Name: "B", Result: domain.ResultPass},
	}, rs.NameAndResult)
}

func TestEvaluate_Boundaries(t *testing.T) {
	report := &domain.StudentReport{Students: []domain.StudentRecord{
		// 80 is not strictly above 80; attendance 50 is not strictly below 50.
		student("edge", 80, 99, domain.ResultPass, 50),
	}}

	rs := Evaluate(report)

	assert.Empty(t, rs.ScienceAbove80)
	assert.Equal(t, []string{"edge"}, rs.PassedStudents)
	assert.Empty(t, rs.PassedLowAttendance)
	assert.Empty(t, rs.PerfectScore)
}

func TestEvaluate_FailedLowAttendanceExcluded(t *testing.T) {
	report := &domain.StudentReport{Students: []domain.StudentRecord{
		student("F", 10, 10, domain.ResultFail, 10),
	}}

	rs := Evaluate(report)

	assert.Empty(t, rs.PassedStudents)
	assert.Empty(t, rs.PassedLowAttendance)
}

func TestEvaluate_SubsetProperties(t *testing.T) {
	report := &domain.StudentReport{Students: []domain.StudentRecord{
		student("A", 90, 60, domain.ResultPass, 40),
		student("B", 30, 100, domain.ResultFail, 90),
		student("C", 100, 0, domain.ResultPass, 49),
		student("D", 55, 55, domain.ResultPass, 80),
	}}

	rs := Evaluate(report)

	assert.Len(t, rs.StudentNames, 4)
	assert.Len(t, rs.ScienceMarks, 4)
	assert.Len(t, rs.NameAndResult, 4)

	assert.Subset(t, rs.StudentNames, rs.ScienceAbove80)
	assert.Subset(t, rs.StudentNames, rs.PassedStudents)
	assert.Subset(t, rs.PassedStudents, rs.PassedLowAttendance)
}

func TestEvaluate_EmptyReport(t *testing.T) {
	rs := Evaluate(&domain.StudentReport{})

	// Every projection must encode as an empty array, never null.
	encoded, err := json.Marshal(rs)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Len(t, decoded, 7)
	for key, raw := range decoded {
		assert.Equal(t, "[]", string(raw), "projection %s", key)
	}
}
