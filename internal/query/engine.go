// Package query evaluates the fixed battery of report projections over a
// validated student report. All seven projections are known at build time,
// so they are plain typed filter/map passes rather than a query language.
package query

import "github.com/femiolade/student-report-gateway/internal/domain"

// NameResult pairs a student's name with their subject outcome.
type NameResult struct {
	Name   string               `json:"name"`
	Result domain.SubjectResult `json:"result"`
}

// ResultSet holds the output of every projection, each in input order.
type ResultSet struct {
	StudentNames        []string     `json:"studentNames"`
	ScienceMarks        []float64    `json:"scienceMarks"`
	ScienceAbove80      []string     `json:"scienceAbove80"`
	PassedStudents      []string     `json:"passedStudents"`
	PassedLowAttendance []string     `json:"passedLowAttendance"`
	PerfectScore        []string     `json:"perfectScore"`
	NameAndResult       []NameResult `json:"nameAndResult"`
}

// Evaluate computes all projections over the report. An empty report yields
// empty (never null) result lists.
func Evaluate(report *domain.StudentReport) ResultSet {
	students := report.Students

	return ResultSet{
		StudentNames: names(students, all),
		ScienceMarks: marks(students),
		ScienceAbove80: names(students, func(s domain.StudentRecord) bool {
			return s.Subject.Science > 80
		}),
		PassedStudents: names(students, passed),
		PassedLowAttendance: names(students, func(s domain.StudentRecord) bool {
			return passed(s) && s.Attendance < 50
		}),
		PerfectScore: names(students, func(s domain.StudentRecord) bool {
			return s.Subject.Science == 100 || s.Subject.Maths == 100
		}),
		NameAndResult: nameResults(students),
	}
}

func all(domain.StudentRecord) bool { return true }

func passed(s domain.StudentRecord) bool {
	return s.Subject.Result == domain.ResultPass
}

// names projects the name of every student matching keep, in input order.
func names(students []domain.StudentRecord, keep func(domain.StudentRecord) bool) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		if keep(s) {
			out = append(out, s.Name)
		}
	}
	return out
}

func marks(students []domain.StudentRecord) []float64 {
	out := make([]float64, 0, len(students))
	for _, s := range students {
		out = append(out, s.Subject.Science)
	}
	return out
}

func nameResults(students []domain.StudentRecord) []NameResult {
	out := make([]NameResult, 0, len(students))
	for _, s := range students {
		out = append(out, NameResult{Name: s.Name, Result: s.Subject.Result})
	}
	return out
}
