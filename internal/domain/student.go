package domain

// SubjectResult is the enumerated outcome of a student's subject work.
type SubjectResult string

const (
	ResultPass SubjectResult = "pass"
	ResultFail SubjectResult = "fail"
)

// Subject holds a student's marks and overall outcome. Marks are inclusive
// percentages in [0, 100].
type Subject struct {
	Science float64
	Maths   float64
	Result  SubjectResult
}

// StudentRecord is one validated entry of a report submission.
type StudentRecord struct {
	Name       string
	Subject    Subject
	Attendance float64
}

// StudentReport is the validated top-level payload. Record order is
// significant: it determines the ordering of every query projection.
type StudentReport struct {
	Students []StudentRecord
}
