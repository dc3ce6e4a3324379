package constants

// Attendance kinds
const (
	KindIn  = "in"
	KindOut = "out"
)

// Attendance statuses produced by the status rule
const (
	StatusOnTime  = "on_time"
	StatusLate    = "late"
	StatusEarly   = "early"
	StatusOffDay  = "off_day"
	StatusInvalid = "invalid"
)

// Statuses lists every value the status rule may return.
var Statuses = []string{StatusOnTime, StatusLate, StatusEarly, StatusOffDay, StatusInvalid}

// User roles
const (
	RoleAdmin    = "admin"
	RoleEmployee = "karyawan"
)

// Override modes
const (
	OverrideNoAttendance = "no-attendance-required"
	OverrideMandatory    = "attendance-mandatory"
)

// Date and time layouts used for keys stored in the database
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
