package directory

import "time"

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"

	JobStatusOpen   = "open"
	JobStatusClosed = "closed"

	ApplicationStatusNew      = "new"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusRejected = "rejected"
	ApplicationStatusHired    = "hired"
)

type Employee struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Designation   string    `json:"designation,omitempty"`
	MonthlySalary float64   `json:"monthlySalary"`
	Status        string    `json:"status"`
	JoinedOn      time.Time `json:"joinedOn"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	JobTitle    string    `json:"jobTitle,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	ResumeURL   string    `json:"resumeUrl,omitempty"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
