package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	NIP              string
	FullName         string
	Gender           Gender
	BirthPlace       *string
	BirthDate        *time.Time
	Position         string
	Rank             string // golongan/ruang, e.g. III/a
	WorkUnit         string
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	Phone            *string
	Email            *string
	Address          *string
	BaseSalary       decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type Gender string

const (
	Male   Gender = "L"
	Female Gender = "P"
)

type EmploymentStatus string

const (
	EmploymentStatusPNS     EmploymentStatus = "PNS"
	EmploymentStatusPPPK    EmploymentStatus = "PPPK"
	EmploymentStatusHonorer EmploymentStatus = "Honorer"
	EmploymentStatusPensiun EmploymentStatus = "Pensiun"
)

func AllEmploymentStatuses() []string {
	return []string{
		string(EmploymentStatusPNS),
		string(EmploymentStatusPPPK),
		string(EmploymentStatusHonorer),
		string(EmploymentStatusPensiun),
	}
}

func (e Employee) IsRetired() bool {
	return e.EmploymentStatus == EmploymentStatusPensiun
}
