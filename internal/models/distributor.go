package models

import (
	"time"
)

// Module is the access scope assigned to a distributor account. Exactly one
// module is attached to every record.
type Module string

const (
	ModuleDailySales      Module = "dailySales"
	ModuleDigitalPayments Module = "digitalPayments"
	ModuleCashPayments    Module = "cashPayments"
	ModuleOutlets         Module = "outlets"
	ModuleReports         Module = "reports"
)

// Modules returns the fixed set of assignable modules.
func Modules() []Module {
	return []Module{
		ModuleDailySales,
		ModuleDigitalPayments,
		ModuleCashPayments,
		ModuleOutlets,
		ModuleReports,
	}
}

// Valid reports whether m is one of the assignable modules.
func (m Module) Valid() bool {
	switch m {
	case ModuleDailySales, ModuleDigitalPayments, ModuleCashPayments, ModuleOutlets, ModuleReports:
		return true
	}
	return false
}

// DistributorRecord is a persisted distributor account. Passwords are
// collected on the signup form but intentionally never stored here.
type DistributorRecord struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Username  string    `json:"username"`
	Module    Module    `json:"module"`
	CreatedAt time.Time `json:"createdAt"`
}
