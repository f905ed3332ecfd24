// Package servicedata contains the canned data sets that parameterize the tests: realistic services
// and order sizes, and tables of values at and around the validation limits of the service.
//
// All of the data is read-only. Functions that return tables build a new slice on every call.
package servicedata
