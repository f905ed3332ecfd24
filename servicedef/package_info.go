// Package servicedef contains the data types that are sent to and received from the service API.
package servicedef
