// Package transform holds the middle stages of the pipeline: schema
// validation, date parsing with derived-field computation, and in-batch
// de-duplication. Stages mutate nothing upstream; each returns a fresh or
// filtered view of its input.
package transform

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"custetl/internal/schema"
	"custetl/pkg/records"
)

// Validator checks schema completeness and normalizes key columns to text.
type Validator struct {
	contract schema.Contract
	log      logrus.FieldLogger
}

// NewValidator builds a Validator for the given contract.
func NewValidator(contract schema.Contract, log logrus.FieldLogger) *Validator {
	return &Validator{contract: contract, log: log}
}

// Validate fails closed: if any required column is missing from any record,
// it returns an error and no records, rather than proceeding with partial
// data. On success it coerces the schema.TextCoerced columns to their string
// representation in place, defending against numeric inference upstream.
func (v *Validator) Validate(recs []records.Record) ([]records.Record, error) {
	required := v.contract.Required()

	for i, rec := range recs {
		for _, col := range required {
			if _, ok := rec[col]; !ok {
				return nil, fmt.Errorf("record %d: missing required column %s", i+1, col)
			}
		}
	}

	for _, rec := range recs {
		for _, col := range schema.TextCoerced {
			if rec.Has(col) {
				rec[col] = rec.String(col)
			}
		}
	}

	v.log.Debugf("validated %d records against contract %s", len(recs), v.contract.Name)
	return recs, nil
}
