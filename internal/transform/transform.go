package transform

import (
	"time"

	"github.com/sirupsen/logrus"

	"custetl/internal/dateutil"
	"custetl/internal/schema"
	"custetl/pkg/records"
)

// Transformer parses the date columns and computes the derived fields. The
// reference timestamp is captured once per run so every row sees the same
// "now".
type Transformer struct {
	now func() time.Time
	log logrus.FieldLogger
}

// NewTransformer builds a Transformer. now may be nil, in which case
// time.Now is used; tests inject a fixed clock.
func NewTransformer(now func() time.Time, log logrus.FieldLogger) *Transformer {
	if now == nil {
		now = time.Now
	}
	return &Transformer{now: now, log: log}
}

// Transform converts raw records into typed customers. Rows whose DOB or
// Last_Consulted_Date fail to parse are dropped entirely (logged and counted
// in dropped); no partial derived computation ever occurs. The remaining rows
// carry Age and Days_Since_Last_Consulted computed against a single reference
// timestamp.
func (t *Transformer) Transform(recs []records.Record) (out []schema.Customer, dropped int) {
	ref := t.now()

	for i, rec := range recs {
		dob, err := dateutil.ParseDate(rec.String(schema.ColDOB))
		if err != nil {
			t.log.WithField("record", i+1).Warnf("dropping row: DOB: %v", err)
			dropped++
			continue
		}
		consulted, err := dateutil.ParseDate(rec.String(schema.ColLastConsultedDate))
		if err != nil {
			t.log.WithField("record", i+1).Warnf("dropping row: Last_Consulted_Date: %v", err)
			dropped++
			continue
		}

		out = append(out, schema.Customer{
			Name:                   rec.String(schema.ColCustomerName),
			ID:                     rec.String(schema.ColCustomerID),
			OpenDate:               rec.String(schema.ColOpenDate),
			LastConsultedDate:      consulted,
			VaccinationID:          rec.String(schema.ColVaccinationID),
			DrName:                 rec.String(schema.ColDrName),
			State:                  rec.String(schema.ColState),
			Country:                rec.String(schema.ColCountry),
			DOB:                    dob,
			IsActive:               rec.String(schema.ColIsActive),
			Age:                    dateutil.AgeInYears(dob, ref),
			DaysSinceLastConsulted: dateutil.DaysSince(consulted, ref),
		})
	}

	return out, dropped
}
