package schema

import "time"

// Customer is one fully transformed record, ready for storage. Open_Date is
// deliberately kept as raw text: the feed never guarantees a parseable value
// there and the store treats it as opaque.
type Customer struct {
	Name                   string
	ID                     string
	OpenDate               string
	LastConsultedDate      time.Time
	VaccinationID          string
	DrName                 string
	State                  string
	Country                string
	DOB                    time.Time
	IsActive               string
	Age                    int
	DaysSinceLastConsulted int
}

// StorageColumns is the ordered 12-column layout of every per-country table.
var StorageColumns = []string{
	ColCustomerName,
	ColCustomerID,
	ColOpenDate,
	ColLastConsultedDate,
	ColVaccinationID,
	ColDrName,
	ColState,
	ColCountry,
	ColDOB,
	ColIsActive,
	ColAge,
	ColDaysSinceLastConsulted,
}

// KeyColumns is the effective identity used by the delete-then-insert upsert.
// It is not a declared primary key.
var KeyColumns = []string{ColCustomerID, ColDOB}

const dateLayout = "2006-01-02"

// Values renders the record as storage values aligned with StorageColumns.
// Date columns are rendered as YYYY-MM-DD.
func (c Customer) Values() []any {
	return []any{
		c.Name,
		c.ID,
		c.OpenDate,
		c.LastConsultedDate.Format(dateLayout),
		c.VaccinationID,
		c.DrName,
		c.State,
		c.Country,
		c.DOB.Format(dateLayout),
		c.IsActive,
		c.Age,
		c.DaysSinceLastConsulted,
	}
}

// KeyValues renders the upsert identity aligned with KeyColumns.
func (c Customer) KeyValues() []any {
	return []any{c.ID, c.DOB.Format(dateLayout)}
}
