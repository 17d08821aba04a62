package schema

// Field describes one column of the customer contract.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // "int" | "text" | "date"
	Required bool   `json:"required,omitempty"`
}

// Contract is the schema agreement between the file layout, the validator,
// and the storage DDL builders.
type Contract struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Required returns the names of all required fields, in contract order.
func (c Contract) Required() []string {
	var out []string
	for _, f := range c.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Columns returns all field names in contract order.
func (c Contract) Columns() []string {
	out := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Canonical column names of the input file, after the record-type
// discriminator has been stripped.
const (
	ColCustomerName      = "Customer_Name"
	ColCustomerID        = "Customer_Id"
	ColOpenDate          = "Open_Date"
	ColLastConsultedDate = "Last_Consulted_Date"
	ColVaccinationID     = "Vaccination_Id"
	ColDrName            = "Dr_Name"
	ColState             = "State"
	ColCountry           = "Country"
	ColDOB               = "DOB"
	ColIsActive          = "Is_Active"

	// Derived columns, present only in storage.
	ColAge                    = "Age"
	ColDaysSinceLastConsulted = "Days_Since_Last_Consulted"
)

// RecordTypeColumn is the leading discriminator column of the raw file. It is
// consumed by the extractor and never reaches the contract.
const RecordTypeColumn = "Record_Type"

// InputColumns lists the 11 positional fields of the raw file, in file order.
var InputColumns = []string{
	RecordTypeColumn,
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
}

// TextCoerced lists the columns the validator forces to a string
// representation, defending against numeric inference in the reader.
var TextCoerced = []string{
	ColCustomerID,
	ColOpenDate,
	ColLastConsultedDate,
	ColDOB,
	ColIsActive,
}

// Customers is the contract for the customer/vaccination feed: the ten file
// columns (all required, all text at this stage) plus the two derived integer
// columns added by the transformer.
func Customers() Contract {
	return Contract{
		Name: "customers",
		Fields: []Field{
			{Name: ColCustomerName, Type: "text", Required: true},
			{Name: ColCustomerID, Type: "text", Required: true},
			{Name: ColOpenDate, Type: "text", Required: true},
			{Name: ColLastConsultedDate, Type: "date", Required: true},
			{Name: ColVaccinationID, Type: "text", Required: true},
			{Name: ColDrName, Type: "text", Required: true},
			{Name: ColState, Type: "text", Required: true},
			{Name: ColCountry, Type: "text", Required: true},
			{Name: ColDOB, Type: "date", Required: true},
			{Name: ColIsActive, Type: "text", Required: true},
			{Name: ColAge, Type: "int"},
			{Name: ColDaysSinceLastConsulted, Type: "int"},
		},
	}
}
