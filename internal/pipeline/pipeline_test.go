package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"custetl/internal/config"
	_ "custetl/internal/storage/all"
)

const sampleFile = `|H|Customer_Name|Customer_Id|Open_Date|Last_Consulted_Date|Vaccination_Id|Dr_Name|State|Country|DOB|Is_Active
|D|Alex|123457|20101012|20121013|MVD|Paul|SA|USA|06031987|A
|D|John|123458|20101012|20121013|MVD|Paul|TN|IND|06031987|A
|D|Mathew|123459|20101012|20121013|MVD|Paul|WAS|PHIL|06031987|A
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customers.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T, inputPath string) config.Pipeline {
	t.Helper()
	return config.Pipeline{
		Job:     "customers-test",
		Source:  config.Source{Kind: "file", File: config.SourceFile{Path: inputPath}},
		Parser:  config.Parser{Kind: "delimited", Options: config.Options{}},
		Storage: config.Storage{
			Kind: "sqlite",
			DB:   config.DBConfig{DSN: filepath.Join(t.TempDir(), "pipeline.db")},
		},
	}
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// TestRunEndToEnd loads the three-country sample and checks per-country
// routing and counts.
func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, writeFixture(t, sampleFile))
	sum, err := Run(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	require.Equal(t, StageLoad, sum.Stage)
	require.Equal(t, 3, sum.Extracted)
	require.Zero(t, sum.Skipped)
	require.Zero(t, sum.DateDropped)
	require.EqualValues(t, 3, sum.Loaded)
	require.Equal(t, []string{"Table_IND", "Table_PHIL", "Table_USA"}, sum.Tables)
	require.EqualValues(t, 1, sum.TableCounts["Table_USA"])
	require.EqualValues(t, 1, sum.TableCounts["Table_IND"])
	require.EqualValues(t, 1, sum.TableCounts["Table_PHIL"])
}

// TestRunIsIdempotent runs the same file twice against the same database and
// checks row counts do not grow.
func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, writeFixture(t, sampleFile))
	for i := 0; i < 2; i++ {
		sum, err := Run(context.Background(), cfg, testLogger())
		require.NoError(t, err)
		require.EqualValues(t, 1, sum.TableCounts["Table_USA"])
		require.EqualValues(t, 1, sum.TableCounts["Table_IND"])
	}
}

// TestRunDropsBadRows mixes in a short row and a row with an unparseable DOB;
// both must vanish without failing the run.
func TestRunDropsBadRows(t *testing.T) {
	t.Parallel()

	input := `|H|Customer_Name|Customer_Id|Open_Date|Last_Consulted_Date|Vaccination_Id|Dr_Name|State|Country|DOB|Is_Active
|D|Alex|123457|20101012|20121013|MVD|Paul|SA|USA|06031987|A
|D|short|row
|D|Bad|123458|20101012|20121013|MVD|Paul|TN|IND|notadate|A
`
	cfg := testConfig(t, writeFixture(t, input))
	sum, err := Run(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	require.Equal(t, 1, sum.Skipped)
	require.Equal(t, 1, sum.DateDropped)
	require.EqualValues(t, 1, sum.Loaded)
	require.Equal(t, []string{"Table_USA"}, sum.Tables)
}

// TestRunKeepsLastDuplicate feeds two rows for the same (Customer_Id, DOB)
// and checks only one survives.
func TestRunKeepsLastDuplicate(t *testing.T) {
	t.Parallel()

	input := `|H|Customer_Name|Customer_Id|Open_Date|Last_Consulted_Date|Vaccination_Id|Dr_Name|State|Country|DOB|Is_Active
|D|Alex|123457|20101012|20121013|MVD|Paul|SA|USA|06031987|A
|D|Alexander|123457|20101012|20240101|MVD|Paul|SA|USA|06031987|A
`
	cfg := testConfig(t, writeFixture(t, input))
	sum, err := Run(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	require.Equal(t, 1, sum.DeDuped)
	require.EqualValues(t, 1, sum.Loaded)
	require.EqualValues(t, 1, sum.TableCounts["Table_USA"])
}

// TestRunFailsClosedOnMissingFile checks a bad path aborts before any stage
// output, leaving the summary empty.
func TestRunFailsClosedOnMissingFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, filepath.Join(t.TempDir(), "nope.txt"))
	sum, err := Run(context.Background(), cfg, testLogger())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrRead)
	require.Empty(t, sum.Stage)
	require.Zero(t, sum.Extracted)
}

// TestRunEmptyInputLeavesStoreUntouched checks a header-only file completes
// without ever creating the database.
func TestRunEmptyInputLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	header := "|H|Customer_Name|Customer_Id|Open_Date|Last_Consulted_Date|Vaccination_Id|Dr_Name|State|Country|DOB|Is_Active\n"
	cfg := testConfig(t, writeFixture(t, header))

	sum, err := Run(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	require.Equal(t, StageLoad, sum.Stage)
	require.Zero(t, sum.Loaded)
	require.NoFileExists(t, cfg.Storage.DB.DSN)
}
