package importer

import (
	"strings"
	"testing"

	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_SkipsHeaderAndKeepsOrder(t *testing.T) {
	input := "title, type, value, category\n" +
		"Salary, income, 5000, Job\n" +
		"Rent, outcome, 1200, Housing\n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Salary", result.Rows[0].Title)
	assert.Equal(t, domain.TransactionTypeIncome, result.Rows[0].Type)
	assert.True(t, result.Rows[0].Value.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "Job", result.Rows[0].CategoryTitle)
	assert.Equal(t, 2, result.Rows[0].Line)

	assert.Equal(t, "Rent", result.Rows[1].Title)
	assert.Equal(t, domain.TransactionTypeOutcome, result.Rows[1].Type)
	assert.Equal(t, 3, result.Rows[1].Line)

	assert.Equal(t, []string{"Job", "Housing"}, result.CategoryTitles)
	assert.Equal(t, 0, result.Skipped)
}

func TestParseCSV_DropsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"title,type,value,category",
		"Salary,income,5000,Job",
		"Bad,nope,10,X",
		",income,10,X",
		"No value,outcome,,X",
		"Not a number,income,abc,X",
		"Dot first,income,.50,X",
		"Negative,income,-5,X",
		"Short,income",
		"Upper,Income,10,X",
		"Too big,income,99999999999999,X",
		"Rent,outcome,1200,Housing",
	}, "\n")

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Salary", result.Rows[0].Title)
	assert.Equal(t, "Rent", result.Rows[1].Title)
	assert.Equal(t, 9, result.Skipped)
}

func TestParseCSV_ValueKeepsLeadingInteger(t *testing.T) {
	input := strings.Join([]string{
		"title,type,value,category",
		"Partial,income,1200.50,Job",
		"Suffix,income,12abc,Job",
		"Signed,income,+7,Job",
		"Largest,income,999999999999,Job",
	}, "\n")

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Rows, 4)
	assert.True(t, result.Rows[0].Value.Equal(decimal.NewFromInt(1200)))
	assert.True(t, result.Rows[1].Value.Equal(decimal.NewFromInt(12)))
	assert.True(t, result.Rows[2].Value.Equal(decimal.NewFromInt(7)))
	assert.True(t, result.Rows[3].Value.Equal(decimal.NewFromInt(999999999999)))
	assert.Equal(t, 0, result.Skipped)
}

func TestParseCSV_KeepsRowsWithoutCategory(t *testing.T) {
	input := "title,type,value,category\n" +
		"NoCat,income,10,\n" +
		"Short,outcome,5\n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "", result.Rows[0].CategoryTitle)
	assert.Equal(t, "", result.Rows[1].CategoryTitle)
	assert.Equal(t, []string{""}, result.DistinctCategoryTitles())
}

func TestParseCSV_RetainsDuplicateCategoryTitles(t *testing.T) {
	input := "title,type,value,category\n" +
		"Lunch,outcome,20,Food\n" +
		"Dinner,outcome,35,Food\n" +
		"Bonus,income,100,Job\n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Food", "Food", "Job"}, result.CategoryTitles)
	assert.Equal(t, []string{"Food", "Job"}, result.DistinctCategoryTitles())
}

func TestParseCSV_TrimsFields(t *testing.T) {
	input := "title,type,value,category\n" +
		"  Coffee  ,  outcome ,  4 ,  Food  \n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Coffee", result.Rows[0].Title)
	assert.Equal(t, domain.TransactionTypeOutcome, result.Rows[0].Type)
	assert.True(t, result.Rows[0].Value.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, "Food", result.Rows[0].CategoryTitle)
}

func TestParseCSV_QuotedFields(t *testing.T) {
	input := "title,type,value,category\n" +
		"\"Rent, March\",outcome,1200,\"Housing\"\n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Rent, March", result.Rows[0].Title)
}

func TestParseCSV_EmptyInput(t *testing.T) {
	result, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.CategoryTitles)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	result, err := ParseCSV(strings.NewReader("title,type,value,category\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
}

func TestParseCSV_BlankLinesIgnored(t *testing.T) {
	input := "title,type,value,category\n\nSalary,income,10,Job\n\n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, 0, result.Skipped)
}

func TestParseCSV_UnreadableStream(t *testing.T) {
	input := "title,type,value,category\n" +
		"Sal\"ary,income,5000,Job\n"

	_, err := ParseCSV(strings.NewReader(input))
	assert.Error(t, err)
}
