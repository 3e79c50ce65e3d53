package relay

import (
	"encoding/json"
	"testing"
	"time"

	"fundpath/internal/utils"
	"fundpath/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eastern = time.FixedZone("EST", -5*60*60)

func TestFormatRowFullRecord(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{
		"id": "lead-1",
		"created_at": "2024-03-01T15:04:05.123456+00:00",
		"service_type": "business_funding",
		"first_name": "Maria",
		"last_name": "Lopez",
		"email": "maria@example.com",
		"phone": "5551234567",
		"credit_score": "670_739",
		"credit_profile": ["late_payments_2_years", "collections"],
		"funding_goal": 50000,
		"applicant_type": "business",
		"yearly_revenue": "250k_500k",
		"terms_accepted": true
	}`), &record)
	require.NoError(t, err)

	row := FormatRow(record, eastern, time.Time{})

	assert.Equal(t, []string{
		"3/1/2024, 10:04:05 AM",
		"Business Funding",
		"Maria",
		"Lopez",
		"maria@example.com",
		"5551234567",
		"670_739",
		"late_payments_2_years, collections",
		"50000",
		"business",
		"250k_500k",
		"Yes",
	}, row)
	assert.Len(t, row, len(SheetHeader))
}

func TestFormatRowAbsentValuesAreEmpty(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{
		"id": "lead-2",
		"created_at": "2024-07-04 20:00:00+00",
		"first_name": "Ana",
		"last_name": "Ruiz",
		"email": "ana@example.com",
		"phone": "5550001111",
		"credit_profile": [],
		"service_type": null,
		"terms_accepted": false
	}`), &record)
	require.NoError(t, err)

	row := FormatRow(record, eastern, time.Time{})

	assert.Equal(t, "7/4/2024, 3:00:00 PM", row[0])
	assert.Equal(t, "", row[1])
	assert.Equal(t, "", row[6])
	assert.Equal(t, "", row[7], "credit profile")
	assert.Equal(t, "", row[8], "funding goal")
	assert.Equal(t, "", row[9])
	assert.Equal(t, "", row[10])
	assert.Equal(t, "No", row[11])
}

func TestFormatRowFallbackTimestamp(t *testing.T) {
	fallback := time.Date(2024, 1, 15, 17, 30, 0, 0, time.UTC)

	row := FormatRow(Record{CreatedAt: "not a time"}, eastern, fallback)

	assert.Equal(t, "1/15/2024, 12:30:00 PM", row[0])
}

func TestFormatRowUnknownServiceType(t *testing.T) {
	row := FormatRow(Record{ServiceType: utils.StringPtr("mortgage")}, time.UTC, time.Now())
	assert.Equal(t, "mortgage", row[1])
}

func TestFundingGoalAsString(t *testing.T) {
	var record Record
	require.NoError(t, json.Unmarshal([]byte(`{"funding_goal": "75000"}`), &record))

	row := FormatRow(record, time.UTC, time.Now())
	assert.Equal(t, "75000", row[8])
}

func TestRecordFromLead(t *testing.T) {
	lead := &types.Lead{
		ID:            "lead-3",
		FirstName:     "Luis",
		FundingGoal:   utils.Int64Ptr(120000),
		ServiceType:   utils.StringPtr("funding"),
		CreditProfile: []string{"clean"},
		TermsAccepted: true,
		CreatedAt:     time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
	}

	row := FormatRow(RecordFromLead(lead), time.UTC, time.Time{})

	assert.Equal(t, "5/2/2024, 9:00:00 AM", row[0])
	assert.Equal(t, "Funding", row[1])
	assert.Equal(t, "clean", row[7])
	assert.Equal(t, "120000", row[8])
	assert.Equal(t, "Yes", row[11])
}
