package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayDate(t *testing.T) {
	tests := []struct {
		name          string
		dateEvaluated string
		wantDate      string
		wantTimeFrame string
	}{
		{
			// Stored months are 0-based, so stored "01" displays as 02.
			name:          "spring",
			dateEvaluated: "2023-01-05T00:00:00.000Z",
			wantDate:      "2023-02-05",
			wantTimeFrame: "Spring 2023",
		},
		{
			name:          "fall",
			dateEvaluated: "2022-08-17T00:00:00.000Z",
			wantDate:      "2022-09-17",
			wantTimeFrame: "Fall 2022",
		},
		{
			name:          "boundary at june",
			dateEvaluated: "2024-05-01T00:00:00.000Z",
			wantDate:      "2024-06-01",
			wantTimeFrame: "Fall 2024",
		},
		{
			name:          "december stored as 11",
			dateEvaluated: "2024-11-31T00:00:00.000Z",
			wantDate:      "2024-12-31",
			wantTimeFrame: "Fall 2024",
		},
		{
			name:          "no time portion",
			dateEvaluated: "2023-01-05",
			wantDate:      "",
			wantTimeFrame: "",
		},
		{
			name:          "empty",
			dateEvaluated: "",
			wantDate:      "",
			wantTimeFrame: "",
		},
		{
			name:          "garbage month",
			dateEvaluated: "2023-xx-05T00:00:00.000Z",
			wantDate:      "",
			wantTimeFrame: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, timeFrame := displayDate(tt.dateEvaluated)
			assert.Equal(t, tt.wantDate, date)
			assert.Equal(t, tt.wantTimeFrame, timeFrame)
		})
	}
}

func TestRowRecordMatchesHeader(t *testing.T) {
	assert.Len(t, Row{}.record(), len(Header))
}
