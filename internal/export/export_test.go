package export

import (
	"bytes"
	"testing"

	"homefix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBookings(t *testing.T) {
	bookings := []models.Booking{
		{Service: "Plumbing", Date: "2026-09-15", Time: "14:30", Address: "12 Oak Lane", Status: models.StatusUpcoming, Comments: "leaky tap"},
		{Service: "Cleaning", Date: "2026-01-02", Time: "09:00", Address: "3 Elm Street", Status: models.StatusUpcoming},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, bookings))

	book, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, columns, rows[0])
	assert.Equal(t, []string{"Plumbing", "2026-09-15", "14:30", "12 Oak Lane", "upcoming", "leaky tap"}, rows[1])
	assert.Equal(t, "Cleaning", rows[2][0])

	// The default sheet is removed so the workbook opens on the data.
	assert.NotContains(t, book.GetSheetList(), "Sheet1")
}

func TestWriteBookingsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, nil))

	book, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, columns, rows[0])
}
