package pagination

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/proofreader/internal/lang"
)

func TestPageListNumber(t *testing.T) {
	pl, err := ParsePageList(map[string]string{
		"1":      "Cover",
		"2to3":   "-",
		"4to7":   "roman",
		"4":      "1",
		"8":      "1",
		"12to15": "folio",
		"16":     "Plate",
	})
	require.NoError(t, err)

	tests := []struct {
		ordinal int
		raw     string
		empty   bool
		mode    DisplayMode
	}{
		{ordinal: 1, raw: "Cover", mode: DisplayNormal},
		{ordinal: 2, raw: "", empty: true, mode: DisplayNormal},
		{ordinal: 3, raw: "", empty: true, mode: DisplayNormal},
		{ordinal: 4, raw: "i", mode: DisplayRoman},
		{ordinal: 7, raw: "iv", mode: DisplayRoman},
		{ordinal: 8, raw: "1", mode: DisplayNormal},
		{ordinal: 11, raw: "4", mode: DisplayNormal},
		{ordinal: 12, raw: "5r", mode: DisplayFolio},
		{ordinal: 13, raw: "5v", mode: DisplayFolio},
		{ordinal: 14, raw: "6r", mode: DisplayFolio},
		{ordinal: 15, raw: "6v", mode: DisplayFolio},
		{ordinal: 16, raw: "Plate", mode: DisplayNormal},
		{ordinal: 17, raw: "10", mode: DisplayNormal},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n := pl.Number(tt.ordinal)
			assert.Equal(t, tt.raw, n.Raw(lang.English), "ordinal %d", tt.ordinal)
			assert.Equal(t, tt.empty, n.IsEmpty(), "ordinal %d", tt.ordinal)
			assert.Equal(t, tt.mode, n.DisplayMode(), "ordinal %d", tt.ordinal)
		})
	}
}

func TestPageListFolioRestart(t *testing.T) {
	pl, err := ParsePageList(map[string]string{
		"1to6": "foliohighroman",
		"3":    "10",
	})
	require.NoError(t, err)

	// Plain numbering after the folio range still counts ordinals.
	expected := []string{"Ir", "Iv", "Xr", "Xv", "XIr", "XIv", "14"}
	for i, raw := range expected {
		assert.Equal(t, raw, pl.Number(i+1).Raw(lang.English), "ordinal %d", i+1)
	}
}

func TestNilPageListUsesOrdinal(t *testing.T) {
	var pl *PageList
	assert.Equal(t, "42", pl.Number(42).Raw(lang.English))
	assert.Equal(t, "४२", pl.Number(42).Format(lang.MustLookup("mr")))
}

func TestParsePageListRejectsBadKeys(t *testing.T) {
	for _, key := range []string{"0", "abc", "5to", "to5", "7to3", "-1", "1to2to3", "1to99999999999999999999", "1to9223372036854775807"} {
		t.Run(key, func(t *testing.T) {
			_, err := ParsePageList(map[string]string{key: "roman"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPageList))
		})
	}
}

func TestParsePageListRejectsOutOfRangeRestarts(t *testing.T) {
	for _, value := range []string{"99999999999999999999", "9223372036854775807", "2147483648"} {
		t.Run(value, func(t *testing.T) {
			_, err := ParsePageList(map[string]string{"5to6": value})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPageList))
		})
	}

	pl, err := ParsePageList(map[string]string{"5to6": "2147483647"})
	require.NoError(t, err)
	assert.Equal(t, "2147483648", pl.Number(6).Raw(lang.English))
}
