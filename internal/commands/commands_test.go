package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/compare"
	"github.com/klabast/wb-services/ferien-checker/internal/config"
	"github.com/klabast/wb-services/ferien-checker/internal/dataset"
)

func TestPrintExamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printExamples(&buf, dataset.Default()))
	out := buf.String()

	assert.Contains(t, out, "15.07.2026 (Nordrhein-Westfalen):\n  Ferien:   Sommerferien\n")
	assert.Contains(t, out, "01.01.2026 (Bayern):\n  Feiertag: Neujahr\n")
	assert.Contains(t, out, "05.06.2026 (Dänemark):\n  Feiertag: Grundlovsdag\n")
	assert.Contains(t, out, "31.10.2026 (Thüringen):\n  Feiertag: Reformationstag\n")
	assert.Contains(t, out, "12.03.2026 (Hamburg):\n  Ferien:   Osterferien\n")
	// Hessen has no vacation or holiday on 15.05.2026
	assert.Contains(t, out, "Kein Feiertag oder Ferien am 15.05.2026")
}

func TestPrintExamplesUnsupportedYear(t *testing.T) {
	reg, err := dataset.NewRegistry()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = printExamples(&buf, reg)
	var yearErr *calendar.UnsupportedYearError
	require.ErrorAs(t, err, &yearErr)
	assert.Equal(t, 2026, yearErr.Year)
}

func TestPrintRegions(t *testing.T) {
	var buf bytes.Buffer
	printRegions(&buf)
	out := buf.String()

	assert.Contains(t, out, "NRW  Nordrhein-Westfalen\n")
	assert.Contains(t, out, "DK   Dänemark\n")
	assert.Equal(t, len(calendar.Regions()), bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestPrintResult(t *testing.T) {
	q, err := compare.ParseQuery("15.07.2026", "31.08.2026", "NRW", 2026)
	require.NoError(t, err)
	res, err := compare.New(compare.NewStaticSource(dataset.Default())).Compare(t.Context(), q)
	require.NoError(t, err)

	var buf bytes.Buffer
	printResult(&buf, q, res)
	out := buf.String()

	assert.Contains(t, out, "Zeitraum: 15.07.2026 - 31.08.2026 (48 Tage)")
	assert.Contains(t, out, "Nordrhein-Westfalen:\n  Ferien:    Sommerferien\n")
	assert.Contains(t, out, "Dänemark:\n  Ferien:    Sommerferien\n")
}

func TestYearOf(t *testing.T) {
	assert.Equal(t, 2027, yearOf("06.01.2027", 2026))
	assert.Equal(t, 2026, yearOf("", 2026))
	assert.Equal(t, 2026, yearOf("2027-01-06", 2026))
}

func TestBuildLoaders(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.EditMode = true

	loaders, store, err := buildLoaders(t.Context(), cfg)
	require.NoError(t, err)
	require.Len(t, loaders, 2)
	assert.Equal(t, "embedded", loaders[0].Name())
	require.NotNil(t, store)
	assert.True(t, store.PreferTmp)
	assert.Same(t, store, loaders[1])
}

func TestBuildSource(t *testing.T) {
	reg := dataset.Default()

	cfg := config.Default()
	src, err := buildSource(cfg, reg)
	require.NoError(t, err)
	assert.IsType(t, &compare.StaticSource{}, src)

	cfg.Source = config.SourceRemote
	cfg.RemoteRegions = map[string]string{"XX": "DE-XX"}
	_, err = buildSource(cfg, reg)
	assert.Error(t, err)
}

func TestConfirmOverwrite(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"Ja\n", true},
		{"\n", false},
		{"n\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirmOverwrite(strings.NewReader(tt.in), &out, "auth.secret")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Contains(t, out.String(), "Auth file already exists: auth.secret")
	}
}
