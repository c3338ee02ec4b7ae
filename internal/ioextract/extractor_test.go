package ioextract_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iocache"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/ioextract"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/gercsv"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/statapi"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient serves canned export bodies per year.
type stubClient struct {
	source string
	bodies map[int]string
	errs   map[int]error
	calls  []statapi.TableRequest
}

func (c *stubClient) FetchTable(
	_ context.Context, req statapi.TableRequest,
) (string, error) {
	c.calls = append(c.calls, req)
	if err, ok := c.errs[req.StartYear]; ok {
		return "", err
	}
	body, ok := c.bodies[req.StartYear]
	if !ok {
		return "", fmt.Errorf("no fixture for year %d", req.StartYear)
	}
	return body, nil
}

func (c *stubClient) Source() string { return c.source }

func populationTable() *tables.TableConfig {
	return &tables.TableConfig{
		ID:              "12411-03-03-4",
		Source:          tables.SourceRegional,
		Name:            "Bevölkerung nach Geschlecht und Nationalität",
		Category:        "demographics",
		UpdateFrequency: "annual",
		FirstYear:       2020,
		LastYear:        2024,
		Header:          tables.HeaderConfig{Strategy: gercsv.StrategyDate},
		Columns: tables.ColumnMap{
			Date: 0, RegionCode: 1, RegionName: 2, Category: -1,
		},
		RegionPrefix:     "05",
		BreakdownDefault: "total",
		Metrics: []tables.Metric{
			{Column: 3, Code: "population_total", IndicatorID: 1,
				Name: "Bevölkerung insgesamt", Unit: "Anzahl"},
			{Column: 4, Code: "population_male", IndicatorID: 2,
				Name: "Bevölkerung männlich", Unit: "Anzahl",
				Gender: "male"},
		},
	}
}

// export mimics a datencsv body: metadata header, data lines with ISO
// dates, non-NRW and suppressed cells, underscore footers.
func export(year int) string {
	return fmt.Sprintf(`GENESIS-Tabelle: 12411-03-03-4
Bevölkerungsstand: Bevölkerung nach Geschlecht und Nationalität
Stichtag;Regionalschlüssel;Region;Insgesamt;männlich
%d-12-31;DG;Deutschland;84 669 326;41 812 303
%d-12-31;05112;Duisburg;498590;244433
%d-12-31;05113;Essen;584 580;285 372
%d-12-31;05915;Herne;x;x
%d-12-31;09162;München;1512491;737972
_Quelle: Regionaldatenbank Deutschland
`, year, year, year, year, year)
}

func TestExtract(t *testing.T) {
	table := populationTable()
	client := &stubClient{
		source: "regional",
		bodies: map[int]string{2024: export(2024)},
	}
	ex := ioextract.New(map[tables.Source]statapi.Client{
		tables.SourceRegional: client,
	}, nil, false)

	res, err := ex.Extract(context.Background(), table, []int{2024})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []int{2024}, res.YearsRequested)
	assert.Equal(t, []int{2024}, res.YearsSucceeded)
	assert.Empty(t, res.YearsFailed)

	// DG and the Bavarian region are filtered by the region prefix;
	// Herne survives with zero metrics (all values suppressed)
	require.Len(t, res.Records, 3)

	duisburg := res.Records[0]
	assert.Equal(t, "05112", duisburg.RegionCode)
	assert.Equal(t, "Duisburg", duisburg.RegionName)
	assert.Equal(t, 2024, duisburg.Year)
	assert.Equal(t, float64(498590), duisburg.Metrics["population_total"])
	assert.Equal(t, float64(244433), duisburg.Metrics["population_male"])

	// German thousands separators are normalized
	essen := res.Records[1]
	assert.Equal(t, float64(584580), essen.Metrics["population_total"])

	herne := res.Records[2]
	assert.Empty(t, herne.Metrics)

	// one single-year request per year
	require.Len(t, client.calls, 1)
	assert.Equal(t, 2024, client.calls[0].StartYear)
	assert.Equal(t, 2024, client.calls[0].EndYear)
}

func TestExtractFullWindowByDefault(t *testing.T) {
	table := populationTable()
	bodies := make(map[int]string)
	for y := 2020; y <= 2024; y++ {
		bodies[y] = export(y)
	}
	client := &stubClient{source: "regional", bodies: bodies}
	ex := ioextract.New(map[tables.Source]statapi.Client{
		tables.SourceRegional: client,
	}, nil, false)

	res, err := ex.Extract(context.Background(), table, nil)
	require.NoError(t, err)

	assert.Len(t, client.calls, 5)
	assert.Equal(t, []int{2020, 2021, 2022, 2023, 2024}, res.YearsSucceeded)
	// implicit full window: no year refilter downstream
	assert.Empty(t, res.YearsRequested)
	assert.Len(t, res.Records, 15)
}

func TestExtractPartialFailure(t *testing.T) {
	table := populationTable()
	client := &stubClient{
		source: "regional",
		bodies: map[int]string{
			2020: export(2020),
			2021: export(2021),
			2023: export(2023),
			2024: export(2024),
		},
		errs: map[int]error{2022: fmt.Errorf("service unavailable")},
	}
	ex := ioextract.New(map[tables.Source]statapi.Client{
		tables.SourceRegional: client,
	}, nil, false)

	res, err := ex.Extract(context.Background(), table,
		[]int{2020, 2021, 2022, 2023, 2024})
	require.NoError(t, err)

	assert.Equal(t, []int{2020, 2021, 2023, 2024}, res.YearsSucceeded)
	assert.Equal(t, []int{2022}, res.YearsFailed)
	assert.Len(t, res.Records, 12)
}

func TestExtractAllYearsFailed(t *testing.T) {
	table := populationTable()
	client := &stubClient{
		source: "regional",
		errs: map[int]error{
			2023: fmt.Errorf("boom"),
			2024: fmt.Errorf("boom"),
		},
	}
	ex := ioextract.New(map[tables.Source]statapi.Client{
		tables.SourceRegional: client,
	}, nil, false)

	res, err := ex.Extract(context.Background(), table, []int{2023, 2024})
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestExtractEmptyBodyIsYearFailure(t *testing.T) {
	table := populationTable()
	client := &stubClient{
		source: "regional",
		bodies: map[int]string{
			2023: "_nur;fussnoten\n",
			2024: export(2024),
		},
	}
	ex := ioextract.New(map[tables.Source]statapi.Client{
		tables.SourceRegional: client,
	}, nil, false)

	res, err := ex.Extract(context.Background(), table, []int{2023, 2024})
	require.NoError(t, err)
	assert.Equal(t, []int{2023}, res.YearsFailed)
	assert.Equal(t, []int{2024}, res.YearsSucceeded)
}

func TestExtractNoClient(t *testing.T) {
	table := populationTable()
	ex := ioextract.New(map[tables.Source]statapi.Client{}, nil, false)

	_, err := ex.Extract(context.Background(), table, []int{2024})
	assert.Error(t, err)
}

func TestExtractNoUsableYears(t *testing.T) {
	table := populationTable()
	client := &stubClient{source: "regional"}
	ex := ioextract.New(map[tables.Source]statapi.Client{
		tables.SourceRegional: client,
	}, nil, false)

	_, err := ex.Extract(context.Background(), table, []int{1950})
	assert.Error(t, err)
	assert.Empty(t, client.calls)
}

func TestExtractUsesCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	cachePath := filepath.Join(t.TempDir(), "responses.db")
	cache, err := iocache.Open(cachePath)
	require.NoError(t, err)
	defer cache.Close()

	table := populationTable()
	require.NoError(t,
		cache.Put("regional", table.ID, 2024, export(2024)))

	// the client always fails: a cache hit must make it irrelevant
	client := &stubClient{
		source: "regional",
		errs:   map[int]error{2024: fmt.Errorf("offline")},
	}
	ex := ioextract.New(map[tables.Source]statapi.Client{
		tables.SourceRegional: client,
	}, cache, false)

	res, err := ex.Extract(context.Background(), table, []int{2024})
	require.NoError(t, err)
	assert.Len(t, res.Records, 3)
	assert.Empty(t, client.calls)
}

func TestExtractRefreshBypassesCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	cachePath := filepath.Join(t.TempDir(), "responses.db")
	cache, err := iocache.Open(cachePath)
	require.NoError(t, err)
	defer cache.Close()

	table := populationTable()
	require.NoError(t,
		cache.Put("regional", table.ID, 2024, "stale;body\n"))

	client := &stubClient{
		source: "regional",
		bodies: map[int]string{2024: export(2024)},
	}
	ex := ioextract.New(map[tables.Source]statapi.Client{
		tables.SourceRegional: client,
	}, cache, true)

	res, err := ex.Extract(context.Background(), table, []int{2024})
	require.NoError(t, err)
	require.Len(t, client.calls, 1)
	assert.Len(t, res.Records, 3)

	// refresh still repopulates the cache
	body, found, err := cache.Get("regional", table.ID, 2024)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, export(2024), body)
}
